package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of go-redis the medium needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

/*
Redis is a shared medium for preferences that follow a user across machines.

Redis TTLs are NOT used: expiry stays a property of the envelope, so every
medium behaves the same and ExpiringStorage stays the only place that decides
what is expired. Keys are namespaced with Prefix.
*/
type Redis struct {
	client RedisClient
	prefix string
}

func NewRedis(client RedisClient, prefix string) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis: client cannot be nil")
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis: get %q: %w", key, err)
	}
	return v, true, nil
}

func (r *Redis) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis: del %q: %w", key, err)
	}
	return nil
}
