// Package tablesort remembers table preferences in a key-value medium with
// per-entry expiry. Column sorting lives in the column and table packages.
package tablesort

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/krisalay/tablesort/engine"
	"github.com/krisalay/tablesort/types"
)

/*
ExpiringStorage adds per-entry time-to-live on top of a plain key-value medium.
Each value is wrapped in an envelope {value, expires} and written as JSON.

Expiry is lazy: an expired entry stays in the medium until somebody reads it.
There is no background sweep and no capacity bound.
*/
type ExpiringStorage struct {
	// medium is where envelopes live. It is shared state: other processes may write it too.
	medium types.Medium

	// engine holds the rules: clock, expiration strategy, metrics and logger.
	engine *engine.StorageEngine

	// sf makes concurrent Remember misses for one key call the loader once.
	sf singleflight.Group
}

func New(medium types.Medium, eng *engine.StorageEngine) *ExpiringStorage {
	if eng == nil {
		eng = engine.NewStorageEngine()
	}
	return &ExpiringStorage{medium: medium, engine: eng}
}

/*
Get retrieves a value from the storage.
*/
func (s *ExpiringStorage) Get(ctx context.Context, key string) (any, bool) {
	env, ok := s.load(ctx, key)
	if !ok {
		return nil, false
	}
	var value any
	if err := json.Unmarshal(env.Value, &value); err != nil {
		s.engine.Logger.Debug("stored value is not JSON", "key", key, "error", err)
		s.engine.Metrics.Corrupt()
		s.engine.Metrics.Miss()
		return nil, false
	}
	s.touch(ctx, key, env)
	return value, true
}

func (s *ExpiringStorage) GetInto(ctx context.Context, key string, dest any) bool {
	env, ok := s.load(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(env.Value, dest); err != nil {
		s.engine.Logger.Debug("stored value does not fit destination", "key", key, "error", err)
		s.engine.Metrics.Miss()
		return false
	}
	s.touch(ctx, key, env)
	return true
}

func (s *ExpiringStorage) Has(ctx context.Context, key string) bool {
	_, ok := s.Get(ctx, key)
	return ok
}

/*
Set stores value for ttl. The envelope always replaces what was there.
*/
func (s *ExpiringStorage) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %q: %w", key, err)
	}
	env := &types.Envelope{Value: raw}
	s.engine.OnWrite(env, ttl)
	return s.write(ctx, key, env)
}

func (s *ExpiringStorage) SetMinutes(ctx context.Context, key string, value any, minutes float64) error {
	return s.Set(ctx, key, value, minutesToDuration(minutes))
}

func (s *ExpiringStorage) Remove(ctx context.Context, key string) error {
	if err := s.medium.RemoveItem(ctx, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

/*
Remember is a read-through helper.

If 100 goroutines ask for the same missing key, only ONE of them runs the loader;
the others wait for its result. A nil result is returned but not stored.
*/
func (s *ExpiringStorage) Remember(
	ctx context.Context,
	key string,
	ttl time.Duration,
	loader types.Loader,
) (any, error) {
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}
	v, err, _ := s.sf.Do(key, func() (any, error) {
		val, err := loader.Load(ctx, key)
		if err != nil || val == nil {
			return val, err
		}
		if err := s.Set(ctx, key, val, ttl); err != nil {
			return nil, err
		}
		return val, nil
	})
	return v, err
}

/*
load reads and decodes the envelope for key, applying lazy expiry.
Misses are counted here; hits are counted by touch once the value is decoded.

Every failure on the read path is a miss: the medium being down or the
entry being garbage degrades to a cold cache, not a crash.
*/
func (s *ExpiringStorage) load(ctx context.Context, key string) (*types.Envelope, bool) {
	raw, ok, err := s.medium.GetItem(ctx, key)
	if err != nil {
		s.engine.Logger.Warn("medium read failed", "key", key, "error", err)
		s.engine.Metrics.Miss()
		return nil, false
	}
	if !ok {
		s.engine.Metrics.Miss()
		return nil, false
	}

	var env types.Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		s.engine.Logger.Debug("discarding undecodable entry", "key", key, "error", err)
		s.engine.Metrics.Corrupt()
		s.engine.Metrics.Miss()
		return nil, false
	}

	if s.engine.IsExpired(&env) {
		s.engine.Metrics.Expire()
		s.engine.Metrics.Miss()
		if err := s.medium.RemoveItem(ctx, key); err != nil {
			s.engine.Logger.Warn("failed to remove expired entry", "key", key, "error", err)
		} else {
			s.engine.Logger.Debug("removed expired entry", "key", key, "expires", env.Expires)
		}
		return nil, false
	}

	// A stored null is indistinguishable from "nothing stored".
	if len(env.Value) == 0 || string(env.Value) == "null" {
		s.engine.Metrics.Miss()
		return nil, false
	}

	return &env, true
}

// touch records a hit for a value that was handed out and writes the
// envelope back when the strategy extended it.
func (s *ExpiringStorage) touch(ctx context.Context, key string, env *types.Envelope) {
	if !s.engine.OnRead(env) {
		return
	}
	if err := s.write(ctx, key, env); err != nil {
		s.engine.Logger.Warn("failed to extend entry", "key", key, "error", err)
	}
}

func (s *ExpiringStorage) write(ctx context.Context, key string, env *types.Envelope) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode envelope for %q: %w", key, err)
	}
	if err := s.medium.SetItem(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	s.engine.Metrics.Write()
	return nil
}

// minutesToDuration converts fractional minutes, clamping at the Duration range.
func minutesToDuration(minutes float64) time.Duration {
	d := minutes * float64(time.Minute)
	switch {
	case math.IsNaN(d):
		return 0
	case d >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case d <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(d)
}
