package engine

import (
	"time"

	"github.com/krisalay/tablesort/expiration"
	"github.com/krisalay/tablesort/logger"
	"github.com/krisalay/tablesort/types"
)

/*
StorageEngine is the policy layer of ExpiringStorage.
It is responsible for the "behavior" of the storage, NOT persistence.

It decides:
- What time it is
- When an envelope is expired
- How expiry is set on writes and moved on reads
- Where events are reported (metrics, logs)

It does NOT:
- Talk to the medium
- Encode or decode envelopes
*/
type StorageEngine struct {

	// Expiration controls when an envelope is considered gone.
	// Defaults to expiration.Absolute.
	Expiration expiration.Strategy

	// Metrics records hits, misses, expirations, writes and corrupt entries.
	Metrics types.Metrics

	// Logger receives debug/warn lines for lazy deletes and medium failures.
	Logger logger.Logger

	// Now is the clock. Tests replace it to move time without sleeping.
	Now func() time.Time
}

// Option configures a StorageEngine.
type Option func(*StorageEngine)

func WithExpiration(s expiration.Strategy) Option {
	return func(e *StorageEngine) { e.Expiration = s }
}

func WithMetrics(m types.Metrics) Option {
	return func(e *StorageEngine) { e.Metrics = m }
}

func WithLogger(l logger.Logger) Option {
	return func(e *StorageEngine) { e.Logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *StorageEngine) { e.Now = now }
}

/*
NewStorageEngine creates a StorageEngine.
Every field ends up non-nil.
*/
func NewStorageEngine(opts ...Option) *StorageEngine {
	e := &StorageEngine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.Expiration == nil {
		e.Expiration = expiration.Absolute{}
	}
	if e.Metrics == nil {
		e.Metrics = types.NoopMetrics{}
	}
	if e.Logger == nil {
		e.Logger = logger.Default()
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	return e
}

// IsExpired checks an envelope against the current clock.
func (e *StorageEngine) IsExpired(env *types.Envelope) bool {
	return e.Expiration.IsExpired(env, e.Now())
}

/*
OnRead is called every time a live envelope is about to be returned.
It reports whether the envelope changed and must be written back (sliding expiry).
*/
func (e *StorageEngine) OnRead(env *types.Envelope) bool {
	e.Metrics.Hit()
	return e.Expiration.OnAccess(env, e.Now())
}

// OnWrite stamps the envelope's expiry for a write with the given ttl.
func (e *StorageEngine) OnWrite(env *types.Envelope, ttl time.Duration) {
	e.Expiration.OnWrite(env, e.Now(), ttl)
}
