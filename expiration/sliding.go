package expiration

import (
	"time"

	"github.com/krisalay/tablesort/types"
)

/*
Sliding implements "expire after access". Every time someone reads the entry,
the expiration timer is pushed forward to at least now + TTL. As long as the
preference keeps getting used, it stays alive. If nobody touches it for a while,
it expires.

A read never shortens an entry: a ttl given to Set that reaches further than
now + TTL is kept.
*/
type Sliding struct {

	// TTL is how long the entry stays valid AFTER it is accessed.
	TTL time.Duration
}

func (s *Sliding) IsExpired(env *types.Envelope, now time.Time) bool {
	return env.ExpiredAt(now)
}

// OnAccess moves expiry out to now + TTL when that is later than the current
// deadline, and reports whether it did.
func (s *Sliding) OnAccess(env *types.Envelope, now time.Time) bool {
	if s.TTL <= 0 {
		return false
	}
	next := now.Add(s.TTL)
	if !next.After(env.Expires) {
		return false
	}
	env.Expires = next
	return true
}

// OnWrite stamps now + ttl, same as Absolute. A ttl <= 0 is already expired.
func (s *Sliding) OnWrite(env *types.Envelope, now time.Time, ttl time.Duration) {
	env.Expires = now.Add(ttl)
}
