package expiration

import (
	"time"

	"github.com/krisalay/tablesort/types"
)

/*
Absolute is the default strategy: an entry lives exactly ttl after it was written.
Reads never extend it. A zero or negative ttl produces an entry that is already expired.
*/
type Absolute struct{}

// IsExpired treats an entry as gone once now reaches its expiry.
func (Absolute) IsExpired(env *types.Envelope, now time.Time) bool {
	return env.ExpiredAt(now)
}

func (Absolute) OnAccess(*types.Envelope, time.Time) bool { return false }

func (Absolute) OnWrite(env *types.Envelope, now time.Time, ttl time.Duration) {
	env.Expires = now.Add(ttl)
}
