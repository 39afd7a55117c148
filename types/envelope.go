package types

import (
	"encoding/json"
	"time"
)

// Envelope is what ExpiringStorage persists for every key.
// It is intentionally mutable so sliding expiration can push Expires forward.
type Envelope struct {
	Value   json.RawMessage `json:"value"`
	Expires time.Time       `json:"expires"`
}

// ExpiredAt reports whether the envelope is absent at the given instant.
// An entry whose expiry equals now is already gone.
func (e *Envelope) ExpiredAt(now time.Time) bool {
	return !now.Before(e.Expires)
}
