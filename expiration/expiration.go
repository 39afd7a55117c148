// This file defines how stored envelopes expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/tablesort/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the storage, we define a strategy so expiration behavior can be swapped easily.
*/
type Strategy interface {

	// IsExpired checks if the envelope is expired at now.
	IsExpired(*types.Envelope, time.Time) bool

	// OnAccess is called whenever a live envelope is read.
	// It returns true when it changed the envelope and the storage must write it back.
	OnAccess(*types.Envelope, time.Time) bool

	// OnWrite is called before an envelope is written with the caller's ttl.
	OnWrite(*types.Envelope, time.Time, time.Duration)
}
