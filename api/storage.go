package api

import (
	"context"
	"time"

	"github.com/krisalay/tablesort/types"
)

/*
Storage defines the PUBLIC API of the expiring key-value storage.
It is a small contract for remembering user preferences across sessions,
hiding the medium (memory, SQLite, Redis), envelope encoding and expiry rules.
*/
type Storage interface {

	/*
		Get returns the value stored under key.

		BEHAVIOR:
		-------------------
		1. Key absent, or stored value is not a valid envelope:
		   - returns (nil, false). Corruption is a cold cache, never an error.
		2. Envelope expired (now >= expires):
		   - removes the key from the medium
		   - returns (nil, false)
		3. Otherwise:
		   - returns the decoded JSON value (maps, slices, float64, string, bool)
	*/
	Get(ctx context.Context, key string) (any, bool)

	/*
		GetInto behaves like Get but decodes the value into dest.
		Returns false on any miss, including a value that does not fit dest.
	*/
	GetInto(ctx context.Context, key string, dest any) bool

	/*
		Has reports whether Get would return a value.
		It is not atomic with a later Get: another writer may run in between.
	*/
	Has(ctx context.Context, key string) bool

	/*
		Set stores value for ttl, unconditionally overwriting any previous entry.
		A ttl <= 0 stores an entry that is already expired.
	*/
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// SetMinutes is Set with a (possibly fractional) number of minutes.
	SetMinutes(ctx context.Context, key string, value any, minutes float64) error

	// Remove deletes key. Removing a missing key is safe.
	Remove(ctx context.Context, key string) error

	/*
		Remember returns the live value for key, or loads, stores and returns it.
		Concurrent misses on the same key share one Load call.
	*/
	Remember(ctx context.Context, key string, ttl time.Duration, loader types.Loader) (any, error)
}
