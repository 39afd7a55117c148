package types

import "context"

/*
Medium is the contract between ExpiringStorage and the persistent key-value store underneath it.
It mirrors the browser localStorage surface: string keys, string values, no expiry of its own.

Every implementation is shared mutable state. There is no transactional isolation between
readers and writers, so a Get followed by a Set from another process may interleave freely.
*/
type Medium interface {

	// GetItem returns the raw stored string. ok is false when the key does not exist.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem writes value under key, overwriting any previous value.
	SetItem(ctx context.Context, key string, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}
