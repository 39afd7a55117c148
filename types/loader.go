package types

import "context"

// Loader produces a value when ExpiringStorage.Remember misses.
type Loader interface {

	/*
		Load is called when the storage has no live entry for key.
		1. Storage checks the medium → no entry, or entry expired
		2. Storage calls Load(key) (once per key, even with concurrent callers)
		3. Storage writes the result with the requested TTL
		4. Storage returns the value
	*/
	Load(ctx context.Context, key string) (any, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ctx context.Context, key string) (any, error)

func (f LoaderFunc) Load(ctx context.Context, key string) (any, error) {
	return f(ctx, key)
}
