// Package storage holds the key-value mediums ExpiringStorage can sit on.
package storage

import (
	"context"
	"sync"
	"sync/atomic"
)

/*
Memory is an in-process medium. It behaves like a browser's localStorage
for the lifetime of the process and is what tests and the CLI's "memory"
driver use.

It is a Copy-On-Write map:
- Readers always see an immutable snapshot, without locks
- Writers build a NEW map and swap it in atomically
- Writers serialize on mu so two concurrent writes never lose each other

Preference storage is read far more often than written, so this fits.
*/
type Memory struct {
	mu   sync.Mutex
	data atomic.Pointer[map[string]string]
}

func NewMemory() *Memory {
	m := &Memory{}
	empty := make(map[string]string)
	m.data.Store(&empty)
	return m
}

func (m *Memory) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := (*m.data.Load())[key]
	return v, ok, nil
}

/*
SetItem inserts or replaces a value. This is where copy-on-write happens:
copy the current map, add the value, atomically replace the old map.
*/
func (m *Memory) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := *m.data.Load()
	n := make(map[string]string, len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[key] = value
	m.data.Store(&n)
	return nil
}

// RemoveItem deletes a key. Just like SetItem, this uses copy-on-write.
func (m *Memory) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := *m.data.Load()
	if _, ok := old[key]; !ok {
		return nil
	}
	n := make(map[string]string, len(old))
	for k, v := range old {
		if k != key {
			n[k] = v
		}
	}
	m.data.Store(&n)
	return nil
}

// Len returns how many raw items are stored, expired or not.
func (m *Memory) Len() int {
	return len(*m.data.Load())
}
