package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type (
	// MemoryStore keeps its entries in memory. Entries expire after the configured expiration,
	// a zero expiration keeps them forever.
	MemoryStore[K comparable, V any] struct {
		name       string
		expiration time.Duration
		entries    sync.Map
	}

	entry[V any] struct {
		value     V
		expiresAt time.Time
	}
)

func NewMemory[K comparable, V any](name string, expiration time.Duration) *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		name:       name,
		expiration: expiration,
		entries:    sync.Map{},
	}
}

func (c *MemoryStore[K, V]) Name() string {
	return c.name
}

func (c *MemoryStore[K, V]) Get(_ context.Context, key K) (V, error) {
	var zero V

	v, ok := c.entries.Load(key)
	if !ok {
		return zero, ErrNotFound
	}

	entry, ok := v.(*entry[V])
	if !ok {
		c.entries.Delete(key)
		return zero, fmt.Errorf("invalid cache entry, please retry")
	}

	if entry.expired() {
		c.entries.CompareAndDelete(key, entry)
		return zero, ErrNotFound
	}

	return entry.value, nil
}

func (c *MemoryStore[K, V]) Put(_ context.Context, key K, value V) error {
	c.entries.Store(key, newEntry(value, c.expiration))
	return nil
}

func (c *MemoryStore[K, V]) PutIfAbsent(_ context.Context, key K, value V) (V, bool, error) {
	e := newEntry(value, c.expiration)

	for {
		actual, loaded := c.entries.LoadOrStore(key, e)
		if !loaded {
			return value, false, nil
		}

		existing, ok := actual.(*entry[V])
		if ok && !existing.expired() {
			return existing.value, true, nil
		}

		if c.entries.CompareAndSwap(key, actual, e) {
			return value, false, nil
		}
	}
}

func (c *MemoryStore[K, V]) Evict(_ context.Context, key K) error {
	c.entries.Delete(key)
	return nil
}

func (c *MemoryStore[K, V]) Clear(_ context.Context) error {
	c.entries.Clear()
	return nil
}

func newEntry[V any](v V, expiration time.Duration) *entry[V] {
	e := &entry[V]{
		value: v,
	}
	if expiration > 0 {
		e.expiresAt = time.Now().Add(expiration)
	}
	return e
}

func (e *entry[V]) expired() bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return time.Since(e.expiresAt) > 0
}
