package cache

import (
	"context"
	"time"

	"github.com/erni27/imcache"
)

// ImStore is a store backed by an imcache instance.
type ImStore[K comparable, V any] struct {
	name  string
	cache *imcache.Cache[K, V]
}

// NewImStore returns an in-memory store with the given default expiration.
// A zero expiration keeps entries until they are evicted.
func NewImStore[K comparable, V any](name string, expiration time.Duration) *ImStore[K, V] {
	var opts []imcache.Option[K, V]
	if expiration > 0 {
		opts = append(opts, imcache.WithDefaultExpirationOption[K, V](expiration))
	}

	return &ImStore[K, V]{
		name:  name,
		cache: imcache.New[K, V](opts...),
	}
}

func (s *ImStore[K, V]) Name() string {
	return s.name
}

func (s *ImStore[K, V]) Get(_ context.Context, key K) (V, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		var zero V
		return zero, ErrNotFound
	}
	return v, nil
}

func (s *ImStore[K, V]) Put(_ context.Context, key K, value V) error {
	s.cache.Set(key, value, imcache.WithDefaultExpiration())
	return nil
}

func (s *ImStore[K, V]) PutIfAbsent(_ context.Context, key K, value V) (V, bool, error) {
	v, present := s.cache.GetOrSet(key, value, imcache.WithDefaultExpiration())
	return v, present, nil
}

func (s *ImStore[K, V]) Evict(_ context.Context, key K) error {
	s.cache.Remove(key)
	return nil
}

func (s *ImStore[K, V]) Clear(_ context.Context) error {
	s.cache.RemoveAll()
	return nil
}
