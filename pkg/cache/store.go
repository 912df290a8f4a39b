package cache

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by stores when no entry exists for a key.
	ErrNotFound = errors.New("cache entry not found")
	// ErrUnknownComponent is returned when a strategy chooses a store which is not part of the federated cache.
	ErrUnknownComponent = errors.New("chosen store is not a component of the federated cache")
	// ErrNoComponents is returned when a federated cache is created without component stores.
	ErrNoComponents = errors.New("federated cache requires at least one component store")
	// ErrDuplicateName is returned when two component stores of a federated cache share a name.
	ErrDuplicateName = errors.New("component store names must be unique")
	// ErrNotConditional is returned when a conditional strategy is applied to stores that are not conditional.
	ErrNotConditional = errors.New("conditional strategy can only be applied to conditional stores")
)

type (
	// Store is a named key-value cache.
	Store[K comparable, V any] interface {
		Name() string
		// Get returns ErrNotFound if there is no entry for the given key.
		Get(ctx context.Context, key K) (V, error)
		Put(ctx context.Context, key K, value V) error
		// PutIfAbsent stores the value only if there is no entry for the key yet.
		// If there is one, the existing value is returned together with true.
		PutIfAbsent(ctx context.Context, key K, value V) (V, bool, error)
		Evict(ctx context.Context, key K) error
		Clear(ctx context.Context) error
	}

	// Pinger is implemented by stores that can check the connection to their backend.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)
