package cache

import "fmt"

type (
	// Strategy chooses the component store for a key-value pair.
	// Returning a nil store lets the federated cache fall back to its default store.
	Strategy[K comparable, V any] interface {
		Choose(key K, value V, eligible []Store[K, V]) (Store[K, V], error)
	}

	StrategyFunc[K comparable, V any] func(key K, value V, eligible []Store[K, V]) Store[K, V]

	funcStrategy[K comparable, V any] struct {
		fn       StrategyFunc[K, V]
		fallback Store[K, V]
	}

	// Conditional is a store that decides on its own whether it is meant to hold a key-value pair.
	Conditional[K comparable, V any] interface {
		Store[K, V]
		Accepts(key K, value V) bool
	}

	conditionalStore[K comparable, V any] struct {
		Store[K, V]
		accepts func(key K, value V) bool
	}

	// ConditionalStrategy chooses the first eligible store that accepts the key-value pair.
	// All eligible stores must implement Conditional.
	ConditionalStrategy[K comparable, V any] struct {
		fallback Store[K, V]
	}
)

// NewStrategy returns a strategy that calls fn and uses fallback when fn does not choose a store.
func NewStrategy[K comparable, V any](fn StrategyFunc[K, V], fallback Store[K, V]) Strategy[K, V] {
	return &funcStrategy[K, V]{
		fn:       fn,
		fallback: fallback,
	}
}

func (s *funcStrategy[K, V]) Choose(key K, value V, eligible []Store[K, V]) (Store[K, V], error) {
	if chosen := s.fn(key, value, eligible); chosen != nil {
		return chosen, nil
	}
	return s.fallback, nil
}

// NewConditional turns a store into a conditional store using the given accept function.
func NewConditional[K comparable, V any](store Store[K, V], accepts func(key K, value V) bool) Conditional[K, V] {
	return &conditionalStore[K, V]{
		Store:   store,
		accepts: accepts,
	}
}

func (c *conditionalStore[K, V]) Accepts(key K, value V) bool {
	return c.accepts(key, value)
}

// NewConditionalStrategy returns a conditional strategy. If no store accepts a key-value pair,
// fallback is chosen, or the first eligible store if fallback is nil.
// The fallback need not be among the eligible stores. A federated cache rejects it with
// ErrUnknownComponent unless it is one of its stores, which includes the default and native store.
func NewConditionalStrategy[K comparable, V any](fallback Store[K, V]) *ConditionalStrategy[K, V] {
	return &ConditionalStrategy[K, V]{
		fallback: fallback,
	}
}

func (s *ConditionalStrategy[K, V]) Choose(key K, value V, eligible []Store[K, V]) (Store[K, V], error) {
	conditionals := make([]Conditional[K, V], 0, len(eligible))
	for _, store := range eligible {
		c, ok := store.(Conditional[K, V])
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotConditional, store.Name())
		}
		conditionals = append(conditionals, c)
	}

	for _, c := range conditionals {
		if c.Accepts(key, value) {
			return c, nil
		}
	}

	if s.fallback != nil {
		return s.fallback, nil
	}
	if len(eligible) > 0 {
		return eligible[0], nil
	}

	return nil, nil
}
