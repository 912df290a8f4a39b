package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hashicorp/go-set/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

type (
	// FederatedConfig configures a federated cache. All fields are optional.
	FederatedConfig[K comparable, V any] struct {
		// Name of the federated cache, defaults to the name of the default store.
		Name string
		// Strategy chooses the component store for new entries, defaults to a ConditionalStrategy.
		Strategy Strategy[K, V]
		// Default is used when the strategy does not choose a store, defaults to the first component.
		Default Store[K, V]
		// Native is returned by Native, defaults to the federated cache itself.
		Native Store[K, V]
		Log    *slog.Logger
		// Registerer enables prometheus metrics when set.
		Registerer prometheus.Registerer
	}

	// Federated is a cache spreading its entries over multiple component stores.
	// Stores are identified by their name.
	Federated[K comparable, V any] struct {
		name       string
		components []Store[K, V]
		stores     []Store[K, V]
		storeNames *set.Set[string]
		byName     map[string]Store[K, V]
		def        Store[K, V]
		native     Store[K, V]
		strategy   Strategy[K, V]

		lock    sync.RWMutex
		log     *slog.Logger
		metrics *metrics
	}

	// LoadFunc loads a value which is not yet cached.
	LoadFunc[V any] func(ctx context.Context) (V, error)

	// FetchAll returns all entries that should be preloaded into a cache.
	FetchAll[K comparable, V any] func(ctx context.Context) (map[K]V, error)
)

func NewFederated[K comparable, V any](c FederatedConfig[K, V], components ...Store[K, V]) (*Federated[K, V], error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	if c.Default == nil {
		c.Default = components[0]
	}
	if c.Strategy == nil {
		c.Strategy = NewConditionalStrategy[K, V](nil)
	}
	if c.Name == "" {
		c.Name = c.Default.Name()
	}
	if c.Log == nil {
		c.Log = slog.Default()
	}

	f := &Federated[K, V]{
		name:       c.Name,
		components: components,
		storeNames: set.New[string](len(components) + 2),
		byName:     make(map[string]Store[K, V], len(components)+2),
		def:        c.Default,
		native:     c.Native,
		strategy:   c.Strategy,
		log:        c.Log.With("federated-cache", c.Name),
	}

	for _, s := range components {
		if !f.storeNames.Insert(s.Name()) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, s.Name())
		}
		f.stores = append(f.stores, s)
		f.byName[s.Name()] = s
	}

	// native and default may be one of the components, they are identified by name
	for _, s := range []Store[K, V]{c.Native, c.Default} {
		if s == nil || !f.storeNames.Insert(s.Name()) {
			continue
		}
		f.stores = append(f.stores, s)
		f.byName[s.Name()] = s
	}

	m, err := newMetrics(c.Registerer, c.Name)
	if err != nil {
		return nil, fmt.Errorf("unable to register metrics: %w", err)
	}
	f.metrics = m

	return f, nil
}

func (f *Federated[K, V]) Name() string {
	return f.name
}

// Native returns the configured native store or the federated cache itself.
func (f *Federated[K, V]) Native() Store[K, V] {
	if f.native != nil {
		return f.native
	}
	return f
}

// RWMutex exposes the lock guarding all cache operations. The lock is not reentrant,
// so cache methods must not be called while holding it.
func (f *Federated[K, V]) RWMutex() *sync.RWMutex {
	return &f.lock
}

// Get returns the value of the first store holding the key.
func (f *Federated[K, V]) Get(ctx context.Context, key K) (V, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.get(ctx, key)
}

// Put removes the key from all stores and then stores the value in the store chosen by the strategy.
func (f *Federated[K, V]) Put(ctx context.Context, key K, value V) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.put(ctx, key, value)
}

// PutIfAbsent stores the value in the chosen store only if no store holds the key yet.
func (f *Federated[K, V]) PutIfAbsent(ctx context.Context, key K, value V) (V, bool, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	existing, err := f.get(ctx, key)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return value, false, err
	}

	store, err := f.choose(key, value)
	if err != nil {
		return value, false, err
	}

	existing, present, err := store.PutIfAbsent(ctx, key, value)
	if err != nil {
		return value, false, fmt.Errorf("unable to store entry in %q: %w", store.Name(), err)
	}
	if !present {
		f.metrics.put()
	}

	return existing, present, nil
}

// GetOrLoad returns the cached value or loads, stores and returns it.
func (f *Federated[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[V]) (V, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	v, err := f.get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return v, err
	}

	v, err = load(ctx)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("error loading cache entry: %w", err)
	}

	err = f.put(ctx, key, v)
	if err != nil {
		return v, err
	}

	return v, nil
}

// Preload stores all fetched entries.
func (f *Federated[K, V]) Preload(ctx context.Context, fetchAll FetchAll[K, V]) error {
	all, err := fetchAll(ctx)
	if err != nil {
		return fmt.Errorf("error fetching cache entries: %w", err)
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	for k, v := range all {
		err := f.put(ctx, k, v)
		if err != nil {
			return err
		}
	}

	f.log.Debug("preloaded entries", "count", len(all))

	return nil
}

func (f *Federated[K, V]) Evict(ctx context.Context, key K) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.evict(ctx, key)
}

// Clear removes all entries from all stores.
func (f *Federated[K, V]) Clear(ctx context.Context) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	var errs []error
	for _, s := range f.stores {
		if err := s.Clear(ctx); err != nil {
			errs = append(errs, fmt.Errorf("unable to clear %q: %w", s.Name(), err))
		}
	}

	return errors.Join(errs...)
}

// Check pings all stores implementing Pinger concurrently and returns the result per store name.
// Stores which cannot be pinged are reported with a nil error. A failing store does not cancel
// the checks of the others, the returned error joins all failures.
func (f *Federated[K, V]) Check(ctx context.Context) (map[string]error, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]error, len(f.stores))
	)

	var g errgroup.Group

	for _, s := range f.stores {
		g.Go(func() error {
			var err error
			if p, ok := s.(Pinger); ok {
				err = p.Ping(ctx)
			}
			if err != nil {
				f.log.Error("unhealthy store", "store", s.Name(), "error", err)
			}

			mu.Lock()
			results[s.Name()] = err
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []error
	for name, err := range results {
		if err != nil {
			errs = append(errs, fmt.Errorf("store %q is unhealthy: %w", name, err))
		}
	}

	return results, errors.Join(errs...)
}

func (f *Federated[K, V]) get(ctx context.Context, key K) (V, error) {
	for _, s := range f.stores {
		v, err := s.Get(ctx, key)
		if err == nil {
			f.metrics.hit()
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) {
			var zero V
			return zero, fmt.Errorf("unable to read from %q: %w", s.Name(), err)
		}
	}

	f.metrics.miss()

	var zero V
	return zero, ErrNotFound
}

func (f *Federated[K, V]) put(ctx context.Context, key K, value V) error {
	err := f.evict(ctx, key)
	if err != nil {
		return err
	}

	store, err := f.choose(key, value)
	if err != nil {
		return err
	}

	err = store.Put(ctx, key, value)
	if err != nil {
		return fmt.Errorf("unable to store entry in %q: %w", store.Name(), err)
	}

	f.metrics.put()
	f.log.Debug("stored entry", "store", store.Name())

	return nil
}

func (f *Federated[K, V]) evict(ctx context.Context, key K) error {
	var errs []error
	for _, s := range f.stores {
		if err := s.Evict(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("unable to evict from %q: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Federated[K, V]) choose(key K, value V) (Store[K, V], error) {
	store, err := f.strategy.Choose(key, value, f.components)
	if err != nil {
		return nil, fmt.Errorf("unable to choose store: %w", err)
	}

	if store == nil {
		store = f.def
	}

	// writes must go to the registered store, which is the one reads and evictions walk
	registered, ok := f.byName[store.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, store.Name())
	}

	return registered, nil
}
