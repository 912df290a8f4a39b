package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "navel"
	metricsSubsystem = "federated_cache"
)

type metrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	puts   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer, cacheName string) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}

	hits, err := registerCounter(reg, "hits_total", "number of cache lookups that found an entry")
	if err != nil {
		return nil, err
	}
	misses, err := registerCounter(reg, "misses_total", "number of cache lookups that did not find an entry")
	if err != nil {
		return nil, err
	}
	puts, err := registerCounter(reg, "puts_total", "number of entries written to the cache")
	if err != nil {
		return nil, err
	}

	return &metrics{
		hits:   hits.WithLabelValues(cacheName),
		misses: misses.WithLabelValues(cacheName),
		puts:   puts.WithLabelValues(cacheName),
	}, nil
}

func registerCounter(reg prometheus.Registerer, name, help string) (*prometheus.CounterVec, error) {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: metricsSubsystem,
		Name:      name,
		Help:      help,
	}, []string{"cache"})

	err := reg.Register(vec)
	if err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		return existing, nil
	}

	return vec, nil
}

func (m *metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *metrics) put() {
	if m != nil {
		m.puts.Inc()
	}
}
