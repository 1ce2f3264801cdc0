package cache

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache layer label values.
const (
	LayerLocal       = "local"
	LayerDistributed = "distributed"
)

// Metrics holds Prometheus counters for cache operations, labelled by layer.
// A nil *Metrics records nothing.
type Metrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	sets      *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// NewMetrics creates cache counters and registers them with reg. Counters
// already registered by another Metrics on the same registry are reused.
// A nil reg leaves the counters unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	newVec := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dbmanager",
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		}, []string{"layer"})
	}
	m := &Metrics{
		hits:      newVec("hits_total", "Total number of cache hits"),
		misses:    newVec("misses_total", "Total number of cache misses"),
		sets:      newVec("sets_total", "Total number of cache set operations"),
		evictions: newVec("evictions_total", "Total number of cache evictions"),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.hits, err = register(reg, m.hits); err != nil {
		return nil, err
	}
	if m.misses, err = register(reg, m.misses); err != nil {
		return nil, err
	}
	if m.sets, err = register(reg, m.sets); err != nil {
		return nil, err
	}
	if m.evictions, err = register(reg, m.evictions); err != nil {
		return nil, err
	}
	return m, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("cache: register metrics: %w", err)
	}
	return c, nil
}

// Hits returns the hit counter for layer.
func (m *Metrics) Hits(layer string) prometheus.Counter { return m.hits.WithLabelValues(layer) }

// Misses returns the miss counter for layer.
func (m *Metrics) Misses(layer string) prometheus.Counter { return m.misses.WithLabelValues(layer) }

// Sets returns the set counter for layer.
func (m *Metrics) Sets(layer string) prometheus.Counter { return m.sets.WithLabelValues(layer) }

func (m *Metrics) hit(layer string) {
	if m != nil {
		m.hits.WithLabelValues(layer).Inc()
	}
}

func (m *Metrics) miss(layer string) {
	if m != nil {
		m.misses.WithLabelValues(layer).Inc()
	}
}

func (m *Metrics) set(layer string) {
	if m != nil {
		m.sets.WithLabelValues(layer).Inc()
	}
}

func (m *Metrics) evict(layer string) {
	if m != nil {
		m.evictions.WithLabelValues(layer).Inc()
	}
}
