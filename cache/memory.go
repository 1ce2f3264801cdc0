package cache

import (
	"context"
	"sync"
	"time"
)

// Compile-time interface check.
var _ Local = (*Memory)(nil)

// Memory is a bounded in-memory cache with per-entry TTL. Expired entries
// are dropped lazily when read, or in bulk when the cache is full.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
	metrics *Metrics
}

type entry struct {
	value      any
	insertedAt time.Time
	ttl        time.Duration
}

// expired reports insertedAt + ttl < now.
func (e *entry) expired(now time.Time) bool {
	return e.insertedAt.Add(e.ttl).Before(now)
}

// MemoryOption configures the memory cache.
type MemoryOption func(*Memory)

// WithTTL sets the TTL used when Set is called with a non-positive ttl.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(m *Memory) { m.ttl = ttl }
}

// WithMaxSize sets the maximum number of cache entries.
func WithMaxSize(n int) MemoryOption {
	return func(m *Memory) { m.maxSize = n }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// WithMetrics records hits, misses, sets and evictions.
func WithMetrics(metrics *Metrics) MemoryOption {
	return func(m *Memory) { m.metrics = metrics }
}

// NewMemory creates a new in-memory cache.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]*entry),
		ttl:     5 * time.Minute,
		maxSize: 10000,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns a live cached value.
func (m *Memory) Get(_ context.Context, key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		m.metrics.miss(LayerLocal)
		return nil, false
	}
	if e.expired(m.now()) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have replaced it.
		if cur, ok := m.entries[key]; ok && cur == e {
			delete(m.entries, key)
			m.metrics.evict(LayerLocal)
		}
		m.mu.Unlock()
		m.metrics.miss(LayerLocal)
		return nil, false
	}
	m.metrics.hit(LayerLocal)
	return e.value, true
}

// Set stores value under key. A non-positive ttl uses the cache default.
func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxSize {
		m.evictExpired()
		if len(m.entries) >= m.maxSize {
			m.evictOne()
		}
	}

	m.entries[key] = &entry{
		value:      value,
		insertedAt: m.now(),
		ttl:        ttl,
	}
	m.metrics.set(LayerLocal)
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Purge removes every entry.
func (m *Memory) Purge() {
	m.mu.Lock()
	m.entries = make(map[string]*entry)
	m.mu.Unlock()
}

// evictExpired removes all expired entries. Must hold write lock.
func (m *Memory) evictExpired() {
	now := m.now()
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
			m.metrics.evict(LayerLocal)
		}
	}
}

// evictOne removes one arbitrary entry. Must hold write lock.
func (m *Memory) evictOne() {
	for k := range m.entries {
		delete(m.entries, k)
		m.metrics.evict(LayerLocal)
		return
	}
}
