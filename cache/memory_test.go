package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryCacheHitMiss(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithTTL(time.Minute))

	// Miss
	if _, ok := c.Get(ctx, "rule-001_1.0.0"); ok {
		t.Fatal("expected cache miss")
	}

	// Set + Hit
	c.Set(ctx, "rule-001_1.0.0", "cfg", 0)
	got, ok := c.Get(ctx, "rule-001_1.0.0")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != "cfg" {
		t.Fatalf("expected cfg, got %v", got)
	}
}

func TestMemoryCacheTTLExpiry(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	c := NewMemory(WithClock(clk.now))

	c.Set(ctx, "k", 1, 10*time.Second)

	// insertedAt + ttl == now is still live.
	clk.advance(10 * time.Second)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("expected hit at exact expiry boundary")
	}

	clk.advance(time.Nanosecond)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expected cache miss after TTL expiry")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted on read, have %d", c.Len())
	}
}

func TestMemoryCachePerEntryTTL(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	c := NewMemory(WithClock(clk.now), WithTTL(time.Hour))

	c.Set(ctx, "short", "a", time.Second)
	c.Set(ctx, "default", "b", 0)

	clk.advance(time.Minute)
	if _, ok := c.Get(ctx, "short"); ok {
		t.Fatal("short entry should have expired")
	}
	if _, ok := c.Get(ctx, "default"); !ok {
		t.Fatal("default entry should still be live")
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	c.Set(ctx, "a", 1, 0)
	c.Set(ctx, "b", 2, 0)
	c.Delete(ctx, "a")

	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatal("a should be deleted")
	}
	if _, ok := c.Get(ctx, "b"); !ok {
		t.Fatal("b should still be cached")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after purge, have %d", c.Len())
	}
}

func TestMemoryCacheMaxSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(WithMaxSize(2))

	for i := 0; i < 5; i++ {
		c.Set(ctx, string(rune('a'+i)), i, 0)
	}

	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()
	if size > 2 {
		t.Fatalf("expected max 2 entries, got %d", size)
	}
}

func TestMemoryCacheMaxSizePrefersExpired(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	c := NewMemory(WithMaxSize(2), WithClock(clk.now))

	c.Set(ctx, "old", 1, time.Second)
	c.Set(ctx, "live", 2, time.Hour)
	clk.advance(time.Minute)
	c.Set(ctx, "new", 3, time.Hour)

	if _, ok := c.Get(ctx, "live"); !ok {
		t.Fatal("live entry should survive when an expired one can be evicted")
	}
	if _, ok := c.Get(ctx, "new"); !ok {
		t.Fatal("new entry should be stored")
	}
}

func TestMemoryCacheMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	c := NewMemory(WithMetrics(m))

	c.Get(ctx, "k")
	c.Set(ctx, "k", 1, 0)
	c.Get(ctx, "k")
	c.Get(ctx, "k")

	if got := testutil.ToFloat64(m.Hits(LayerLocal)); got != 2 {
		t.Fatalf("expected 2 hits, got %v", got)
	}
	if got := testutil.ToFloat64(m.Misses(LayerLocal)); got != 1 {
		t.Fatalf("expected 1 miss, got %v", got)
	}
	if got := testutil.ToFloat64(m.Sets(LayerLocal)); got != 1 {
		t.Fatalf("expected 1 set, got %v", got)
	}

	// A second Metrics on the same registry reuses the collectors.
	m2, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("re-registering metrics: %v", err)
	}
	if got := testutil.ToFloat64(m2.Hits(LayerLocal)); got != 2 {
		t.Fatalf("expected shared hit counter, got %v", got)
	}
}
