package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader[T any] struct {
	calls int
	rows  []T
	err   error
}

func (l *countingLoader[T]) load(context.Context) ([]T, error) {
	l.calls++
	return l.rows, l.err
}

func TestCachedReadSingleRowIsCached(t *testing.T) {
	ctx := context.Background()
	local := NewMemory()
	policy := Policy{Enabled: true, TTL: time.Minute}
	loader := &countingLoader[string]{rows: []string{"only"}}

	first, err := CachedRead(ctx, local, "rule-001_1.0.0", policy, loader.load)
	require.NoError(t, err)
	second, err := CachedRead(ctx, local, "rule-001_1.0.0", policy, loader.load)
	require.NoError(t, err)

	assert.Equal(t, []string{"only"}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.calls, "second read within TTL must not invoke the loader")
}

type cachedRow struct{ V string }

func (r *cachedRow) Clone() *cachedRow {
	cp := *r
	return &cp
}

func TestCachedReadHitsDoNotShareRows(t *testing.T) {
	ctx := context.Background()
	local := NewMemory()
	policy := Policy{Enabled: true, TTL: time.Minute}
	loader := &countingLoader[*cachedRow]{rows: []*cachedRow{{V: "stored"}}}

	first, err := CachedRead(ctx, local, "k", policy, loader.load)
	require.NoError(t, err)
	first[0].V = "changed-by-caller"

	second, err := CachedRead(ctx, local, "k", policy, loader.load)
	require.NoError(t, err)
	second[0].V = "changed-again"
	second[0] = nil

	third, err := CachedRead(ctx, local, "k", policy, loader.load)
	require.NoError(t, err)
	require.Len(t, third, 1)
	assert.Equal(t, "stored", third[0].V)
	assert.Equal(t, 1, loader.calls)
}

func TestCachedReadMultiRowIsNotCached(t *testing.T) {
	ctx := context.Background()
	local := NewMemory()
	policy := Policy{Enabled: true, TTL: time.Minute}
	loader := &countingLoader[string]{rows: []string{"a", "b"}}

	for i := 0; i < 2; i++ {
		rows, err := CachedRead(ctx, local, "k", policy, loader.load)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	}
	assert.Equal(t, 2, loader.calls)
	assert.Equal(t, 0, local.Len())
}

func TestCachedReadEmptyIsNotCached(t *testing.T) {
	ctx := context.Background()
	local := NewMemory()
	loader := &countingLoader[int]{}

	_, err := CachedRead(ctx, local, "k", Policy{Enabled: true, TTL: time.Minute}, loader.load)
	require.NoError(t, err)
	_, err = CachedRead(ctx, local, "k", Policy{Enabled: true, TTL: time.Minute}, loader.load)
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestCachedReadDisabledPolicy(t *testing.T) {
	ctx := context.Background()
	local := NewMemory()
	loader := &countingLoader[string]{rows: []string{"only"}}

	for i := 0; i < 3; i++ {
		_, err := CachedRead(ctx, local, "k", Policy{}, loader.load)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, loader.calls)

	_, err := CachedRead[string](ctx, nil, "k", Policy{Enabled: true}, loader.load)
	require.NoError(t, err)
	assert.Equal(t, 4, loader.calls)
}

func TestCachedReadStaleUntilTTL(t *testing.T) {
	ctx := context.Background()
	clk := newClock()
	local := NewMemory(WithClock(clk.now))
	policy := Policy{Enabled: true, TTL: 30 * time.Second}
	loader := &countingLoader[string]{rows: []string{"v1"}}

	_, err := CachedRead(ctx, local, "k", policy, loader.load)
	require.NoError(t, err)

	// The backend changes, but nothing invalidates the cache.
	loader.rows = []string{"v2"}
	clk.advance(29 * time.Second)
	rows, err := CachedRead(ctx, local, "k", policy, loader.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1"}, rows, "stale value is served until the TTL runs out")

	clk.advance(2 * time.Second)
	rows, err = CachedRead(ctx, local, "k", policy, loader.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"v2"}, rows)
	assert.Equal(t, 2, loader.calls)
}

func TestCachedReadLoaderError(t *testing.T) {
	ctx := context.Background()
	local := NewMemory()
	boom := errors.New("boom")
	loader := &countingLoader[string]{err: boom}

	_, err := CachedRead(ctx, local, "k", Policy{Enabled: true}, loader.load)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, local.Len())
}

type fakeDistributed struct {
	sets  map[string][]string
	err   error
	reads int
}

func (f *fakeDistributed) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (f *fakeDistributed) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (f *fakeDistributed) Delete(context.Context, ...string) error { return nil }
func (f *fakeDistributed) AddToSet(_ context.Context, key string, members ...string) error {
	f.sets[key] = append(f.sets[key], members...)
	return nil
}
func (f *fakeDistributed) Members(_ context.Context, key string) ([]string, error) {
	f.reads++
	return f.sets[key], f.err
}

func TestCachedMembers(t *testing.T) {
	ctx := context.Background()
	dist := &fakeDistributed{sets: map[string][]string{"tx:e2e-1": {`{"a":1}`}}}

	members, hit, err := CachedMembers(ctx, dist, "tx:e2e-1")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{`{"a":1}`}, members)

	_, hit, err = CachedMembers(ctx, dist, "tx:missing")
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = CachedMembers(ctx, dist, "")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 2, dist.reads, "empty key must not reach the cache")

	_, hit, err = CachedMembers(ctx, nil, "tx:e2e-1")
	require.NoError(t, err)
	assert.False(t, hit)

	dist.err = errors.New("connection refused")
	_, _, err = CachedMembers(ctx, dist, "tx:e2e-1")
	require.Error(t, err)
}
