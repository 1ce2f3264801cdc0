package networkmap_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager/cache"
	"github.com/xraph/dbmanager/id"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/store/memory"
)

func TestActiveNetworkMap(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	local := cache.NewMemory(cache.WithClock(func() time.Time { return now }))
	svc := networkmap.NewService(memory.New(), local, cache.Policy{Enabled: true, TTL: time.Minute})

	first := &networkmap.NetworkMap{TenantID: "t1", Cfg: "1.0.0", Active: true, Messages: json.RawMessage(`[]`)}
	require.NoError(t, svc.SaveNetworkMap(ctx, first))
	_, err := id.Parse(first.ID, id.PrefixNetworkMap)
	require.NoError(t, err)

	maps, err := svc.GetActiveNetworkMap(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, maps, 1)
	_, cached := local.Get(ctx, networkmap.CacheKey("t1"))
	assert.True(t, cached)

	second := &networkmap.NetworkMap{TenantID: "t1", Cfg: "2.0.0", Active: true, Messages: json.RawMessage(`[]`)}
	require.NoError(t, svc.SaveNetworkMap(ctx, second))
	maps, err = svc.GetActiveNetworkMap(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, "1.0.0", maps[0].Cfg, "cached map is served until its TTL lapses")

	now = now.Add(2 * time.Minute)
	maps, err = svc.GetActiveNetworkMap(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, "2.0.0", maps[0].Cfg)
}

func TestSaveNetworkMapRequiresMessages(t *testing.T) {
	svc := networkmap.NewService(memory.New(), nil, cache.Policy{})
	assert.Error(t, svc.SaveNetworkMap(context.Background(), &networkmap.NetworkMap{TenantID: "t1"}))
}
