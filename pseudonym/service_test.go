package pseudonym_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager/cache"
	"github.com/xraph/dbmanager/pseudonym"
	"github.com/xraph/dbmanager/store/memory"
)

func TestRelationshipsFromCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	dist, err := cache.NewRedis(cache.RedisOptions{Servers: []cache.RedisServer{{Host: mr.Host(), Port: port}}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dist.Close() })

	svc := pseudonym.NewService(memory.New(), dist)
	_, err = mr.SetAdd("rel-key", `{"from":"a1","to":"a2","EndToEndId":"e2e"}`)
	require.NoError(t, err)

	rels, err := svc.GetTransactionRelationships(ctx, "t1", "e2e", "rel-key")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "a1", rels[0].From)

	// Undecodable members surface as an error.
	_, err = mr.SetAdd("bad-key", `not json`)
	require.NoError(t, err)
	_, err = svc.GetTransactionRelationships(ctx, "t1", "e2e", "bad-key")
	assert.Error(t, err)
}

func TestPseudonymGraph(t *testing.T) {
	ctx := context.Background()
	svc := pseudonym.NewService(memory.New(), nil)

	require.NoError(t, svc.SaveAccount(ctx, &pseudonym.Account{ID: "a1", TenantID: "t1"}))
	require.NoError(t, svc.SaveAccount(ctx, &pseudonym.Account{ID: "a1", TenantID: "t1"}))
	require.NoError(t, svc.SaveEntity(ctx, &pseudonym.Entity{ID: "p1", TenantID: "t1"}))
	require.NoError(t, svc.SaveAccountHolder(ctx, &pseudonym.AccountHolder{EntityID: "p1", AccountID: "a1", TenantID: "t1"}))
	require.NoError(t, svc.SaveTransactionRelationship(ctx, &pseudonym.TransactionRelationship{
		From: "a1", To: "a2", TenantID: "t1", EndToEndID: "e2e", TxTp: "pacs.008.001.10",
	}))

	holders, err := svc.GetAccountHolders(ctx, "t1", "a1")
	require.NoError(t, err)
	require.Len(t, holders, 1)
	assert.Equal(t, "p1", holders[0].EntityID)

	rels, err := svc.GetTransactionRelationships(ctx, "t1", "e2e", "")
	require.NoError(t, err)
	assert.Len(t, rels, 1)

	hist, err := svc.GetDebtorHistory(ctx, "t1", "a1", 5)
	require.NoError(t, err)
	assert.Len(t, hist, 1)

	assert.Error(t, svc.SaveAccount(ctx, &pseudonym.Account{}))
	assert.Error(t, svc.SaveTransactionRelationship(ctx, &pseudonym.TransactionRelationship{EndToEndID: "x"}))
}
