package transaction_test

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager/cache"
	"github.com/xraph/dbmanager/store/memory"
	"github.com/xraph/dbmanager/transaction"
)

func newService(t *testing.T) (*transaction.Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	dist, err := cache.NewRedis(cache.RedisOptions{Servers: []cache.RedisServer{{Host: mr.Host(), Port: port}}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dist.Close() })
	return transaction.NewService(memory.New(), dist), mr
}

func TestGetTransactionByEndToEndIDFromStore(t *testing.T) {
	ctx := context.Background()
	svc, mr := newService(t)

	require.NoError(t, svc.SaveTransaction(ctx, &transaction.Transaction{
		EndToEndID: "e2e-1", TenantID: "t1", TxTp: "pacs.008.001.10",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	docs, err := svc.GetTransactionByEndToEndID(ctx, "t1", "e2e-1", "")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var got transaction.Transaction
	require.NoError(t, json.Unmarshal(docs[0], &got))
	assert.Equal(t, "pacs.008.001.10", got.TxTp)

	// A cache key with no members falls through to the store and leaves
	// the cache untouched.
	docs, err = svc.GetTransactionByEndToEndID(ctx, "t1", "e2e-1", "e2e-1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.False(t, mr.Exists("e2e-1"))
}

func TestGetTransactionByEndToEndIDCacheHit(t *testing.T) {
	ctx := context.Background()
	svc, mr := newService(t)

	_, err := mr.SetAdd("e2e-cached", `{"TxTp":"pacs.002.001.12"}`)
	require.NoError(t, err)

	docs, err := svc.GetTransactionByEndToEndID(ctx, "t1", "e2e-cached", "e2e-cached")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"TxTp":"pacs.002.001.12"}`, string(docs[0]))
}

func TestGetTransactionByEndToEndIDCacheError(t *testing.T) {
	ctx := context.Background()
	svc, mr := newService(t)
	mr.SetError("ERR server failure")

	_, err := svc.GetTransactionByEndToEndID(ctx, "t1", "e2e", "e2e")
	require.Error(t, err)
}

func TestAccountHistory(t *testing.T) {
	ctx := context.Background()
	svc := transaction.NewService(memory.New(), nil)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 3 {
		require.NoError(t, svc.SaveTransaction(ctx, &transaction.Transaction{
			EndToEndID: "e" + strconv.Itoa(i), TenantID: "t1", TxTp: "pacs.008.001.10", MessageID: "m" + strconv.Itoa(i),
			DebtorAccountID: "dbtr", CreditorAccountID: "cdtr", CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	sent, err := svc.GetTransactionsByDebtorAccount(ctx, "t1", "dbtr", 2)
	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.Equal(t, "e2", sent[0].EndToEndID)

	received, err := svc.GetTransactionsByCreditorAccount(ctx, "t1", "cdtr", 0)
	require.NoError(t, err)
	assert.Len(t, received, 3)

	report, err := svc.GetReportByMessageID(ctx, "t1", "m1")
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, "e1", report[0].EndToEndID)

	assert.Error(t, svc.SaveTransaction(ctx, &transaction.Transaction{}))
}
