package evaluation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/id"
	"github.com/xraph/dbmanager/store/memory"
)

func TestSaveAndGetEvaluation(t *testing.T) {
	ctx := context.Background()
	svc := evaluation.NewService(memory.New())

	r := &evaluation.Result{TransactionID: "e2e-1", TenantID: "t1", Status: evaluation.StatusAlert}
	require.NoError(t, svc.SaveEvaluationResult(ctx, r))
	_, err := id.Parse(r.ID, id.PrefixEvaluation)
	require.NoError(t, err)
	assert.False(t, r.CreatedAt.IsZero())

	got, err := svc.GetEvaluation(ctx, "t1", r.ID)
	require.NoError(t, err)
	assert.Equal(t, evaluation.StatusAlert, got.Status)

	_, err = svc.GetEvaluation(ctx, "t1", id.NewEvaluationID().String())
	assert.ErrorIs(t, err, evaluation.ErrNotFound)

	byTx, err := svc.GetEvaluationsByTransaction(ctx, "t1", "e2e-1")
	require.NoError(t, err)
	assert.Len(t, byTx, 1)
}

func TestSaveEvaluationRejectsUnknownStatus(t *testing.T) {
	svc := evaluation.NewService(memory.New())
	err := svc.SaveEvaluationResult(context.Background(), &evaluation.Result{TransactionID: "x", Status: "MAYBE"})
	assert.Error(t, err)
}

func TestListAlerts(t *testing.T) {
	ctx := context.Background()
	svc := evaluation.NewService(memory.New())
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, st := range []evaluation.Status{evaluation.StatusAlert, evaluation.StatusNoAlert, evaluation.StatusAlert} {
		require.NoError(t, svc.SaveEvaluationResult(ctx, &evaluation.Result{
			TransactionID: "tx", TenantID: "t1", Status: st, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	alerts, err := svc.ListAlerts(ctx, "t1", base.Add(30*time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, base.Add(2*time.Hour), alerts[0].CreatedAt)
}
