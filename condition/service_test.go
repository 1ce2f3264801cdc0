package condition_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/id"
	"github.com/xraph/dbmanager/store/memory"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*condition.Service, *memory.Store) {
	t.Helper()
	st := memory.New()
	return condition.NewService(st, condition.WithClock(func() time.Time { return now })), st
}

func TestSaveConditionAssignsID(t *testing.T) {
	svc, _ := newService(t)
	c, err := svc.SaveCondition(context.Background(), &condition.Condition{
		TenantID: "t1", Type: "overridable-block", InceptionTime: now,
	})
	require.NoError(t, err)
	_, err = id.Parse(c.ID, id.PrefixCondition)
	assert.NoError(t, err)
	assert.Equal(t, now, c.CreatedAt)
}

func TestSaveConditionDuplicateIDFails(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	subject := condition.EntityKey("+27-555", "MSISDN")
	require.NoError(t, svc.SaveEntity(ctx, &condition.Entity{ID: subject, TenantID: "tenant-a"}))
	_, err := svc.SaveCondition(ctx, &condition.Condition{
		ID: "c1", TenantID: "tenant-a", Type: "overridable-block", InceptionTime: now,
	})
	require.NoError(t, err)
	_, err = svc.SaveEdge(ctx, condition.GovernedAsDebtorBy, "c1", subject, condition.EdgeAttrs{
		TenantID: "tenant-a", InceptionTime: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = svc.SaveCondition(ctx, &condition.Condition{
		ID: "c1", TenantID: "tenant-b", Type: "override", Reason: "replaced", InceptionTime: now,
	})
	require.ErrorIs(t, err, condition.ErrConditionExists)

	conds, err := svc.GetConditionsByEntity(ctx, "tenant-a", "+27-555", "MSISDN")
	require.NoError(t, err)
	require.Len(t, conds, 1)
	assert.Equal(t, "tenant-a", conds[0].TenantID)
	assert.Equal(t, "overridable-block", conds[0].Type)
	assert.Empty(t, conds[0].Reason)
}

func TestSaveConditionRejectsInvertedWindow(t *testing.T) {
	svc, _ := newService(t)
	before := now.Add(-time.Hour)
	_, err := svc.SaveCondition(context.Background(), &condition.Condition{
		InceptionTime: now, ExpiryTime: &before,
	})
	assert.ErrorIs(t, err, condition.ErrMalformedInput)
}

func TestEntityConditionsLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	subject := condition.EntityKey("+27-123", "MSISDN")
	require.NoError(t, svc.SaveEntity(ctx, &condition.Entity{ID: subject, TenantID: "t1"}))
	c, err := svc.SaveCondition(ctx, &condition.Condition{TenantID: "t1", Type: "non-overridable-block", InceptionTime: now})
	require.NoError(t, err)

	edge, err := svc.SaveEdge(ctx, condition.GovernedAsDebtorBy, c.ID, subject, condition.EdgeAttrs{
		TenantID: "t1", InceptionTime: now.Add(-time.Minute), EventTypes: []string{"pacs.008.001.10"},
	})
	require.NoError(t, err)

	conds, err := svc.GetConditionsByEntity(ctx, "t1", "+27-123", "MSISDN")
	require.NoError(t, err)
	require.Len(t, conds, 1)
	assert.Equal(t, c.ID, conds[0].ID)

	graph, err := svc.GetEntityConditionsByGraph(ctx, "t1", "+27-123", "MSISDN", false)
	require.NoError(t, err)
	require.Len(t, graph.GovernedAsDebtorBy, 1)
	assert.Empty(t, graph.GovernedAsCreditorBy)

	// A foreign tenant cannot expire the edge.
	err = svc.UpdateEdgeExpiry(ctx, string(condition.GovernedAsDebtorBy), edge.ID, now, "t2")
	assert.ErrorIs(t, err, condition.ErrUnauthorized)

	// Expiring at now soft-deletes it for active traversals only.
	require.NoError(t, svc.UpdateEdgeExpiry(ctx, string(condition.GovernedAsDebtorBy), edge.ID, now, "t1"))
	graph, err = svc.GetEntityConditionsByGraph(ctx, "t1", "+27-123", "MSISDN", false)
	require.NoError(t, err)
	assert.Zero(t, graph.Len())
	graph, err = svc.GetEntityConditionsByGraph(ctx, "t1", "+27-123", "MSISDN", true)
	require.NoError(t, err)
	assert.Equal(t, 1, graph.Len())
}

func TestAccountConditionsExpireWithCondition(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	subject := condition.AccountKey("1010", "MSISDN", "fsp001")
	require.NoError(t, svc.SaveAccount(ctx, &condition.Account{ID: subject, TenantID: "t1"}))
	c, err := svc.SaveCondition(ctx, &condition.Condition{TenantID: "t1", InceptionTime: now})
	require.NoError(t, err)
	_, err = svc.SaveEdge(ctx, condition.GovernedAsCreditorAccountBy, c.ID, subject, condition.EdgeAttrs{
		TenantID: "t1", InceptionTime: now,
	})
	require.NoError(t, err)

	conds, err := svc.GetConditionsByAccount(ctx, "t1", "1010", "MSISDN", "fsp001")
	require.NoError(t, err)
	require.Len(t, conds, 1)

	require.NoError(t, svc.UpdateCondition(ctx, c.ID, now))
	conds, err = svc.GetConditionsByAccount(ctx, "t1", "1010", "MSISDN", "fsp001")
	require.NoError(t, err)
	assert.Empty(t, conds)

	all, err := svc.GetAccountConditionsByGraph(ctx, "t1", "1010", "MSISDN", "fsp001", true)
	require.NoError(t, err)
	require.Len(t, all.GovernedAsCreditorAccountBy, 1)
	assert.Equal(t, now, *all.GovernedAsCreditorAccountBy[0].Condition.ExpiryTime)
}

func TestGetConditionsByGraphAggregatesAllKinds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	ent := condition.EntityKey("e", "S")
	acc := condition.AccountKey("a", "S", "m")
	require.NoError(t, svc.SaveEntity(ctx, &condition.Entity{ID: ent, TenantID: "t1"}))
	require.NoError(t, svc.SaveAccount(ctx, &condition.Account{ID: acc, TenantID: "t1"}))
	c, err := svc.SaveCondition(ctx, &condition.Condition{TenantID: "t1", InceptionTime: now})
	require.NoError(t, err)

	for _, k := range condition.AllEdgeKinds {
		subject := ent
		if k.Subject() == condition.SubjectAccount {
			subject = acc
		}
		_, err := svc.SaveEdge(ctx, k, c.ID, subject, condition.EdgeAttrs{TenantID: "t1", InceptionTime: now})
		require.NoError(t, err)
	}

	resp, err := svc.GetConditionsByGraph(ctx, "t1", true)
	require.NoError(t, err)
	for _, k := range condition.AllEdgeKinds {
		assert.Len(t, resp.Group(k), 1, k)
	}
}

func TestNotFoundIsEmpty(t *testing.T) {
	svc, _ := newService(t)
	resp, err := svc.GetEntityConditionsByGraph(context.Background(), "t1", "nobody", "X", true)
	require.NoError(t, err)
	assert.NotNil(t, resp.GovernedAsDebtorBy)
	assert.Zero(t, resp.Len())
}

func TestMalformedInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	tests := []struct {
		name string
		err  error
	}{
		{"missing collection", svc.UpdateEdgeExpiry(ctx, "", "k", now, "t1")},
		{"unknown collection", svc.UpdateEdgeExpiry(ctx, "governed_by", "k", now, "t1")},
		{"missing edge key", svc.UpdateEdgeExpiry(ctx, string(condition.GovernedAsDebtorBy), "", now, "t1")},
		{"missing condition id", svc.UpdateCondition(ctx, "", now)},
		{"entity without id", svc.SaveEntity(ctx, &condition.Entity{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, condition.ErrMalformedInput), "got %v", tt.err)
		})
	}

	_, err := svc.SaveEdge(ctx, "bogus", "c", "s", condition.EdgeAttrs{})
	assert.ErrorIs(t, err, condition.ErrMalformedInput)
}
