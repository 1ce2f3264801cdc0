package dbmanager

import (
	"context"
	"time"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/plugin"
)

// conditionGraph decorates the condition service with plugin events.
// Lookups pass straight through.
type conditionGraph struct {
	*condition.Service
	plugins *plugin.Registry
}

func (g *conditionGraph) SaveCondition(ctx context.Context, c *condition.Condition) (*condition.Condition, error) {
	saved, err := g.Service.SaveCondition(ctx, c)
	if err != nil {
		return nil, err
	}
	g.plugins.EmitConditionSaved(ctx, saved)
	return saved, nil
}

func (g *conditionGraph) SaveEdge(ctx context.Context, kind condition.EdgeKind, conditionID, subjectID string, attrs condition.EdgeAttrs) (*condition.Edge, error) {
	e, err := g.Service.SaveEdge(ctx, kind, conditionID, subjectID, attrs)
	if err != nil {
		return nil, err
	}
	g.plugins.EmitEdgeSaved(ctx, e)
	return e, nil
}

func (g *conditionGraph) UpdateEdgeExpiry(ctx context.Context, collection, edgeKey string, newExpiry time.Time, tenantID string) error {
	if err := g.Service.UpdateEdgeExpiry(ctx, collection, edgeKey, newExpiry, tenantID); err != nil {
		return err
	}
	g.plugins.EmitEdgeExpiryUpdated(ctx, condition.EdgeKind(collection), edgeKey, newExpiry.UTC())
	return nil
}

func (g *conditionGraph) UpdateCondition(ctx context.Context, conditionID string, newExpiry time.Time) error {
	if err := g.Service.UpdateCondition(ctx, conditionID, newExpiry); err != nil {
		return err
	}
	g.plugins.EmitConditionExpiryUpdated(ctx, conditionID, newExpiry.UTC())
	return nil
}
