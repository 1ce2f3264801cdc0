package postgres

import (
	"context"
	"fmt"

	"github.com/xraph/dbmanager/evaluation"
)

// ──────────────────────────────────────────────────
// Evaluation results
// ──────────────────────────────────────────────────

func (s *Store) SaveResult(ctx context.Context, r *evaluation.Result) error {
	if _, err := s.pgdb.NewInsert(evaluationToModel(r)).Exec(ctx); err != nil {
		return fmt.Errorf("dbmanager: save evaluation %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) GetResult(ctx context.Context, tenantID, resultID string) (*evaluation.Result, error) {
	m := new(evaluationModel)
	err := s.pgdb.NewSelect(m).
		Where("id = ?", resultID).
		Where("tenant_id = ?", tenantID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("result %s: %w", resultID, evaluation.ErrNotFound)
		}
		return nil, fmt.Errorf("dbmanager: get evaluation %s: %w", resultID, err)
	}
	return evaluationFromModel(m), nil
}

func (s *Store) ListByTransaction(ctx context.Context, tenantID, transactionID string) ([]*evaluation.Result, error) {
	var models []evaluationModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("transaction_id = ?", transactionID).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: list evaluations of %s: %w", transactionID, err)
	}
	return evaluationsFromModels(models), nil
}

func (s *Store) ListResults(ctx context.Context, f evaluation.ListFilter) ([]*evaluation.Result, error) {
	var models []evaluationModel
	q := s.pgdb.NewSelect(&models).OrderExpr("created_at DESC")
	if f.TenantID != "" {
		q = q.Where("tenant_id = ?", f.TenantID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if !f.Since.IsZero() {
		q = q.Where("created_at >= ?", f.Since)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("dbmanager: list evaluations: %w", err)
	}
	return evaluationsFromModels(models), nil
}

func evaluationsFromModels(models []evaluationModel) []*evaluation.Result {
	result := make([]*evaluation.Result, len(models))
	for i := range models {
		result[i] = evaluationFromModel(&models[i])
	}
	return result
}
