package memory

import (
	"context"
	"fmt"

	"github.com/xraph/dbmanager/evaluation"
)

// ──────────────────────────────────────────────────
// Evaluation results
// ──────────────────────────────────────────────────

func (s *Store) SaveResult(_ context.Context, r *evaluation.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, clone(r))
	return nil
}

func (s *Store) GetResult(_ context.Context, tenantID, resultID string) (*evaluation.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.results {
		if r.ID == resultID && r.TenantID == tenantID {
			return clone(r), nil
		}
	}
	return nil, fmt.Errorf("result %s: %w", resultID, evaluation.ErrNotFound)
}

func (s *Store) ListByTransaction(_ context.Context, tenantID, transactionID string) ([]*evaluation.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*evaluation.Result, 0)
	for _, r := range s.results {
		if r.TenantID == tenantID && r.TransactionID == transactionID {
			result = append(result, clone(r))
		}
	}
	return result, nil
}

func (s *Store) ListResults(_ context.Context, f evaluation.ListFilter) ([]*evaluation.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*evaluation.Result, 0)
	for _, r := range s.results {
		if f.TenantID != "" && r.TenantID != f.TenantID {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if !f.Since.IsZero() && r.CreatedAt.Before(f.Since) {
			continue
		}
		result = append(result, clone(r))
	}
	sortNewestFirst(result, func(r *evaluation.Result) int64 { return r.CreatedAt.UnixNano() })
	return limitSlice(result, f.Limit), nil
}
