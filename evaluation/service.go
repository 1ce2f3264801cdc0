package evaluation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/dbmanager/id"
)

// Service is the evaluation façade.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a façade over store.
func NewService(store Store) *Service {
	return &Service{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// SaveEvaluationResult stores r, assigning an id and creation time when unset.
func (s *Service) SaveEvaluationResult(ctx context.Context, r *Result) error {
	if r == nil || r.TransactionID == "" {
		return errors.New("evaluation: transaction id is required")
	}
	switch r.Status {
	case StatusAlert, StatusNoAlert:
	default:
		return fmt.Errorf("evaluation: unknown status %q", r.Status)
	}
	if r.ID == "" {
		r.ID = id.NewEvaluationID().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	return s.store.SaveResult(ctx, r)
}

// GetEvaluation returns one result by id.
func (s *Service) GetEvaluation(ctx context.Context, tenantID, resultID string) (*Result, error) {
	if resultID == "" {
		return nil, errors.New("evaluation: result id is required")
	}
	return s.store.GetResult(ctx, tenantID, resultID)
}

// GetEvaluationsByTransaction returns every result recorded for transactionID.
func (s *Service) GetEvaluationsByTransaction(ctx context.Context, tenantID, transactionID string) ([]*Result, error) {
	return s.store.ListByTransaction(ctx, tenantID, transactionID)
}

// ListAlerts returns the tenant's alerts raised at or after since, newest first.
func (s *Service) ListAlerts(ctx context.Context, tenantID string, since time.Time, limit int) ([]*Result, error) {
	return s.store.ListResults(ctx, ListFilter{
		TenantID: tenantID,
		Status:   StatusAlert,
		Since:    since,
		Limit:    limit,
	})
}
