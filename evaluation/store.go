package evaluation

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an evaluation result does not exist.
var ErrNotFound = errors.New("evaluation: result not found")

// ListFilter selects evaluation results.
type ListFilter struct {
	TenantID string
	Status   Status
	Since    time.Time
	Limit    int
}

// Store defines persistence operations for evaluation results.
type Store interface {
	SaveResult(ctx context.Context, r *Result) error
	// GetResult returns ErrNotFound when no result has the id.
	GetResult(ctx context.Context, tenantID, resultID string) (*Result, error)
	ListByTransaction(ctx context.Context, tenantID, transactionID string) ([]*Result, error)
	ListResults(ctx context.Context, f ListFilter) ([]*Result, error)
}
