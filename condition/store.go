package condition

import (
	"context"
	"time"
)

// SubjectQuery selects the conditions attached to one subject.
type SubjectQuery struct {
	TenantID  string
	SubjectID string
	Kinds     []EdgeKind
	// At is the instant the condition's own expiry is compared against.
	At time.Time
}

// GraphQuery drives a graph traversal. An empty SubjectID traverses every
// subject; an empty TenantID does not filter by tenant.
type GraphQuery struct {
	TenantID   string
	SubjectID  string
	Kinds      []EdgeKind
	ActiveOnly bool
	At         time.Time
}

// Store defines persistence operations for the condition graph.
//
// Lookups that find nothing return an empty result and a nil error.
type Store interface {
	// SaveCondition inserts a condition. The ID must already be set.
	SaveCondition(ctx context.Context, c *Condition) error

	// SaveEntity inserts an entity; an existing (id, tenant) is left untouched.
	SaveEntity(ctx context.Context, e *Entity) error

	// SaveAccount inserts an account; an existing (id, tenant) is left untouched.
	SaveAccount(ctx context.Context, a *Account) error

	// SaveEdge inserts an edge unless (source, destination) already exists
	// for its kind, then returns the stored row, which is the pre-existing
	// one on conflict.
	SaveEdge(ctx context.Context, e *Edge) (*Edge, error)

	// ListConditionsBySubject returns the distinct conditions attached to
	// the subject through any of q.Kinds whose expiry is absent or after q.At.
	ListConditionsBySubject(ctx context.Context, q SubjectQuery) ([]*Condition, error)

	// QueryGraph joins each kind in q.Kinds independently with its subject
	// and condition, and aggregates the results per kind.
	QueryGraph(ctx context.Context, q GraphQuery) (*RawConditionResponse, error)

	// UpdateEdgeExpiry re-reads the edge and sets its expiry only when it
	// exists and belongs to tenantID; otherwise it returns ErrUnauthorized.
	UpdateEdgeExpiry(ctx context.Context, kind EdgeKind, edgeID string, expiry time.Time, tenantID string) error

	// UpdateConditionExpiry sets only the expiry field of the condition
	// payload. A missing condition is not an error.
	UpdateConditionExpiry(ctx context.Context, conditionID string, expiry time.Time) error
}
