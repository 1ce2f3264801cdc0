package condition

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/dbmanager/id"
)

// Service is the condition graph façade. It validates input, derives
// storage keys and the evaluation instant, and delegates to a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for temporal filtering.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a condition graph façade over store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() Store { return s.store }

// ──────────────────────────────────────────────────
// Writes
// ──────────────────────────────────────────────────

// SaveCondition inserts c, assigning an id and creation time when unset.
func (s *Service) SaveCondition(ctx context.Context, c *Condition) (*Condition, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil condition", ErrMalformedInput)
	}
	if err := validateWindow(c.InceptionTime, c.ExpiryTime); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = id.NewConditionID().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if err := s.store.SaveCondition(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SaveEntity upserts an entity. Saving an existing entity is a no-op.
func (s *Service) SaveEntity(ctx context.Context, e *Entity) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("%w: entity id is required", ErrMalformedInput)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	return s.store.SaveEntity(ctx, e)
}

// SaveAccount upserts an account. Saving an existing account is a no-op.
func (s *Service) SaveAccount(ctx context.Context, a *Account) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("%w: account id is required", ErrMalformedInput)
	}
	return s.store.SaveAccount(ctx, a)
}

// SaveEdge links subjectID to conditionID through an edge of the given
// kind. When the pair is already linked the existing edge is returned
// unchanged and attrs are ignored.
func (s *Service) SaveEdge(ctx context.Context, kind EdgeKind, conditionID, subjectID string, attrs EdgeAttrs) (*Edge, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown edge kind %q", ErrMalformedInput, kind)
	}
	if conditionID == "" || subjectID == "" {
		return nil, fmt.Errorf("%w: condition and subject ids are required", ErrMalformedInput)
	}
	if err := validateWindow(attrs.InceptionTime, attrs.ExpiryTime); err != nil {
		return nil, err
	}
	e := &Edge{
		ID:            id.NewEdgeID().String(),
		Kind:          kind,
		Source:        subjectID,
		Destination:   conditionID,
		EventTypes:    attrs.EventTypes,
		TenantID:      attrs.TenantID,
		InceptionTime: attrs.InceptionTime,
		ExpiryTime:    attrs.ExpiryTime,
	}
	return s.store.SaveEdge(ctx, e)
}

// ──────────────────────────────────────────────────
// Lookups
// ──────────────────────────────────────────────────

// GetConditionsByEntity returns the unexpired conditions attached to the
// entity identified by (entityID, scheme).
func (s *Service) GetConditionsByEntity(ctx context.Context, tenantID, entityID, scheme string) ([]*Condition, error) {
	return s.store.ListConditionsBySubject(ctx, SubjectQuery{
		TenantID:  tenantID,
		SubjectID: EntityKey(entityID, scheme),
		Kinds:     EntityEdgeKinds,
		At:        s.now(),
	})
}

// GetConditionsByAccount returns the unexpired conditions attached to the
// account identified by (accountID, scheme, agentMemberID).
func (s *Service) GetConditionsByAccount(ctx context.Context, tenantID, accountID, scheme, agentMemberID string) ([]*Condition, error) {
	return s.store.ListConditionsBySubject(ctx, SubjectQuery{
		TenantID:  tenantID,
		SubjectID: AccountKey(accountID, scheme, agentMemberID),
		Kinds:     AccountEdgeKinds,
		At:        s.now(),
	})
}

// GetConditionsByGraph traverses all four edge kinds for every subject.
// With activeOnly, edges outside their window are excluded.
func (s *Service) GetConditionsByGraph(ctx context.Context, tenantID string, activeOnly bool) (*RawConditionResponse, error) {
	return s.store.QueryGraph(ctx, GraphQuery{
		TenantID:   tenantID,
		Kinds:      AllEdgeKinds,
		ActiveOnly: activeOnly,
		At:         s.now(),
	})
}

// GetEntityConditionsByGraph traverses the two entity edge kinds for one
// entity. Unless retrieveAll is set, only active edges are returned.
func (s *Service) GetEntityConditionsByGraph(ctx context.Context, tenantID, entityID, scheme string, retrieveAll bool) (*RawConditionResponse, error) {
	return s.store.QueryGraph(ctx, GraphQuery{
		TenantID:   tenantID,
		SubjectID:  EntityKey(entityID, scheme),
		Kinds:      EntityEdgeKinds,
		ActiveOnly: !retrieveAll,
		At:         s.now(),
	})
}

// GetAccountConditionsByGraph traverses the two account edge kinds for one
// account. Unless retrieveAll is set, only active edges are returned.
func (s *Service) GetAccountConditionsByGraph(ctx context.Context, tenantID, accountID, scheme, agentMemberID string, retrieveAll bool) (*RawConditionResponse, error) {
	return s.store.QueryGraph(ctx, GraphQuery{
		TenantID:   tenantID,
		SubjectID:  AccountKey(accountID, scheme, agentMemberID),
		Kinds:      AccountEdgeKinds,
		ActiveOnly: !retrieveAll,
		At:         s.now(),
	})
}

// ──────────────────────────────────────────────────
// Updates
// ──────────────────────────────────────────────────

// UpdateEdgeExpiry sets the expiry of the edge edgeKey in collection.
// Setting it in the past soft-deletes the edge. The edge must belong to
// tenantID, otherwise ErrUnauthorized is returned and nothing is written.
func (s *Service) UpdateEdgeExpiry(ctx context.Context, collection, edgeKey string, newExpiry time.Time, tenantID string) error {
	kind, err := ParseEdgeKind(collection)
	if err != nil {
		return err
	}
	if edgeKey == "" {
		return fmt.Errorf("%w: missing edge key", ErrMalformedInput)
	}
	return s.store.UpdateEdgeExpiry(ctx, kind, edgeKey, newExpiry.UTC(), tenantID)
}

// UpdateCondition sets the expiry of a condition without touching any other
// field of its payload.
func (s *Service) UpdateCondition(ctx context.Context, conditionID string, newExpiry time.Time) error {
	if conditionID == "" {
		return fmt.Errorf("%w: missing condition id", ErrMalformedInput)
	}
	return s.store.UpdateConditionExpiry(ctx, conditionID, newExpiry.UTC())
}
