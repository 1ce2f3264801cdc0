package pseudonym

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/dbmanager/cache"
)

// Service is the pseudonym graph façade.
type Service struct {
	store Store
	dist  cache.Distributed
	now   func() time.Time
}

// NewService creates a façade over store. dist may be nil.
func NewService(store Store, dist cache.Distributed) *Service {
	return &Service{
		store: store,
		dist:  dist,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SaveAccount records an account key.
func (s *Service) SaveAccount(ctx context.Context, a *Account) error {
	if a == nil || a.ID == "" {
		return errors.New("pseudonym: account id is required")
	}
	return s.store.CreateAccount(ctx, a)
}

// SaveEntity records an entity key.
func (s *Service) SaveEntity(ctx context.Context, e *Entity) error {
	if e == nil || e.ID == "" {
		return errors.New("pseudonym: entity id is required")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	return s.store.CreateEntity(ctx, e)
}

// SaveAccountHolder links an entity to an account.
func (s *Service) SaveAccountHolder(ctx context.Context, h *AccountHolder) error {
	if h == nil || h.EntityID == "" || h.AccountID == "" {
		return errors.New("pseudonym: entity and account ids are required")
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	return s.store.CreateAccountHolder(ctx, h)
}

// SaveTransactionRelationship links a debtor account to a creditor account.
func (s *Service) SaveTransactionRelationship(ctx context.Context, tr *TransactionRelationship) error {
	if tr == nil || tr.EndToEndID == "" || tr.From == "" || tr.To == "" {
		return errors.New("pseudonym: end-to-end id and both accounts are required")
	}
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = s.now()
	}
	return s.store.CreateTransactionRelationship(ctx, tr)
}

// GetAccountHolders returns the holders of accountID.
func (s *Service) GetAccountHolders(ctx context.Context, tenantID, accountID string) ([]*AccountHolder, error) {
	return s.store.ListAccountHolders(ctx, tenantID, accountID)
}

// GetTransactionRelationships returns the relationships recorded for
// endToEndID. A non-empty member set under cacheKey is decoded and
// returned instead of querying the store; the cache is never written.
func (s *Service) GetTransactionRelationships(ctx context.Context, tenantID, endToEndID, cacheKey string) ([]*TransactionRelationship, error) {
	members, hit, err := cache.CachedMembers(ctx, s.dist, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("pseudonym: relationships %s: cache %q: %w", endToEndID, cacheKey, err)
	}
	if hit {
		out := make([]*TransactionRelationship, 0, len(members))
		for _, m := range members {
			tr := new(TransactionRelationship)
			if err := json.Unmarshal([]byte(m), tr); err != nil {
				return nil, fmt.Errorf("pseudonym: decode cached relationship: %w", err)
			}
			out = append(out, tr)
		}
		return out, nil
	}
	return s.store.ListTransactionRelationships(ctx, tenantID, endToEndID)
}

// GetDebtorHistory returns up to limit payments sent from accountID.
func (s *Service) GetDebtorHistory(ctx context.Context, tenantID, accountID string, limit int) ([]*TransactionRelationship, error) {
	return s.store.ListDebtorHistory(ctx, tenantID, accountID, limit)
}
