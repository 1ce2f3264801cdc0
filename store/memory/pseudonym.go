package memory

import (
	"context"

	"github.com/xraph/dbmanager/pseudonym"
)

// ──────────────────────────────────────────────────
// Pseudonyms
// ──────────────────────────────────────────────────

func (s *Store) CreateAccount(_ context.Context, a *pseudonym.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(a.TenantID, a.ID)
	if _, ok := s.pAccounts[k]; !ok {
		s.pAccounts[k] = clone(a)
	}
	return nil
}

func (s *Store) CreateEntity(_ context.Context, e *pseudonym.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(e.TenantID, e.ID)
	if _, ok := s.pEntities[k]; !ok {
		s.pEntities[k] = clone(e)
	}
	return nil
}

func (s *Store) CreateAccountHolder(_ context.Context, h *pseudonym.AccountHolder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(h.TenantID, h.EntityID, h.AccountID)
	if _, ok := s.holders[k]; !ok {
		s.holders[k] = clone(h)
	}
	return nil
}

func (s *Store) CreateTransactionRelationship(_ context.Context, tr *pseudonym.TransactionRelationship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(tr.TenantID, tr.EndToEndID, tr.TxTp)
	if _, ok := s.relIndex[k]; ok {
		return nil
	}
	s.relIndex[k] = struct{}{}
	s.relationships = append(s.relationships, clone(tr))
	return nil
}

func (s *Store) ListAccountHolders(_ context.Context, tenantID, accountID string) ([]*pseudonym.AccountHolder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*pseudonym.AccountHolder, 0)
	for _, h := range s.holders {
		if h.TenantID == tenantID && h.AccountID == accountID {
			result = append(result, clone(h))
		}
	}
	sortNewestFirst(result, func(h *pseudonym.AccountHolder) int64 { return h.CreatedAt.UnixNano() })
	return result, nil
}

func (s *Store) ListTransactionRelationships(_ context.Context, tenantID, endToEndID string) ([]*pseudonym.TransactionRelationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*pseudonym.TransactionRelationship, 0)
	for _, tr := range s.relationships {
		if tr.TenantID == tenantID && tr.EndToEndID == endToEndID {
			result = append(result, clone(tr))
		}
	}
	return result, nil
}

func (s *Store) ListDebtorHistory(_ context.Context, tenantID, accountID string, limit int) ([]*pseudonym.TransactionRelationship, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*pseudonym.TransactionRelationship, 0)
	for _, tr := range s.relationships {
		if tr.TenantID == tenantID && tr.From == accountID {
			result = append(result, clone(tr))
		}
	}
	sortNewestFirst(result, func(tr *pseudonym.TransactionRelationship) int64 { return tr.CreatedAt.UnixNano() })
	return limitSlice(result, limit), nil
}
