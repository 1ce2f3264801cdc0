package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xraph/dbmanager/cache"
)

// Service is the transaction-history façade.
type Service struct {
	store Store
	dist  cache.Distributed
}

// NewService creates a façade over store. dist may be nil, in which case
// cache keys are ignored.
func NewService(store Store, dist cache.Distributed) *Service {
	return &Service{store: store, dist: dist}
}

// GetTransactionByEndToEndID returns the documents for endToEndID.
//
// When cacheKey is set and the distributed cache holds a non-empty member
// set under it, the members are returned verbatim and the store is not
// queried. The cache is never populated here; the write path that built
// the set owns it.
func (s *Service) GetTransactionByEndToEndID(ctx context.Context, tenantID, endToEndID, cacheKey string) ([]json.RawMessage, error) {
	members, hit, err := cache.CachedMembers(ctx, s.dist, cacheKey)
	if err != nil {
		return nil, fmt.Errorf("transaction: get %s: cache %q: %w", endToEndID, cacheKey, err)
	}
	if hit {
		docs := make([]json.RawMessage, len(members))
		for i, m := range members {
			docs[i] = json.RawMessage(m)
		}
		return docs, nil
	}
	docs, err := s.store.GetDocumentsByEndToEndID(ctx, tenantID, endToEndID)
	if err != nil {
		return nil, fmt.Errorf("transaction: get %s: %w", endToEndID, err)
	}
	return docs, nil
}

// SaveTransaction records tx. A missing document is filled with the JSON
// form of tx itself.
func (s *Service) SaveTransaction(ctx context.Context, tx *Transaction) error {
	if tx == nil || tx.EndToEndID == "" {
		return errors.New("transaction: end-to-end id is required")
	}
	if len(tx.Document) == 0 {
		doc, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("transaction: marshal %s: %w", tx.EndToEndID, err)
		}
		tx.Document = doc
	}
	return s.store.SaveTransaction(ctx, tx)
}

// GetTransactionsByDebtorAccount returns up to limit transactions sent from accountID.
func (s *Service) GetTransactionsByDebtorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*Transaction, error) {
	return s.store.ListByDebtorAccount(ctx, tenantID, accountID, limit)
}

// GetTransactionsByCreditorAccount returns up to limit transactions received by accountID.
func (s *Service) GetTransactionsByCreditorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*Transaction, error) {
	return s.store.ListByCreditorAccount(ctx, tenantID, accountID, limit)
}

// GetReportByMessageID returns the transactions carrying messageID.
func (s *Service) GetReportByMessageID(ctx context.Context, tenantID, messageID string) ([]*Transaction, error) {
	return s.store.ListByMessageID(ctx, tenantID, messageID)
}
