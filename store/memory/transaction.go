package memory

import (
	"context"
	"encoding/json"

	"github.com/xraph/dbmanager/transaction"
)

// ──────────────────────────────────────────────────
// Transaction history
// ──────────────────────────────────────────────────

func (s *Store) SaveTransaction(_ context.Context, tx *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(tx.TenantID, tx.EndToEndID, tx.TxTp)
	if _, ok := s.txIndex[k]; ok {
		return nil
	}
	s.txIndex[k] = struct{}{}
	s.transactions = append(s.transactions, copyTransaction(tx))
	return nil
}

func (s *Store) GetDocumentsByEndToEndID(_ context.Context, tenantID, endToEndID string) ([]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]json.RawMessage, 0)
	for _, tx := range s.transactions {
		if tx.TenantID == tenantID && tx.EndToEndID == endToEndID {
			docs = append(docs, append(json.RawMessage(nil), tx.Document...))
		}
	}
	return docs, nil
}

func (s *Store) ListByDebtorAccount(_ context.Context, tenantID, accountID string, limit int) ([]*transaction.Transaction, error) {
	return s.listTransactions(func(tx *transaction.Transaction) bool {
		return tx.TenantID == tenantID && tx.DebtorAccountID == accountID
	}, limit), nil
}

func (s *Store) ListByCreditorAccount(_ context.Context, tenantID, accountID string, limit int) ([]*transaction.Transaction, error) {
	return s.listTransactions(func(tx *transaction.Transaction) bool {
		return tx.TenantID == tenantID && tx.CreditorAccountID == accountID
	}, limit), nil
}

func (s *Store) ListByMessageID(_ context.Context, tenantID, messageID string) ([]*transaction.Transaction, error) {
	return s.listTransactions(func(tx *transaction.Transaction) bool {
		return tx.TenantID == tenantID && tx.MessageID == messageID
	}, 0), nil
}

func (s *Store) listTransactions(match func(*transaction.Transaction) bool, limit int) []*transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*transaction.Transaction, 0)
	for _, tx := range s.transactions {
		if match(tx) {
			result = append(result, copyTransaction(tx))
		}
	}
	sortNewestFirst(result, func(tx *transaction.Transaction) int64 { return tx.CreatedAt.UnixNano() })
	return limitSlice(result, limit)
}

func copyTransaction(tx *transaction.Transaction) *transaction.Transaction {
	cp := *tx
	cp.Document = append(json.RawMessage(nil), tx.Document...)
	return &cp
}
