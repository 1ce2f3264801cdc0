package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xraph/dbmanager/transaction"
)

// ──────────────────────────────────────────────────
// Transaction history
// ──────────────────────────────────────────────────

func (s *Store) SaveTransaction(ctx context.Context, tx *transaction.Transaction) error {
	_, err := s.pgdb.NewInsert(transactionToModel(tx)).
		OnConflict("(tenant_id, end_to_end_id, tx_tp) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: save transaction %s/%s: %w", tx.EndToEndID, tx.TxTp, err)
	}
	return nil
}

func (s *Store) GetDocumentsByEndToEndID(ctx context.Context, tenantID, endToEndID string) ([]json.RawMessage, error) {
	var models []transactionModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("end_to_end_id = ?", endToEndID).
		OrderExpr("cre_dt_tm ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: get transaction %s: %w", endToEndID, err)
	}
	docs := make([]json.RawMessage, len(models))
	for i := range models {
		docs[i] = models[i].Document
	}
	return docs, nil
}

func (s *Store) ListByDebtorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*transaction.Transaction, error) {
	return s.listTransactions(ctx, "debtor_account_id", tenantID, accountID, limit)
}

func (s *Store) ListByCreditorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*transaction.Transaction, error) {
	return s.listTransactions(ctx, "creditor_account_id", tenantID, accountID, limit)
}

func (s *Store) ListByMessageID(ctx context.Context, tenantID, messageID string) ([]*transaction.Transaction, error) {
	return s.listTransactions(ctx, "msg_id", tenantID, messageID, 0)
}

func (s *Store) listTransactions(ctx context.Context, column, tenantID, value string, limit int) ([]*transaction.Transaction, error) {
	var models []transactionModel
	q := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where(column+" = ?", value).
		OrderExpr("cre_dt_tm DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("dbmanager: list transactions by %s %s: %w", column, value, err)
	}
	result := make([]*transaction.Transaction, len(models))
	for i := range models {
		result[i] = transactionFromModel(&models[i])
	}
	return result, nil
}
