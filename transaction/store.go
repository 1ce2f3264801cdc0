package transaction

import (
	"context"
	"encoding/json"
)

// Store defines persistence operations for transaction history.
type Store interface {
	// SaveTransaction inserts a transaction. Saving the same
	// (tenant, end-to-end id, message type) again is a no-op.
	SaveTransaction(ctx context.Context, tx *Transaction) error

	// GetDocumentsByEndToEndID returns the stored documents of every
	// message sharing the end-to-end id, oldest first.
	GetDocumentsByEndToEndID(ctx context.Context, tenantID, endToEndID string) ([]json.RawMessage, error)

	// ListByDebtorAccount returns the newest transactions sent from accountID.
	ListByDebtorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*Transaction, error)

	// ListByCreditorAccount returns the newest transactions received by accountID.
	ListByCreditorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*Transaction, error)

	// ListByMessageID returns the transactions carrying the message id.
	ListByMessageID(ctx context.Context, tenantID, messageID string) ([]*Transaction, error)
}
