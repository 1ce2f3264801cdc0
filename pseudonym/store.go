package pseudonym

import "context"

// Store defines persistence operations for the pseudonym graph. Every save
// is idempotent: a duplicate natural key is silently ignored.
type Store interface {
	CreateAccount(ctx context.Context, a *Account) error
	CreateEntity(ctx context.Context, e *Entity) error
	CreateAccountHolder(ctx context.Context, h *AccountHolder) error
	CreateTransactionRelationship(ctx context.Context, tr *TransactionRelationship) error

	ListAccountHolders(ctx context.Context, tenantID, accountID string) ([]*AccountHolder, error)
	ListTransactionRelationships(ctx context.Context, tenantID, endToEndID string) ([]*TransactionRelationship, error)

	// ListDebtorHistory returns the newest relationships whose debtor is
	// accountID. A limit of zero returns every match.
	ListDebtorHistory(ctx context.Context, tenantID, accountID string, limit int) ([]*TransactionRelationship, error)
}
