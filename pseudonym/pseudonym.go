// Package pseudonym maintains the pseudonymised party graph: accounts,
// entities, the holder edges between them and the transaction
// relationships linking debtor and creditor accounts.
package pseudonym

import "time"

// Account is a pseudonymised account key.
type Account struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
}

// Entity is a pseudonymised party key.
type Entity struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"creDtTm"`
}

// AccountHolder links an entity to an account it holds.
type AccountHolder struct {
	EntityID  string    `json:"from"`
	AccountID string    `json:"to"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"creDtTm"`
}

// TransactionRelationship links the debtor account of a payment to its
// creditor account. (TenantID, EndToEndID, TxTp) is its natural key.
type TransactionRelationship struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	TenantID   string    `json:"tenantId"`
	EndToEndID string    `json:"EndToEndId"`
	MessageID  string    `json:"MsgId"`
	PmtInfID   string    `json:"PmtInfId,omitempty"`
	TxTp       string    `json:"TxTp"`
	Amount     float64   `json:"Amt"`
	Currency   string    `json:"Ccy"`
	Lat        string    `json:"lat,omitempty"`
	Long       string    `json:"long,omitempty"`
	CreatedAt  time.Time `json:"CreDtTm"`
}
