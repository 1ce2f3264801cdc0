// Package transaction defines the transaction-history domain and its
// cache-aware façade.
package transaction

import (
	"encoding/json"
	"time"
)

// Transaction is one payment message as recorded in transaction history.
// Document holds the full message; the other fields are the indexed
// columns lookups filter on.
type Transaction struct {
	EndToEndID        string          `json:"EndToEndId"`
	TenantID          string          `json:"TenantId"`
	MessageID         string          `json:"MsgId"`
	TxTp              string          `json:"TxTp"`
	DebtorAccountID   string          `json:"DbtrAcctId"`
	CreditorAccountID string          `json:"CdtrAcctId"`
	Amount            float64         `json:"Amt"`
	Currency          string          `json:"Ccy"`
	CreatedAt         time.Time       `json:"CreDtTm"`
	Document          json.RawMessage `json:"Document,omitempty"`
}
