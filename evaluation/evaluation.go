// Package evaluation stores the final verdicts produced for transactions.
package evaluation

import (
	"encoding/json"
	"time"
)

// Status is the verdict of an evaluation.
type Status string

// Verdicts.
const (
	StatusAlert   Status = "ALRT"
	StatusNoAlert Status = "NALT"
)

// Result is one evaluation of one transaction.
type Result struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	TenantID      string          `json:"tenantId"`
	Status        Status          `json:"status"`
	Report        json.RawMessage `json:"report"`
	CreatedAt     time.Time       `json:"createdAt"`
}
