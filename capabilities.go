package dbmanager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/pseudonym"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/transaction"
)

// PseudonymsDB is the pseudonym graph capability.
type PseudonymsDB interface {
	SaveAccount(ctx context.Context, a *pseudonym.Account) error
	SaveEntity(ctx context.Context, e *pseudonym.Entity) error
	SaveAccountHolder(ctx context.Context, h *pseudonym.AccountHolder) error
	SaveTransactionRelationship(ctx context.Context, tr *pseudonym.TransactionRelationship) error
	GetAccountHolders(ctx context.Context, tenantID, accountID string) ([]*pseudonym.AccountHolder, error)
	GetTransactionRelationships(ctx context.Context, tenantID, endToEndID, cacheKey string) ([]*pseudonym.TransactionRelationship, error)
	GetDebtorHistory(ctx context.Context, tenantID, accountID string, limit int) ([]*pseudonym.TransactionRelationship, error)
}

// TransactionHistoryDB is the transaction history capability.
type TransactionHistoryDB interface {
	GetTransactionByEndToEndID(ctx context.Context, tenantID, endToEndID, cacheKey string) ([]json.RawMessage, error)
	SaveTransaction(ctx context.Context, tx *transaction.Transaction) error
	GetTransactionsByDebtorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*transaction.Transaction, error)
	GetTransactionsByCreditorAccount(ctx context.Context, tenantID, accountID string, limit int) ([]*transaction.Transaction, error)
	GetReportByMessageID(ctx context.Context, tenantID, messageID string) ([]*transaction.Transaction, error)
}

// ConfigurationDB is the rule configuration capability.
type ConfigurationDB interface {
	GetRuleConfig(ctx context.Context, tenantID, ruleID, cfg string, limit int) ([]*ruleconfig.RuleConfig, error)
	GetTypologyExpression(ctx context.Context, tenantID, typologyID, cfg string) ([]*ruleconfig.Typology, error)
	SaveRuleConfig(ctx context.Context, rc *ruleconfig.RuleConfig) error
	SaveTypologyExpression(ctx context.Context, t *ruleconfig.Typology) error
}

// NetworkMapDB is the network map capability.
type NetworkMapDB interface {
	GetActiveNetworkMap(ctx context.Context, tenantID string) ([]*networkmap.NetworkMap, error)
	SaveNetworkMap(ctx context.Context, nm *networkmap.NetworkMap) error
}

// EvaluationDB is the evaluation result capability.
type EvaluationDB interface {
	SaveEvaluationResult(ctx context.Context, r *evaluation.Result) error
	GetEvaluation(ctx context.Context, tenantID, resultID string) (*evaluation.Result, error)
	GetEvaluationsByTransaction(ctx context.Context, tenantID, transactionID string) ([]*evaluation.Result, error)
	ListAlerts(ctx context.Context, tenantID string, since time.Time, limit int) ([]*evaluation.Result, error)
}

// ConditionGraphDB is the temporal condition graph capability, backed by
// the event history database.
type ConditionGraphDB interface {
	SaveCondition(ctx context.Context, c *condition.Condition) (*condition.Condition, error)
	SaveEntity(ctx context.Context, e *condition.Entity) error
	SaveAccount(ctx context.Context, a *condition.Account) error
	SaveEdge(ctx context.Context, kind condition.EdgeKind, conditionID, subjectID string, attrs condition.EdgeAttrs) (*condition.Edge, error)

	GetConditionsByEntity(ctx context.Context, tenantID, entityID, scheme string) ([]*condition.Condition, error)
	GetConditionsByAccount(ctx context.Context, tenantID, accountID, scheme, agentMemberID string) ([]*condition.Condition, error)
	GetConditionsByGraph(ctx context.Context, tenantID string, activeOnly bool) (*condition.RawConditionResponse, error)
	GetEntityConditionsByGraph(ctx context.Context, tenantID, entityID, scheme string, retrieveAll bool) (*condition.RawConditionResponse, error)
	GetAccountConditionsByGraph(ctx context.Context, tenantID, accountID, scheme, agentMemberID string, retrieveAll bool) (*condition.RawConditionResponse, error)

	UpdateEdgeExpiry(ctx context.Context, collection, edgeKey string, newExpiry time.Time, tenantID string) error
	UpdateCondition(ctx context.Context, conditionID string, newExpiry time.Time) error
}

// Compile-time interface checks.
var (
	_ PseudonymsDB         = (*pseudonym.Service)(nil)
	_ TransactionHistoryDB = (*transaction.Service)(nil)
	_ ConfigurationDB      = (*ruleconfig.Service)(nil)
	_ NetworkMapDB         = (*networkmap.Service)(nil)
	_ EvaluationDB         = (*evaluation.Service)(nil)
	_ ConditionGraphDB     = (*condition.Service)(nil)
	_ ConditionGraphDB     = (*conditionGraph)(nil)
)
