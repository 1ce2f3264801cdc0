package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/transaction"
)

// ──────────────────────────────────────────────────
// Condition graph models
// ──────────────────────────────────────────────────

type entityModel struct {
	grove.BaseModel `grove:"table:entity"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,pk"`
	CreatedAt       time.Time `grove:"cre_dt_tm,notnull"`
}

type accountModel struct {
	grove.BaseModel `grove:"table:account"`
	ID              string `grove:"id,pk"`
	TenantID        string `grove:"tenant_id,pk"`
}

// conditionModel keeps the whole condition as one jsonb document so the
// expiry can be patched in place.
type conditionModel struct {
	grove.BaseModel `grove:"table:condition"`
	ID              string          `grove:"id,pk"`
	TenantID        string          `grove:"tenant_id,notnull"`
	Condition       json.RawMessage `grove:"condition,type:jsonb"`
}

func conditionToModel(c *condition.Condition) (*conditionModel, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return &conditionModel{ID: c.ID, TenantID: c.TenantID, Condition: payload}, nil
}

func conditionFromPayload(payload []byte) (*condition.Condition, error) {
	c := new(condition.Condition)
	if err := json.Unmarshal(payload, c); err != nil {
		return nil, err
	}
	return c, nil
}

// edgeRow is the column set shared by the four edge tables.
type edgeRow struct {
	ID            string
	Source        string
	Destination   string
	EventTypes    []string
	TenantID      string
	InceptionTime time.Time
	ExpiryTime    *time.Time
}

const edgeColumns = "id, source, destination, evt_tp, tenant_id, incptn_dt_tm, xprtn_dt_tm"

func (r *edgeRow) dest() []any {
	return []any{&r.ID, &r.Source, &r.Destination, &r.EventTypes, &r.TenantID, &r.InceptionTime, &r.ExpiryTime}
}

func (r *edgeRow) toEdge(kind condition.EdgeKind) *condition.Edge {
	e := &condition.Edge{
		ID:            r.ID,
		Kind:          kind,
		Source:        r.Source,
		Destination:   r.Destination,
		EventTypes:    r.EventTypes,
		TenantID:      r.TenantID,
		InceptionTime: r.InceptionTime.UTC(),
	}
	if e.EventTypes == nil {
		e.EventTypes = []string{}
	}
	if r.ExpiryTime != nil {
		t := r.ExpiryTime.UTC()
		e.ExpiryTime = &t
	}
	return e
}

// ──────────────────────────────────────────────────
// Transaction history model
// ──────────────────────────────────────────────────

type transactionModel struct {
	grove.BaseModel   `grove:"table:transaction_history"`
	EndToEndID        string          `grove:"end_to_end_id,pk"`
	TenantID          string          `grove:"tenant_id,pk"`
	TxTp              string          `grove:"tx_tp,pk"`
	MessageID         string          `grove:"msg_id,notnull"`
	DebtorAccountID   string          `grove:"debtor_account_id,notnull"`
	CreditorAccountID string          `grove:"creditor_account_id,notnull"`
	Amount            float64         `grove:"amount,notnull"`
	Currency          string          `grove:"currency,notnull"`
	CreatedAt         time.Time       `grove:"cre_dt_tm,notnull"`
	Document          json.RawMessage `grove:"document,type:jsonb"`
}

func transactionToModel(tx *transaction.Transaction) *transactionModel {
	return &transactionModel{
		EndToEndID:        tx.EndToEndID,
		TenantID:          tx.TenantID,
		TxTp:              tx.TxTp,
		MessageID:         tx.MessageID,
		DebtorAccountID:   tx.DebtorAccountID,
		CreditorAccountID: tx.CreditorAccountID,
		Amount:            tx.Amount,
		Currency:          tx.Currency,
		CreatedAt:         tx.CreatedAt,
		Document:          tx.Document,
	}
}

func transactionFromModel(m *transactionModel) *transaction.Transaction {
	return &transaction.Transaction{
		EndToEndID:        m.EndToEndID,
		TenantID:          m.TenantID,
		TxTp:              m.TxTp,
		MessageID:         m.MessageID,
		DebtorAccountID:   m.DebtorAccountID,
		CreditorAccountID: m.CreditorAccountID,
		Amount:            m.Amount,
		Currency:          m.Currency,
		CreatedAt:         m.CreatedAt.UTC(),
		Document:          m.Document,
	}
}

// ──────────────────────────────────────────────────
// Configuration models
// ──────────────────────────────────────────────────

type ruleConfigModel struct {
	grove.BaseModel `grove:"table:rule_config"`
	ID              string          `grove:"id,pk"`
	Cfg             string          `grove:"cfg,pk"`
	TenantID        string          `grove:"tenant_id,pk"`
	Desc            string          `grove:"description"`
	Config          json.RawMessage `grove:"configuration,type:jsonb"`
}

func ruleConfigToModel(rc *ruleconfig.RuleConfig) *ruleConfigModel {
	return &ruleConfigModel{ID: rc.ID, Cfg: rc.Cfg, TenantID: rc.TenantID, Desc: rc.Desc, Config: rc.Config}
}

func ruleConfigFromModel(m *ruleConfigModel) *ruleconfig.RuleConfig {
	return &ruleconfig.RuleConfig{ID: m.ID, Cfg: m.Cfg, TenantID: m.TenantID, Desc: m.Desc, Config: m.Config}
}

type typologyModel struct {
	grove.BaseModel `grove:"table:typology"`
	ID              string          `grove:"id,pk"`
	Cfg             string          `grove:"cfg,pk"`
	TenantID        string          `grove:"tenant_id,pk"`
	Desc            string          `grove:"description"`
	Expression      json.RawMessage `grove:"expression,type:jsonb"`
}

func typologyToModel(t *ruleconfig.Typology) *typologyModel {
	return &typologyModel{ID: t.ID, Cfg: t.Cfg, TenantID: t.TenantID, Desc: t.Desc, Expression: t.Expression}
}

func typologyFromModel(m *typologyModel) *ruleconfig.Typology {
	return &ruleconfig.Typology{ID: m.ID, Cfg: m.Cfg, TenantID: m.TenantID, Desc: m.Desc, Expression: m.Expression}
}

// ──────────────────────────────────────────────────
// Network map model
// ──────────────────────────────────────────────────

type networkMapModel struct {
	grove.BaseModel `grove:"table:network_map"`
	ID              string          `grove:"id,pk"`
	TenantID        string          `grove:"tenant_id,notnull"`
	Cfg             string          `grove:"cfg,notnull"`
	Active          bool            `grove:"active,notnull"`
	Messages        json.RawMessage `grove:"messages,type:jsonb"`
	CreatedAt       time.Time       `grove:"created_at,notnull"`
}

func networkMapToModel(nm *networkmap.NetworkMap) *networkMapModel {
	return &networkMapModel{
		ID:        nm.ID,
		TenantID:  nm.TenantID,
		Cfg:       nm.Cfg,
		Active:    nm.Active,
		Messages:  nm.Messages,
		CreatedAt: nm.CreatedAt,
	}
}

func networkMapFromModel(m *networkMapModel) *networkmap.NetworkMap {
	return &networkmap.NetworkMap{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Cfg:       m.Cfg,
		Active:    m.Active,
		Messages:  m.Messages,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// ──────────────────────────────────────────────────
// Evaluation model
// ──────────────────────────────────────────────────

type evaluationModel struct {
	grove.BaseModel `grove:"table:evaluation"`
	ID              string          `grove:"id,pk"`
	TransactionID   string          `grove:"transaction_id,notnull"`
	TenantID        string          `grove:"tenant_id,notnull"`
	Status          string          `grove:"status,notnull"`
	Report          json.RawMessage `grove:"report,type:jsonb"`
	CreatedAt       time.Time       `grove:"created_at,notnull"`
}

func evaluationToModel(r *evaluation.Result) *evaluationModel {
	return &evaluationModel{
		ID:            r.ID,
		TransactionID: r.TransactionID,
		TenantID:      r.TenantID,
		Status:        string(r.Status),
		Report:        r.Report,
		CreatedAt:     r.CreatedAt,
	}
}

func evaluationFromModel(m *evaluationModel) *evaluation.Result {
	return &evaluation.Result{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		TenantID:      m.TenantID,
		Status:        evaluation.Status(m.Status),
		Report:        m.Report,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}
