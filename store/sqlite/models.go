package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/ruleconfig"
)

type ruleConfigModel struct {
	grove.BaseModel `grove:"table:rule_config"`
	ID              string `grove:"id,pk"`
	Cfg             string `grove:"cfg,pk"`
	TenantID        string `grove:"tenant_id,pk"`
	Desc            string `grove:"description"`
	Config          string `grove:"configuration"` // JSON text
}

func ruleConfigToModel(rc *ruleconfig.RuleConfig) *ruleConfigModel {
	return &ruleConfigModel{ID: rc.ID, Cfg: rc.Cfg, TenantID: rc.TenantID, Desc: rc.Desc, Config: jsonText(rc.Config)}
}

func ruleConfigFromModel(m *ruleConfigModel) *ruleconfig.RuleConfig {
	return &ruleconfig.RuleConfig{ID: m.ID, Cfg: m.Cfg, TenantID: m.TenantID, Desc: m.Desc, Config: json.RawMessage(m.Config)}
}

type typologyModel struct {
	grove.BaseModel `grove:"table:typology"`
	ID              string `grove:"id,pk"`
	Cfg             string `grove:"cfg,pk"`
	TenantID        string `grove:"tenant_id,pk"`
	Desc            string `grove:"description"`
	Expression      string `grove:"expression"` // JSON text
}

func typologyToModel(t *ruleconfig.Typology) *typologyModel {
	return &typologyModel{ID: t.ID, Cfg: t.Cfg, TenantID: t.TenantID, Desc: t.Desc, Expression: jsonText(t.Expression)}
}

func typologyFromModel(m *typologyModel) *ruleconfig.Typology {
	return &ruleconfig.Typology{ID: m.ID, Cfg: m.Cfg, TenantID: m.TenantID, Desc: m.Desc, Expression: json.RawMessage(m.Expression)}
}

type networkMapModel struct {
	grove.BaseModel `grove:"table:network_map"`
	ID              string    `grove:"id,pk"`
	TenantID        string    `grove:"tenant_id,notnull"`
	Cfg             string    `grove:"cfg,notnull"`
	Active          bool      `grove:"active,notnull"`
	Messages        string    `grove:"messages"` // JSON text
	CreatedAt       time.Time `grove:"created_at,notnull"`
}

func networkMapToModel(nm *networkmap.NetworkMap) *networkMapModel {
	return &networkMapModel{
		ID:        nm.ID,
		TenantID:  nm.TenantID,
		Cfg:       nm.Cfg,
		Active:    nm.Active,
		Messages:  jsonText(nm.Messages),
		CreatedAt: nm.CreatedAt,
	}
}

func networkMapFromModel(m *networkMapModel) *networkmap.NetworkMap {
	return &networkmap.NetworkMap{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Cfg:       m.Cfg,
		Active:    m.Active,
		Messages:  json.RawMessage(m.Messages),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func jsonText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}
