// Package ruleconfig defines rule configurations and typology expressions
// and the façade that serves them through the local read-through cache.
package ruleconfig

import (
	"encoding/json"
	"slices"
)

// RuleConfig is the configuration of one rule processor version.
type RuleConfig struct {
	ID       string          `json:"id"`
	Cfg      string          `json:"cfg"`
	TenantID string          `json:"tenantId"`
	Desc     string          `json:"desc,omitempty"`
	Config   json.RawMessage `json:"config"`
}

// Clone returns a deep copy of rc.
func (rc *RuleConfig) Clone() *RuleConfig {
	if rc == nil {
		return nil
	}
	cp := *rc
	cp.Config = slices.Clone(rc.Config)
	return &cp
}

// Typology is a typology expression that combines rule results into a
// score.
type Typology struct {
	ID         string          `json:"id"`
	Cfg        string          `json:"cfg"`
	TenantID   string          `json:"tenantId"`
	Desc       string          `json:"desc,omitempty"`
	Expression json.RawMessage `json:"expression"`
}

// Clone returns a deep copy of t.
func (t *Typology) Clone() *Typology {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Expression = slices.Clone(t.Expression)
	return &cp
}

// CacheKey builds the local cache key for a configuration record. Records
// of the default tenant use the plain "<id>_<cfg>" form.
func CacheKey(tenantID, id, cfg string) string {
	key := id + "_" + cfg
	if tenantID != "" {
		key = tenantID + "_" + key
	}
	return key
}
