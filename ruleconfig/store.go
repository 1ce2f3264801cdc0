package ruleconfig

import "context"

// Store defines persistence operations for configuration records.
type Store interface {
	// SaveRuleConfig inserts or replaces the record keyed by (tenant, id, cfg).
	SaveRuleConfig(ctx context.Context, rc *RuleConfig) error

	// ListRuleConfigs returns the records matching (tenant, id, cfg). A
	// limit of zero returns every match.
	ListRuleConfigs(ctx context.Context, tenantID, ruleID, cfg string, limit int) ([]*RuleConfig, error)

	// SaveTypology inserts or replaces the record keyed by (tenant, id, cfg).
	SaveTypology(ctx context.Context, t *Typology) error

	// ListTypologies returns the records matching (tenant, id, cfg).
	ListTypologies(ctx context.Context, tenantID, typologyID, cfg string) ([]*Typology, error)
}
