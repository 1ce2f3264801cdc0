package ruleconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/dbmanager/cache"
)

// Service is the configuration façade.
type Service struct {
	store  Store
	local  cache.Local
	policy cache.Policy
}

// NewService creates a façade over store. Reads go through local when
// policy is enabled.
func NewService(store Store, local cache.Local, policy cache.Policy) *Service {
	return &Service{store: store, local: local, policy: policy}
}

// GetRuleConfig returns the configuration of ruleID at version cfg. A
// single-row result is cached locally under CacheKey.
func (s *Service) GetRuleConfig(ctx context.Context, tenantID, ruleID, cfg string, limit int) ([]*RuleConfig, error) {
	key := CacheKey(tenantID, ruleID, cfg)
	rows, err := cache.CachedRead(ctx, s.local, key, s.policy, func(ctx context.Context) ([]*RuleConfig, error) {
		return s.store.ListRuleConfigs(ctx, tenantID, ruleID, cfg, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("ruleconfig: get rule %s: %w", key, err)
	}
	return rows, nil
}

// GetTypologyExpression returns the expression of typologyID at version
// cfg, cached the same way as rule configurations.
func (s *Service) GetTypologyExpression(ctx context.Context, tenantID, typologyID, cfg string) ([]*Typology, error) {
	key := CacheKey(tenantID, typologyID, cfg)
	rows, err := cache.CachedRead(ctx, s.local, key, s.policy, func(ctx context.Context) ([]*Typology, error) {
		return s.store.ListTypologies(ctx, tenantID, typologyID, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("ruleconfig: get typology %s: %w", key, err)
	}
	return rows, nil
}

// SaveRuleConfig stores rc. Cached reads of the same key stay stale until
// their TTL lapses.
func (s *Service) SaveRuleConfig(ctx context.Context, rc *RuleConfig) error {
	if rc == nil || rc.ID == "" || rc.Cfg == "" {
		return errors.New("ruleconfig: rule id and cfg are required")
	}
	return s.store.SaveRuleConfig(ctx, rc)
}

// SaveTypologyExpression stores t.
func (s *Service) SaveTypologyExpression(ctx context.Context, t *Typology) error {
	if t == nil || t.ID == "" || t.Cfg == "" {
		return errors.New("ruleconfig: typology id and cfg are required")
	}
	return s.store.SaveTypology(ctx, t)
}
