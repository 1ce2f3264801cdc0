package memory

import (
	"context"

	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/ruleconfig"
)

// ──────────────────────────────────────────────────
// Configuration
// ──────────────────────────────────────────────────

func (s *Store) SaveRuleConfig(_ context.Context, rc *ruleconfig.RuleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ruleConfigs[key(rc.TenantID, rc.ID, rc.Cfg)] = clone(rc)
	return nil
}

func (s *Store) ListRuleConfigs(_ context.Context, tenantID, ruleID, cfg string, limit int) ([]*ruleconfig.RuleConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*ruleconfig.RuleConfig, 0, 1)
	if rc, ok := s.ruleConfigs[key(tenantID, ruleID, cfg)]; ok {
		result = append(result, clone(rc))
	}
	return limitSlice(result, limit), nil
}

func (s *Store) SaveTypology(_ context.Context, t *ruleconfig.Typology) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typologies[key(t.TenantID, t.ID, t.Cfg)] = clone(t)
	return nil
}

func (s *Store) ListTypologies(_ context.Context, tenantID, typologyID, cfg string) ([]*ruleconfig.Typology, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*ruleconfig.Typology, 0, 1)
	if t, ok := s.typologies[key(tenantID, typologyID, cfg)]; ok {
		result = append(result, clone(t))
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Network map
// ──────────────────────────────────────────────────

func (s *Store) SaveNetworkMap(_ context.Context, nm *networkmap.NetworkMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nm.Active {
		for _, existing := range s.networkMaps {
			if existing.TenantID == nm.TenantID {
				existing.Active = false
			}
		}
	}
	s.networkMaps = append(s.networkMaps, clone(nm))
	return nil
}

func (s *Store) ListActiveNetworkMaps(_ context.Context, tenantID string) ([]*networkmap.NetworkMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*networkmap.NetworkMap, 0, 1)
	for _, nm := range s.networkMaps {
		if nm.TenantID == tenantID && nm.Active {
			result = append(result, clone(nm))
		}
	}
	return result, nil
}
