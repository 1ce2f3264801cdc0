package postgres

import (
	"context"
	"fmt"

	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/ruleconfig"
)

// ──────────────────────────────────────────────────
// Configuration
// ──────────────────────────────────────────────────

func (s *Store) SaveRuleConfig(ctx context.Context, rc *ruleconfig.RuleConfig) error {
	_, err := s.pgdb.NewInsert(ruleConfigToModel(rc)).
		OnConflict("(id, cfg, tenant_id) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("configuration = EXCLUDED.configuration").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: save rule config %s@%s: %w", rc.ID, rc.Cfg, err)
	}
	return nil
}

func (s *Store) ListRuleConfigs(ctx context.Context, tenantID, ruleID, cfg string, limit int) ([]*ruleconfig.RuleConfig, error) {
	var models []ruleConfigModel
	q := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", ruleID).
		Where("cfg = ?", cfg)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("dbmanager: get rule config %s@%s: %w", ruleID, cfg, err)
	}
	result := make([]*ruleconfig.RuleConfig, len(models))
	for i := range models {
		result[i] = ruleConfigFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) SaveTypology(ctx context.Context, t *ruleconfig.Typology) error {
	_, err := s.pgdb.NewInsert(typologyToModel(t)).
		OnConflict("(id, cfg, tenant_id) DO UPDATE").
		Set("description = EXCLUDED.description").
		Set("expression = EXCLUDED.expression").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager: save typology %s@%s: %w", t.ID, t.Cfg, err)
	}
	return nil
}

func (s *Store) ListTypologies(ctx context.Context, tenantID, typologyID, cfg string) ([]*ruleconfig.Typology, error) {
	var models []typologyModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", typologyID).
		Where("cfg = ?", cfg).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: get typology %s@%s: %w", typologyID, cfg, err)
	}
	result := make([]*ruleconfig.Typology, len(models))
	for i := range models {
		result[i] = typologyFromModel(&models[i])
	}
	return result, nil
}

// ──────────────────────────────────────────────────
// Network map
// ──────────────────────────────────────────────────

// SaveNetworkMap stores nm. When nm is active the tenant's previous active
// map is deactivated in the same transaction.
func (s *Store) SaveNetworkMap(ctx context.Context, nm *networkmap.NetworkMap) error {
	tx, err := s.pgdb.BeginTxQuery(ctx, nil)
	if err != nil {
		return fmt.Errorf("dbmanager: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if nm.Active {
		_, err = tx.NewRaw("UPDATE network_map SET active = FALSE WHERE tenant_id = $1 AND active", nm.TenantID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("dbmanager: deactivate network maps of %q: %w", nm.TenantID, err)
		}
	}
	if _, err = tx.NewInsert(networkMapToModel(nm)).Exec(ctx); err != nil {
		return fmt.Errorf("dbmanager: save network map %s: %w", nm.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dbmanager: commit tx: %w", err)
	}
	return nil
}

func (s *Store) ListActiveNetworkMaps(ctx context.Context, tenantID string) ([]*networkmap.NetworkMap, error) {
	var models []networkMapModel
	err := s.pgdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("active = ?", true).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager: get active network map of %q: %w", tenantID, err)
	}
	result := make([]*networkmap.NetworkMap, len(models))
	for i := range models {
		result[i] = networkMapFromModel(&models[i])
	}
	return result, nil
}
