// Package sqlite provides a SQLite implementation of the configuration and
// network map stores for embedded deployments, using grove ORM with
// Go-based migrations.
package sqlite

import (
	"context"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	_ "github.com/xraph/grove/drivers/sqlitedriver/sqlitemigrate" // registers the migration executor
	"github.com/xraph/grove/migrate"

	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/store"
)

// Compile-time interface checks.
var (
	_ ruleconfig.Store    = (*Store)(nil)
	_ networkmap.Store    = (*Store)(nil)
	_ store.Configuration = (*Store)(nil)
)

// Store is a SQLite implementation of the configuration and network map
// stores.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// Migrate runs programmatic migrations via the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("dbmanager/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("dbmanager/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ──────────────────────────────────────────────────
// Configuration
// ──────────────────────────────────────────────────

func (s *Store) SaveRuleConfig(ctx context.Context, rc *ruleconfig.RuleConfig) error {
	_, err := s.sdb.NewInsert(ruleConfigToModel(rc)).
		OnConflict("(id, cfg, tenant_id) DO UPDATE").
		Set("description = excluded.description").
		Set("configuration = excluded.configuration").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager/sqlite: save rule config %s@%s: %w", rc.ID, rc.Cfg, err)
	}
	return nil
}

func (s *Store) ListRuleConfigs(ctx context.Context, tenantID, ruleID, cfg string, limit int) ([]*ruleconfig.RuleConfig, error) {
	var models []ruleConfigModel
	q := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", ruleID).
		Where("cfg = ?", cfg)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("dbmanager/sqlite: get rule config %s@%s: %w", ruleID, cfg, err)
	}
	result := make([]*ruleconfig.RuleConfig, len(models))
	for i := range models {
		result[i] = ruleConfigFromModel(&models[i])
	}
	return result, nil
}

func (s *Store) SaveTypology(ctx context.Context, t *ruleconfig.Typology) error {
	_, err := s.sdb.NewInsert(typologyToModel(t)).
		OnConflict("(id, cfg, tenant_id) DO UPDATE").
		Set("description = excluded.description").
		Set("expression = excluded.expression").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("dbmanager/sqlite: save typology %s@%s: %w", t.ID, t.Cfg, err)
	}
	return nil
}

func (s *Store) ListTypologies(ctx context.Context, tenantID, typologyID, cfg string) ([]*ruleconfig.Typology, error) {
	var models []typologyModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("id = ?", typologyID).
		Where("cfg = ?", cfg).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager/sqlite: get typology %s@%s: %w", typologyID, cfg, err)
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

func (s *Store) SaveNetworkMap(ctx context.Context, nm *networkmap.NetworkMap) error {
	tx, err := s.sdb.BeginTxQuery(ctx, nil)
	if err != nil {
		return fmt.Errorf("dbmanager/sqlite: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if nm.Active {
		_, err = tx.NewRaw("UPDATE network_map SET active = 0 WHERE tenant_id = ? AND active = 1", nm.TenantID).Exec(ctx)
		if err != nil {
			return fmt.Errorf("dbmanager/sqlite: deactivate network maps of %q: %w", nm.TenantID, err)
		}
	}
	if _, err = tx.NewInsert(networkMapToModel(nm)).Exec(ctx); err != nil {
		return fmt.Errorf("dbmanager/sqlite: save network map %s: %w", nm.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("dbmanager/sqlite: commit tx: %w", err)
	}
	return nil
}

func (s *Store) ListActiveNetworkMaps(ctx context.Context, tenantID string) ([]*networkmap.NetworkMap, error) {
	var models []networkMapModel
	err := s.sdb.NewSelect(&models).
		Where("tenant_id = ?", tenantID).
		Where("active = ?", true).
		OrderExpr("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("dbmanager/sqlite: get active network map of %q: %w", tenantID, err)
	}
	result := make([]*networkmap.NetworkMap, len(models))
	for i := range models {
		result[i] = networkMapFromModel(&models[i])
	}
	return result, nil
}
