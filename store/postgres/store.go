// Package postgres provides a PostgreSQL implementation of the relational
// stores (condition graph, transaction history, configuration, network map
// and evaluation results) using grove ORM with Go-based migrations.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	_ "github.com/xraph/grove/drivers/pgdriver/pgmigrate" // registers the migration executor
	"github.com/xraph/grove/migrate"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/store"
	"github.com/xraph/dbmanager/transaction"
)

// Compile-time interface checks.
var (
	_ condition.Store   = (*Store)(nil)
	_ transaction.Store = (*Store)(nil)
	_ ruleconfig.Store  = (*Store)(nil)
	_ networkmap.Store  = (*Store)(nil)
	_ evaluation.Store  = (*Store)(nil)
	_ store.Relational  = (*Store)(nil)
)

// Store is a PostgreSQL implementation of every relational store contract.
// One Store is built per composed backend; each backend migrates only the
// groups it serves.
type Store struct {
	db   *grove.DB
	pgdb *pgdriver.PgDB
}

// New creates a new PostgreSQL store.
func New(db *grove.DB) *Store {
	return &Store{
		db:   db,
		pgdb: pgdriver.Unwrap(db),
	}
}

// Migrate runs the given migration groups via the grove orchestrator. With
// no groups every group is applied.
func (s *Store) Migrate(ctx context.Context, groups ...*migrate.Group) error {
	if len(groups) == 0 {
		groups = AllMigrations()
	}
	executor, err := migrate.NewExecutorFor(s.pgdb)
	if err != nil {
		return fmt.Errorf("dbmanager: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, groups...)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("dbmanager: migration failed: %w", err)
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

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
