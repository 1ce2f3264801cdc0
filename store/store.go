// Package store defines the aggregate persistence interfaces. Each domain
// (condition, transaction, ruleconfig, networkmap, evaluation, pseudonym)
// defines its own store interface; the composites here group them by the
// backends that implement them together.
// Backends: Postgres, SQLite, MongoDB and Memory.
package store

import (
	"context"

	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/pseudonym"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/transaction"
)

// Store is the aggregate persistence interface. Only the memory backend
// implements all of it.
type Store interface {
	Relational
	pseudonym.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error
}

// Relational groups the contracts served by a relational database.
type Relational interface {
	condition.Store
	transaction.Store
	evaluation.Store
	Configuration
}

// Configuration groups the rule configuration and network map contracts,
// which embedded deployments serve from SQLite.
type Configuration interface {
	ruleconfig.Store
	networkmap.Store

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
