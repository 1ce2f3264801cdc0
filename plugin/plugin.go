// Package plugin defines the plugin system for the manager.
// Plugins are notified of lifecycle events (backend probed, condition
// saved, edge expired, shutdown) and can react with logging, metrics,
// auditing and so on.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import (
	"context"
	"time"

	"github.com/xraph/dbmanager/condition"
)

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ──────────────────────────────────────────────────
// Readiness hooks
// ──────────────────────────────────────────────────

// BackendProbed is called once per backend while the manager is composed.
// err is nil when the backend is ready.
type BackendProbed interface {
	OnBackendProbed(ctx context.Context, backend string, err error) error
}

// ──────────────────────────────────────────────────
// Condition graph hooks
// ──────────────────────────────────────────────────

// ConditionSaved is called after a condition is stored.
type ConditionSaved interface {
	OnConditionSaved(ctx context.Context, c *condition.Condition) error
}

// EdgeSaved is called after an edge is stored or found to exist already.
type EdgeSaved interface {
	OnEdgeSaved(ctx context.Context, e *condition.Edge) error
}

// EdgeExpiryUpdated is called after an edge's expiry is changed.
type EdgeExpiryUpdated interface {
	OnEdgeExpiryUpdated(ctx context.Context, kind condition.EdgeKind, edgeID string, expiry time.Time) error
}

// ConditionExpiryUpdated is called after a condition's expiry is changed.
type ConditionExpiryUpdated interface {
	OnConditionExpiryUpdated(ctx context.Context, conditionID string, expiry time.Time) error
}

// ──────────────────────────────────────────────────
// Shutdown hook
// ──────────────────────────────────────────────────

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
