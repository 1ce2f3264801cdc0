package plugin

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/dbmanager/condition"
)

// Named entry types pair a hook with the plugin name for logging.

type backendProbedEntry struct {
	name string
	hook BackendProbed
}
type conditionSavedEntry struct {
	name string
	hook ConditionSaved
}
type edgeSavedEntry struct {
	name string
	hook EdgeSaved
}
type edgeExpiryUpdatedEntry struct {
	name string
	hook EdgeExpiryUpdated
}
type conditionExpiryUpdatedEntry struct {
	name string
	hook ConditionExpiryUpdated
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	backendProbed          []backendProbedEntry
	conditionSaved         []conditionSavedEntry
	edgeSaved              []edgeSavedEntry
	edgeExpiryUpdated      []edgeExpiryUpdatedEntry
	conditionExpiryUpdated []conditionExpiryUpdatedEntry
	shutdown               []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(BackendProbed); ok {
		r.backendProbed = append(r.backendProbed, backendProbedEntry{name, h})
	}
	if h, ok := p.(ConditionSaved); ok {
		r.conditionSaved = append(r.conditionSaved, conditionSavedEntry{name, h})
	}
	if h, ok := p.(EdgeSaved); ok {
		r.edgeSaved = append(r.edgeSaved, edgeSavedEntry{name, h})
	}
	if h, ok := p.(EdgeExpiryUpdated); ok {
		r.edgeExpiryUpdated = append(r.edgeExpiryUpdated, edgeExpiryUpdatedEntry{name, h})
	}
	if h, ok := p.(ConditionExpiryUpdated); ok {
		r.conditionExpiryUpdated = append(r.conditionExpiryUpdated, conditionExpiryUpdatedEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// ──────────────────────────────────────────────────
// Event emitters
// ──────────────────────────────────────────────────

// EmitBackendProbed notifies all plugins that implement BackendProbed.
func (r *Registry) EmitBackendProbed(ctx context.Context, backend string, probeErr error) {
	for _, e := range r.backendProbed {
		if err := e.hook.OnBackendProbed(ctx, backend, probeErr); err != nil {
			r.logHookError("OnBackendProbed", e.name, err)
		}
	}
}

// EmitConditionSaved notifies all plugins that implement ConditionSaved.
func (r *Registry) EmitConditionSaved(ctx context.Context, c *condition.Condition) {
	for _, e := range r.conditionSaved {
		if err := e.hook.OnConditionSaved(ctx, c); err != nil {
			r.logHookError("OnConditionSaved", e.name, err)
		}
	}
}

// EmitEdgeSaved notifies all plugins that implement EdgeSaved.
func (r *Registry) EmitEdgeSaved(ctx context.Context, edge *condition.Edge) {
	for _, e := range r.edgeSaved {
		if err := e.hook.OnEdgeSaved(ctx, edge); err != nil {
			r.logHookError("OnEdgeSaved", e.name, err)
		}
	}
}

// EmitEdgeExpiryUpdated notifies all plugins that implement EdgeExpiryUpdated.
func (r *Registry) EmitEdgeExpiryUpdated(ctx context.Context, kind condition.EdgeKind, edgeID string, expiry time.Time) {
	for _, e := range r.edgeExpiryUpdated {
		if err := e.hook.OnEdgeExpiryUpdated(ctx, kind, edgeID, expiry); err != nil {
			r.logHookError("OnEdgeExpiryUpdated", e.name, err)
		}
	}
}

// EmitConditionExpiryUpdated notifies all plugins that implement ConditionExpiryUpdated.
func (r *Registry) EmitConditionExpiryUpdated(ctx context.Context, conditionID string, expiry time.Time) {
	for _, e := range r.conditionExpiryUpdated {
		if err := e.hook.OnConditionExpiryUpdated(ctx, conditionID, expiry); err != nil {
			r.logHookError("OnConditionExpiryUpdated", e.name, err)
		}
	}
}

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
