package dbmanager

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/dbmanager/plugin"
)

// Option is a functional option for Compose.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithPlugin registers a plugin with the manager.
func WithPlugin(x plugin.Plugin) Option {
	return func(m *Manager) { m.pendingPlugins = append(m.pendingPlugins, x) }
}

// WithMetrics registers cache counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(m *Manager) { m.metricsRegisterer = reg }
}

// WithClock overrides the time source of the local caches and the
// condition graph.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithProbeTimeout bounds each backend probe. Defaults to
// adapter.DefaultTimeout.
func WithProbeTimeout(d time.Duration) Option { return func(m *Manager) { m.probeTimeout = d } }

// WithLocalCacheSize bounds the number of entries of each local cache.
func WithLocalCacheSize(n int) Option { return func(m *Manager) { m.localCacheSize = n } }
