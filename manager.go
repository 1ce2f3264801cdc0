// Package dbmanager composes the data-access capabilities of a
// transaction-monitoring pipeline from configuration: pseudonym graph,
// transaction history, rule configuration, network map, evaluation
// results and the temporal condition graph.
//
// Only the backends present in the configuration are opened. A backend
// that cannot be reached is recorded in the readiness registry and its
// façade is still attached, so a service can start degraded and report
// why through IsReadyCheck.
//
//	mgr, err := dbmanager.Compose(ctx, dbmanager.ManagerConfig{
//	    TransactionHistory: &dbmanager.BackendConfig{URL: "postgres://..."},
//	    Redis:              &dbmanager.RedisConfig{Servers: []dbmanager.RedisServer{{Host: "localhost", Port: 6379}}},
//	})
//	if th, ok := mgr.TransactionHistory(); ok {
//	    docs, err := th.GetTransactionByEndToEndID(ctx, tenant, e2e, "")
//	}
package dbmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xraph/grove/migrate"

	"github.com/xraph/dbmanager/adapter"
	"github.com/xraph/dbmanager/cache"
	"github.com/xraph/dbmanager/condition"
	"github.com/xraph/dbmanager/evaluation"
	"github.com/xraph/dbmanager/networkmap"
	"github.com/xraph/dbmanager/plugin"
	"github.com/xraph/dbmanager/pseudonym"
	"github.com/xraph/dbmanager/ruleconfig"
	"github.com/xraph/dbmanager/store"
	"github.com/xraph/dbmanager/store/memory"
	"github.com/xraph/dbmanager/store/mongo"
	"github.com/xraph/dbmanager/store/postgres"
	"github.com/xraph/dbmanager/store/sqlite"
	"github.com/xraph/dbmanager/transaction"
)

// Manager owns the connections, caches and façades of one composition.
type Manager struct {
	logger            *slog.Logger
	plugins           *plugin.Registry
	pendingPlugins    []plugin.Plugin
	metricsRegisterer prometheus.Registerer
	metrics           *cache.Metrics
	now               func() time.Time
	probeTimeout      time.Duration
	localCacheSize    int

	readiness *Readiness
	redis     *cache.Redis
	backends  []*backend

	pseudonyms         *pseudonym.Service
	transactionHistory *transaction.Service
	configuration      *ruleconfig.Service
	networkMap         *networkmap.Service
	evaluation         *evaluation.Service
	conditionGraph     *conditionGraph

	quitOnce sync.Once
	quitErr  error
}

// backend is one composed logical database.
type backend struct {
	name   string
	driver string
	// conn is nil for the memory driver.
	conn    adapter.Connection
	migrate func(ctx context.Context) error
}

// Compose validates cfg, opens every configured backend and the Redis
// client, probes them and attaches the matching façades.
//
// Probe failures never fail Compose; they are recorded in the readiness
// registry. Invalid configuration, an unparsable DSN or URI and an invalid
// CA file are hard errors, in which case everything opened so far is
// closed again.
func Compose(ctx context.Context, cfg ManagerConfig, opts ...Option) (*Manager, error) {
	m := &Manager{
		logger:       slog.Default(),
		now:          func() time.Time { return time.Now().UTC() },
		probeTimeout: adapter.DefaultTimeout,
		readiness:    NewReadiness(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.plugins = plugin.NewRegistry(m.logger)
	for _, p := range m.pendingPlugins {
		m.plugins.Register(p)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if m.metricsRegisterer != nil {
		metrics, err := cache.NewMetrics(m.metricsRegisterer)
		if err != nil {
			return nil, fmt.Errorf("dbmanager: cache metrics: %w", err)
		}
		m.metrics = metrics
	}

	if err := m.composeRedis(ctx, cfg.Redis); err != nil {
		return nil, err
	}

	for _, b := range cfg.backends() {
		if err := m.composeBackend(ctx, b); err != nil {
			_ = m.closeAll()
			return nil, err
		}
	}
	return m, nil
}

func (m *Manager) composeRedis(ctx context.Context, cfg *RedisConfig) error {
	tlsCfg, err := adapter.LoadCAPool(cfg.CertificatePath)
	if err != nil {
		return fmt.Errorf("%w: redis: %w", ErrInvalidConfig, err)
	}
	servers := make([]cache.RedisServer, len(cfg.Servers))
	for i, s := range cfg.Servers {
		servers[i] = cache.RedisServer{Host: s.Host, Port: s.Port}
	}
	r, err := cache.NewRedis(cache.RedisOptions{
		DB:        cfg.DB,
		Servers:   servers,
		Password:  cfg.Password,
		IsCluster: cfg.IsCluster,
		TLS:       tlsCfg,
	}, cache.WithRedisMetrics(m.metrics))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	m.redis = r

	probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
	defer cancel()
	m.recordProbe(ctx, BackendRedis, "redis", r.Ping(probeCtx))
	return nil
}

func (m *Manager) composeBackend(ctx context.Context, nb namedBackend) error {
	b := &backend{name: nb.name, driver: nb.driver()}

	if b.driver != DriverMemory {
		conn, err := adapter.Open(ctx, nb.cfg.adapterConfig(b.driver, m.probeTimeout))
		if err != nil {
			if errors.Is(err, adapter.ErrInvalidConfig) {
				return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, nb.name, err)
			}
			return fmt.Errorf("dbmanager: open %s: %w", nb.name, err)
		}
		b.conn = conn
	}
	m.backends = append(m.backends, b)

	if err := m.attach(b, nb.cfg); err != nil {
		return err
	}

	var probeErr error
	if b.conn != nil {
		probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
		probeErr = b.conn.Probe(probeCtx)
		cancel()
	}
	m.recordProbe(ctx, b.name, b.driver, probeErr)
	return nil
}

// attach builds the store for b and the façade on top of it.
func (m *Manager) attach(b *backend, cfg *BackendConfig) error {
	switch b.name {
	case BackendPseudonyms:
		var st pseudonym.Store
		if graph, ok := b.conn.(*adapter.Graph); ok {
			s := mongo.New(graph.DB())
			st, b.migrate = s, s.Migrate
		} else {
			st = memory.New()
		}
		m.pseudonyms = pseudonym.NewService(st, m.redis)

	case BackendTransactionHistory:
		var st transaction.Store
		if s := m.postgresStore(b, postgres.TransactionHistoryMigrations); s != nil {
			st = s
		} else {
			st = memory.New()
		}
		m.transactionHistory = transaction.NewService(st, m.redis)

	case BackendConfiguration:
		m.configuration = ruleconfig.NewService(m.configStore(b, postgres.ConfigurationMigrations), m.newLocalCache(), cfg.cachePolicy())

	case BackendNetworkMap:
		m.networkMap = networkmap.NewService(m.configStore(b, postgres.NetworkMapMigrations), m.newLocalCache(), cfg.cachePolicy())

	case BackendEvaluation:
		var st evaluation.Store
		if s := m.postgresStore(b, postgres.EvaluationMigrations); s != nil {
			st = s
		} else {
			st = memory.New()
		}
		m.evaluation = evaluation.NewService(st)

	case BackendEventHistory:
		var st condition.Store
		if s := m.postgresStore(b, postgres.EventHistoryMigrations); s != nil {
			st = s
		} else {
			st = memory.New()
		}
		m.conditionGraph = &conditionGraph{
			Service: condition.NewService(st, condition.WithClock(m.now)),
			plugins: m.plugins,
		}

	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, b.name)
	}
	return nil
}

// postgresStore returns a postgres store for b, or nil when b does not run
// on postgres.
func (m *Manager) postgresStore(b *backend, group *migrate.Group) *postgres.Store {
	rel, ok := b.conn.(*adapter.Relational)
	if !ok || rel.Driver() != adapter.DriverPostgres {
		return nil
	}
	s := postgres.New(rel.DB())
	b.migrate = func(ctx context.Context) error { return s.Migrate(ctx, group) }
	return s
}

// configStore serves both the configuration and the network map
// backends, which additionally accept sqlite.
func (m *Manager) configStore(b *backend, group *migrate.Group) store.Configuration {
	if s := m.postgresStore(b, group); s != nil {
		return s
	}
	if rel, ok := b.conn.(*adapter.Relational); ok && rel.Driver() == adapter.DriverSQLite {
		s := sqlite.New(rel.DB())
		b.migrate = s.Migrate
		return s
	}
	return memory.New()
}

func (m *Manager) newLocalCache() *cache.Memory {
	opts := []cache.MemoryOption{cache.WithClock(m.now), cache.WithMetrics(m.metrics)}
	if m.localCacheSize > 0 {
		opts = append(opts, cache.WithMaxSize(m.localCacheSize))
	}
	return cache.NewMemory(opts...)
}

func (m *Manager) recordProbe(ctx context.Context, name, driver string, err error) {
	m.readiness.Record(name, err)
	if err != nil {
		m.logger.Warn("backend not ready",
			slog.String("backend", name),
			slog.String("driver", driver),
			slog.String("error", err.Error()),
		)
	} else {
		m.logger.Info("backend ready",
			slog.String("backend", name),
			slog.String("driver", driver),
			slog.String("status", StatusOK),
		)
	}
	m.plugins.EmitBackendProbed(ctx, name, err)
}

// ──────────────────────────────────────────────────
// Capabilities
// ──────────────────────────────────────────────────

// Pseudonyms returns the pseudonym graph capability.
func (m *Manager) Pseudonyms() (PseudonymsDB, bool) {
	if m.pseudonyms == nil {
		return nil, false
	}
	return m.pseudonyms, true
}

// TransactionHistory returns the transaction history capability.
func (m *Manager) TransactionHistory() (TransactionHistoryDB, bool) {
	if m.transactionHistory == nil {
		return nil, false
	}
	return m.transactionHistory, true
}

// Configuration returns the rule configuration capability.
func (m *Manager) Configuration() (ConfigurationDB, bool) {
	if m.configuration == nil {
		return nil, false
	}
	return m.configuration, true
}

// NetworkMap returns the network map capability.
func (m *Manager) NetworkMap() (NetworkMapDB, bool) {
	if m.networkMap == nil {
		return nil, false
	}
	return m.networkMap, true
}

// Evaluation returns the evaluation result capability.
func (m *Manager) Evaluation() (EvaluationDB, bool) {
	if m.evaluation == nil {
		return nil, false
	}
	return m.evaluation, true
}

// ConditionGraph returns the condition graph capability served by the
// event history backend.
func (m *Manager) ConditionGraph() (ConditionGraphDB, bool) {
	if m.conditionGraph == nil {
		return nil, false
	}
	return m.conditionGraph, true
}

// Capability returns the first composed façade implementing T.
//
//	if cg, ok := dbmanager.Capability[dbmanager.ConditionGraphDB](mgr); ok { ... }
func Capability[T any](m *Manager) (T, bool) {
	for _, f := range m.facades() {
		if v, ok := f.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (m *Manager) facades() []any {
	var out []any
	if m.pseudonyms != nil {
		out = append(out, m.pseudonyms)
	}
	if m.transactionHistory != nil {
		out = append(out, m.transactionHistory)
	}
	if m.configuration != nil {
		out = append(out, m.configuration)
	}
	if m.networkMap != nil {
		out = append(out, m.networkMap)
	}
	if m.evaluation != nil {
		out = append(out, m.evaluation)
	}
	if m.conditionGraph != nil {
		out = append(out, m.conditionGraph)
	}
	return out
}

// Capabilities lists the composed backend names in composition order.
func (m *Manager) Capabilities() []string {
	names := make([]string, len(m.backends))
	for i, b := range m.backends {
		names[i] = b.name
	}
	return names
}

// ──────────────────────────────────────────────────
// Readiness
// ──────────────────────────────────────────────────

// IsReadyCheck returns the readiness entry of every composed backend and
// of Redis.
func (m *Manager) IsReadyCheck() map[string]string {
	snap := m.readiness.Snapshot()
	keep := append(m.Capabilities(), BackendRedis)
	for name := range snap {
		if !slices.Contains(keep, name) {
			delete(snap, name)
		}
	}
	return snap
}

// Readiness returns the manager's readiness registry.
func (m *Manager) Readiness() *Readiness { return m.readiness }

// Plugins returns the plugin registry.
func (m *Manager) Plugins() *plugin.Registry { return m.plugins }

// DistributedCache returns the Redis layer shared by the façades.
func (m *Manager) DistributedCache() cache.Distributed { return m.redis }

// ──────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────

// Migrate applies the schema of every composed backend that has one.
func (m *Manager) Migrate(ctx context.Context) error {
	for _, b := range m.backends {
		if b.migrate == nil {
			continue
		}
		if err := b.migrate(ctx); err != nil {
			return fmt.Errorf("dbmanager: migrate %s: %w", b.name, err)
		}
		m.logger.Info("backend migrated", slog.String("backend", b.name), slog.String("driver", b.driver))
	}
	return nil
}

// Quit closes every backend connection and the Redis client. Errors are
// joined. Later calls return the result of the first.
func (m *Manager) Quit(ctx context.Context) error {
	m.quitOnce.Do(func() {
		m.plugins.EmitShutdown(ctx)
		m.quitErr = m.closeAll()
	})
	return m.quitErr
}

func (m *Manager) closeAll() error {
	var errs []error
	for i := len(m.backends) - 1; i >= 0; i-- {
		b := m.backends[i]
		if b.conn == nil {
			continue
		}
		if err := b.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", b.name, err))
		}
	}
	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", BackendRedis, err))
		}
	}
	return errors.Join(errs...)
}
