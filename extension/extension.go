// Package extension provides a Forge extension entry point for dbmanager.
package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/dbmanager"
	"github.com/xraph/dbmanager/api"
	"github.com/xraph/dbmanager/plugin"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "dbmanager"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Capability-composed data access for transaction monitoring"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts a dbmanager.Manager as a Forge extension.
type Extension struct {
	config      Config
	mgr         *dbmanager.Manager
	apiHandler  *api.API
	logger      *slog.Logger
	managerOpts []dbmanager.Option
	plugins     []plugin.Plugin
}

// New creates a dbmanager Forge extension with the given options.
func New(opts ...ExtOption) *Extension {
	e := &Extension{config: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return ExtensionName }

// Description returns the extension description.
func (e *Extension) Description() string { return ExtensionDescription }

// Version returns the extension version.
func (e *Extension) Version() string { return ExtensionVersion }

// Dependencies returns the list of extension names this extension depends on.
func (e *Extension) Dependencies() []string { return []string{} }

// Manager returns the composed manager.
func (e *Extension) Manager() *dbmanager.Manager { return e.mgr }

// API returns the API handler.
func (e *Extension) API() *api.API { return e.apiHandler }

// Register implements [forge.Extension]. It composes the manager,
// registers it in the DI container, and optionally registers HTTP routes.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.init(context.Background()); err != nil {
		return err
	}

	if err := vessel.Provide(fapp.Container(), func() (*dbmanager.Manager, error) {
		return e.mgr, nil
	}); err != nil {
		return fmt.Errorf("dbmanager: register manager in container: %w", err)
	}

	e.apiHandler = api.New(e.mgr, fapp.Router())
	if !e.config.DisableRoutes {
		if err := e.apiHandler.RegisterRoutes(fapp.Router()); err != nil {
			return fmt.Errorf("dbmanager: register routes: %w", err)
		}
	}
	return nil
}

// init composes the manager from the extension configuration.
func (e *Extension) init(ctx context.Context) error {
	logger := e.logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := e.config.managerConfig()
	if err != nil {
		return fmt.Errorf("dbmanager: load config: %w", err)
	}

	opts := make([]dbmanager.Option, 0, len(e.managerOpts)+len(e.plugins)+1)
	opts = append(opts, dbmanager.WithLogger(logger))
	opts = append(opts, e.managerOpts...)
	for _, x := range e.plugins {
		opts = append(opts, dbmanager.WithPlugin(x))
	}

	mgr, err := dbmanager.Compose(ctx, cfg, opts...)
	if err != nil {
		return fmt.Errorf("dbmanager: compose: %w", err)
	}
	e.mgr = mgr
	return nil
}

// Start runs migrations if enabled.
func (e *Extension) Start(ctx context.Context) error {
	if e.mgr == nil {
		return errors.New("dbmanager: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.mgr.Migrate(ctx); err != nil {
			return fmt.Errorf("dbmanager: migration failed: %w", err)
		}
	}
	return nil
}

// Stop closes every backend connection.
func (e *Extension) Stop(ctx context.Context) error {
	if e.mgr == nil {
		return nil
	}
	return e.mgr.Quit(ctx)
}

// Health implements [forge.Extension]. It fails while any composed
// backend is not ready.
func (e *Extension) Health(context.Context) error {
	if e.mgr == nil {
		return errors.New("dbmanager: extension not initialized")
	}
	var failing []string
	for name, status := range e.mgr.IsReadyCheck() {
		if status != dbmanager.StatusOK {
			failing = append(failing, name+": "+status)
		}
	}
	if len(failing) == 0 {
		return nil
	}
	slices.Sort(failing)
	return fmt.Errorf("dbmanager: backends not ready: %s", strings.Join(failing, "; "))
}

// Handler returns the HTTP handler for all API routes.
func (e *Extension) Handler() http.Handler {
	if e.apiHandler == nil {
		return http.NotFoundHandler()
	}
	return e.apiHandler.Handler()
}

// RegisterRoutes registers all dbmanager API routes into a Forge router.
func (e *Extension) RegisterRoutes(router forge.Router) error {
	if e.apiHandler != nil {
		return e.apiHandler.RegisterRoutes(router)
	}
	return nil
}
