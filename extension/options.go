package extension

import (
	"log/slog"

	"github.com/xraph/dbmanager"
	"github.com/xraph/dbmanager/plugin"
)

// ExtOption configures the dbmanager Forge extension.
type ExtOption func(*Extension)

// WithConfig sets the extension configuration.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithManagerConfig sets the backends to compose.
func WithManagerConfig(cfg dbmanager.ManagerConfig) ExtOption {
	return func(e *Extension) {
		e.config.Manager = cfg
	}
}

// WithConfigFile reads the manager configuration from a YAML file.
func WithConfigFile(path string) ExtOption {
	return func(e *Extension) {
		e.config.ConfigFile = path
	}
}

// WithManagerOptions adds manager-level options.
func WithManagerOptions(opts ...dbmanager.Option) ExtOption {
	return func(e *Extension) {
		e.managerOpts = append(e.managerOpts, opts...)
	}
}

// WithPlugin registers a lifecycle hook plugin.
func WithPlugin(x plugin.Plugin) ExtOption {
	return func(e *Extension) {
		e.plugins = append(e.plugins, x)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = l
	}
}

// WithDisableRoutes disables the registration of HTTP routes.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}

// WithDisableMigrate disables schema migration on start.
func WithDisableMigrate() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}
