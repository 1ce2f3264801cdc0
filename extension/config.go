package extension

import "github.com/xraph/dbmanager"

// Config holds the dbmanager extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files.
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents schema migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// ConfigFile names a YAML manager configuration read with
	// dbmanager.LoadConfig. It takes precedence over Manager.
	ConfigFile string `json:"config_file" mapstructure:"config_file" yaml:"config_file"`

	// Manager selects the composed backends when ConfigFile is empty.
	Manager dbmanager.ManagerConfig `json:"manager" mapstructure:"manager" yaml:"manager"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

func (c Config) managerConfig() (dbmanager.ManagerConfig, error) {
	if c.ConfigFile != "" {
		return dbmanager.LoadConfig(c.ConfigFile)
	}
	return c.Manager, nil
}
