package dbmanager

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of file settings, e.g.
// DBMANAGER_REDIS_PASSWORD overrides redis.password.
const EnvPrefix = "DBMANAGER"

// LoadConfig reads a YAML manager configuration from path. Settings present
// in the file can be overridden from the environment.
//
// The result is not validated; Compose does that.
func LoadConfig(path string) (ManagerConfig, error) {
	var cfg ManagerConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("%w: read %s: %w", ErrInvalidConfig, path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: decode %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}
