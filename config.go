package dbmanager

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/xraph/dbmanager/adapter"
	"github.com/xraph/dbmanager/cache"
)

// DefaultLocalCacheTTL is used when local caching is enabled without a TTL.
const DefaultLocalCacheTTL = 5 * time.Minute

// DriverMemory selects the in-process store for a backend.
const DriverMemory = "memory"

// BackendConfig describes one database backend.
type BackendConfig struct {
	// Driver is postgres, sqlite, mongo or memory. Which drivers a backend
	// accepts depends on the backend; an empty driver selects mongo for the
	// pseudonym graph and postgres for everything else.
	Driver string `json:"driver,omitempty" mapstructure:"driver" yaml:"driver"`

	// URL is used verbatim when set. Otherwise the address is assembled
	// from Host, Port, User, Password and DatabaseName.
	URL          string `json:"url,omitempty" mapstructure:"url" yaml:"url"`
	Host         string `json:"host,omitempty" mapstructure:"host" yaml:"host"`
	Port         int    `json:"port,omitempty" mapstructure:"port" yaml:"port"`
	User         string `json:"user,omitempty" mapstructure:"user" yaml:"user"`
	Password     string `json:"password,omitempty" mapstructure:"password" yaml:"password"`
	DatabaseName string `json:"databaseName,omitempty" mapstructure:"databaseName" yaml:"databaseName"`

	// CertificatePath names a PEM CA bundle. TLS verification against it
	// is enabled only when the file exists.
	CertificatePath string `json:"certificatePath,omitempty" mapstructure:"certificatePath" yaml:"certificatePath"`

	PoolSize int `json:"poolSize,omitempty" mapstructure:"poolSize" yaml:"poolSize"`

	LocalCacheEnabled bool          `json:"localCacheEnabled,omitempty" mapstructure:"localCacheEnabled" yaml:"localCacheEnabled"`
	LocalCacheTTL     time.Duration `json:"localCacheTTL,omitempty" mapstructure:"localCacheTTL" yaml:"localCacheTTL"`
}

func (c *BackendConfig) adapterConfig(drv string, timeout time.Duration) adapter.Config {
	return adapter.Config{
		Driver:   adapter.Driver(drv),
		URL:      c.URL,
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Database: c.DatabaseName,
		CertPath: c.CertificatePath,
		PoolSize: c.PoolSize,
		Timeout:  timeout,
	}
}

func (c *BackendConfig) cachePolicy() cache.Policy {
	ttl := c.LocalCacheTTL
	if ttl <= 0 {
		ttl = DefaultLocalCacheTTL
	}
	return cache.Policy{Enabled: c.LocalCacheEnabled, TTL: ttl}
}

// RedisServer is one node address.
type RedisServer struct {
	Host string `json:"host" mapstructure:"host" yaml:"host"`
	Port int    `json:"port" mapstructure:"port" yaml:"port"`
}

// RedisConfig describes the distributed cache.
type RedisConfig struct {
	DB        int           `json:"db,omitempty" mapstructure:"db" yaml:"db"`
	Servers   []RedisServer `json:"servers" mapstructure:"servers" yaml:"servers"`
	Password  string        `json:"password,omitempty" mapstructure:"password" yaml:"password"`
	IsCluster bool          `json:"isCluster,omitempty" mapstructure:"isCluster" yaml:"isCluster"`

	CertificatePath string `json:"certificatePath,omitempty" mapstructure:"certificatePath" yaml:"certificatePath"`
}

// ManagerConfig selects the backends a Manager composes. A nil backend is
// simply absent from the manager. Redis is always required.
type ManagerConfig struct {
	Pseudonyms         *BackendConfig `json:"pseudonyms,omitempty" mapstructure:"pseudonyms" yaml:"pseudonyms"`
	TransactionHistory *BackendConfig `json:"transactionHistory,omitempty" mapstructure:"transactionHistory" yaml:"transactionHistory"`
	Configuration      *BackendConfig `json:"configuration,omitempty" mapstructure:"configuration" yaml:"configuration"`
	NetworkMap         *BackendConfig `json:"networkMap,omitempty" mapstructure:"networkMap" yaml:"networkMap"`
	Evaluation         *BackendConfig `json:"evaluation,omitempty" mapstructure:"evaluation" yaml:"evaluation"`
	EventHistory       *BackendConfig `json:"eventHistory,omitempty" mapstructure:"eventHistory" yaml:"eventHistory"`
	Redis              *RedisConfig   `json:"redis,omitempty" mapstructure:"redis" yaml:"redis"`
}

// allowedDrivers lists the drivers each backend accepts.
var allowedDrivers = map[string][]string{
	BackendPseudonyms:         {string(adapter.DriverMongo), DriverMemory},
	BackendTransactionHistory: {string(adapter.DriverPostgres), DriverMemory},
	BackendConfiguration:      {string(adapter.DriverPostgres), string(adapter.DriverSQLite), DriverMemory},
	BackendNetworkMap:         {string(adapter.DriverPostgres), string(adapter.DriverSQLite), DriverMemory},
	BackendEvaluation:         {string(adapter.DriverPostgres), DriverMemory},
	BackendEventHistory:       {string(adapter.DriverPostgres), DriverMemory},
}

// backends returns the configured backends in composition order.
func (c ManagerConfig) backends() []namedBackend {
	all := []namedBackend{
		{BackendPseudonyms, c.Pseudonyms},
		{BackendTransactionHistory, c.TransactionHistory},
		{BackendConfiguration, c.Configuration},
		{BackendNetworkMap, c.NetworkMap},
		{BackendEvaluation, c.Evaluation},
		{BackendEventHistory, c.EventHistory},
	}
	out := all[:0]
	for _, b := range all {
		if b.cfg != nil {
			out = append(out, b)
		}
	}
	return out
}

type namedBackend struct {
	name string
	cfg  *BackendConfig
}

func (b namedBackend) driver() string {
	switch {
	case b.cfg.Driver != "":
		return b.cfg.Driver
	case b.name == BackendPseudonyms:
		return string(adapter.DriverMongo)
	default:
		return string(adapter.DriverPostgres)
	}
}

// Validate reports every structural problem in c.
func (c ManagerConfig) Validate() error {
	var errs []error
	if c.Redis == nil {
		errs = append(errs, errors.New("redis config is required"))
	} else if len(c.Redis.Servers) == 0 {
		errs = append(errs, errors.New("redis needs at least one server"))
	}
	for _, b := range c.backends() {
		drv := b.driver()
		if !slices.Contains(allowedDrivers[b.name], drv) {
			errs = append(errs, fmt.Errorf("%s: driver %q not supported", b.name, drv))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
