// Package adapter opens and probes the database connections a manager
// composes: relational backends through grove's pgdriver or sqlitedriver,
// and the graph backend through grove's mongodriver.
//
// Opening is lenient. A backend that is unreachable at open time still
// yields a Connection whose Probe reports the failure, so the manager can
// come up degraded. Only malformed configuration is a hard error.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Driver names a backend implementation.
type Driver string

// Supported drivers.
const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMongo    Driver = "mongo"
)

// DefaultTimeout bounds the connectivity check performed while opening.
const DefaultTimeout = 5 * time.Second

// ErrInvalidConfig is returned when a Config cannot describe a connection.
var ErrInvalidConfig = errors.New("adapter: invalid config")

// Config describes one backend connection. URL, when set, is used
// verbatim; otherwise the address is assembled from the discrete fields.
type Config struct {
	Driver   Driver
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// CertPath names a PEM CA bundle. A missing file disables custom TLS.
	CertPath string
	PoolSize int
	Timeout  time.Duration
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// Connection is an open backend handle.
type Connection interface {
	// Driver reports which implementation backs the connection.
	Driver() Driver

	// Probe verifies the backend is usable. A nil error means ready.
	Probe(ctx context.Context) error

	// Close releases the connection. It is idempotent.
	Close() error
}

// Open dispatches on cfg.Driver. An empty driver means postgres.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	switch cfg.Driver {
	case "", DriverPostgres, DriverSQLite:
		return OpenRelational(ctx, cfg)
	case DriverMongo:
		return OpenGraph(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
