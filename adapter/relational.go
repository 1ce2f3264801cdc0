package adapter

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"

	"github.com/xraph/grove"
	"github.com/xraph/grove/driver"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/drivers/sqlitedriver"
)

// Compile-time interface check.
var _ Connection = (*Relational)(nil)

// Relational is a SQL connection wrapped in a grove handle.
type Relational struct {
	db     *grove.DB
	driver Driver

	closeOnce sync.Once
	closeErr  error
}

// OpenRelational opens a postgres or sqlite handle. For postgres the pool
// connects lazily, so an unreachable server is reported by Probe rather
// than here.
func OpenRelational(ctx context.Context, cfg Config) (*Relational, error) {
	drvName := cfg.Driver
	if drvName == "" {
		drvName = DriverPostgres
	}
	var opts []driver.Option
	if cfg.PoolSize > 0 {
		opts = append(opts, driver.WithPoolSize(cfg.PoolSize))
	}

	var drv grove.GroveDriver
	switch drvName {
	case DriverPostgres:
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		pg := pgdriver.New()
		if err := pg.Open(ctx, dsn, opts...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		drv = pg
	case DriverSQLite:
		dsn := cfg.URL
		if dsn == "" {
			dsn = cfg.Database
		}
		if dsn == "" {
			return nil, fmt.Errorf("%w: sqlite needs a url or database path", ErrInvalidConfig)
		}
		lite := sqlitedriver.New()
		if err := lite.Open(ctx, dsn, opts...); err != nil {
			return nil, fmt.Errorf("adapter: open sqlite: %w", err)
		}
		drv = lite
	default:
		return nil, fmt.Errorf("%w: %q is not a relational driver", ErrInvalidConfig, drvName)
	}

	db, err := grove.Open(drv)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("adapter: grove open: %w", err)
	}
	return &Relational{db: db, driver: drvName}, nil
}

// NewRelational wraps an already opened grove handle.
func NewRelational(db *grove.DB, drv Driver) *Relational {
	return &Relational{db: db, driver: drv}
}

// DB returns the grove handle.
func (r *Relational) DB() *grove.DB { return r.db }

// Driver reports postgres or sqlite.
func (r *Relational) Driver() Driver { return r.driver }

// Probe runs SELECT 1.
func (r *Relational) Probe(ctx context.Context) error {
	q, ok := r.db.Driver().(driver.Driver)
	if !ok {
		return r.db.Ping(ctx)
	}
	var one int
	if err := q.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("adapter: %s probe: %w", r.driver, err)
	}
	return nil
}

// Close closes the handle once; later calls return the first result.
func (r *Relational) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.db.Close()
	})
	return r.closeErr
}

// postgresDSN builds a postgres URL. A usable CA file switches the
// connection to sslmode=verify-full.
func postgresDSN(cfg Config) (string, error) {
	ca, err := caFile(cfg.CertPath)
	if err != nil {
		return "", err
	}
	var u *url.URL
	if cfg.URL != "" {
		u, err = url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("%w: parse url: %w", ErrInvalidConfig, err)
		}
	} else {
		if cfg.Host == "" {
			return "", fmt.Errorf("%w: postgres needs a url or host", ErrInvalidConfig)
		}
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		u = &url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
			Path:   "/" + cfg.Database,
		}
		if cfg.User != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		}
	}
	q := u.Query()
	if ca != "" {
		q.Set("sslmode", "verify-full")
		q.Set("sslrootcert", ca)
	}
	if q.Get("connect_timeout") == "" {
		// connect_timeout is whole seconds and 0 disables it.
		q.Set("connect_timeout", strconv.Itoa(max(1, int(cfg.timeout().Seconds()))))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
