package adapter

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"
)

// Compile-time interface check.
var _ Connection = (*Graph)(nil)

// systemDatabases are never valid application databases.
var systemDatabases = []string{"admin", "local", "config"}

// Graph is a MongoDB connection wrapped in a grove handle.
type Graph struct {
	db       *grove.DB
	mdb      *mongodriver.MongoDB
	database string
	// openErr is the connectivity failure seen while opening, if any.
	openErr error

	closeOnce sync.Once
	closeErr  error
}

// OpenGraph connects to MongoDB. A malformed URI is a hard error; a failed
// initial ping is kept and reported by Probe.
func OpenGraph(ctx context.Context, cfg Config) (*Graph, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("%w: graph backend needs a database name", ErrInvalidConfig)
	}
	uri, err := mongoURI(cfg)
	if err != nil {
		return nil, err
	}

	openCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	mdb := mongodriver.New()
	openErr := mdb.Open(openCtx, uri, mongodriver.WithDatabase(cfg.Database))
	if openErr != nil && mdb.Client() == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, openErr)
	}

	db, err := grove.Open(mdb)
	if err != nil {
		_ = mdb.Close()
		return nil, fmt.Errorf("adapter: grove open: %w", err)
	}
	return &Graph{db: db, mdb: mdb, database: cfg.Database, openErr: openErr}, nil
}

// DB returns the grove handle.
func (g *Graph) DB() *grove.DB { return g.db }

// Mongo returns the underlying driver.
func (g *Graph) Mongo() *mongodriver.MongoDB { return g.mdb }

// Driver reports mongo.
func (g *Graph) Driver() Driver { return DriverMongo }

// Probe verifies the configured database exists and is not a system
// database.
func (g *Graph) Probe(ctx context.Context) error {
	if slices.Contains(systemDatabases, g.database) {
		return fmt.Errorf("adapter: %q is a system database", g.database)
	}
	names, err := g.mdb.Client().ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		if g.openErr != nil {
			return fmt.Errorf("adapter: mongo probe: %w (open: %v)", err, g.openErr)
		}
		return fmt.Errorf("adapter: mongo probe: %w", err)
	}
	if !slices.Contains(names, g.database) {
		return fmt.Errorf("adapter: database %q does not exist", g.database)
	}
	return nil
}

// Close disconnects once; later calls return the first result.
func (g *Graph) Close() error {
	g.closeOnce.Do(func() {
		g.closeErr = g.db.Close()
	})
	return g.closeErr
}

func mongoURI(cfg Config) (string, error) {
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
			return "", fmt.Errorf("%w: mongo needs a url or host", ErrInvalidConfig)
		}
		port := cfg.Port
		if port == 0 {
			port = 27017
		}
		u = &url.URL{Scheme: "mongodb", Host: net.JoinHostPort(cfg.Host, strconv.Itoa(port)), Path: "/"}
		if cfg.User != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		}
	}
	q := u.Query()
	if ca != "" {
		q.Set("tls", "true")
		q.Set("tlsCAFile", ca)
	}
	ms := strconv.FormatInt(cfg.timeout().Milliseconds(), 10)
	if q.Get("serverSelectionTimeoutMS") == "" {
		q.Set("serverSelectionTimeoutMS", ms)
	}
	if q.Get("connectTimeoutMS") == "" {
		q.Set("connectTimeoutMS", ms)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
