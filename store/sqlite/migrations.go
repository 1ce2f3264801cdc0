package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the SQLite configuration
// and network map stores.
var Migrations = migrate.NewGroup("dbmanager")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_configuration",
			Version: "20250101000201",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS rule_config (
    id              TEXT NOT NULL,
    cfg             TEXT NOT NULL,
    tenant_id       TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    configuration   TEXT NOT NULL DEFAULT '{}',
    PRIMARY KEY (id, cfg, tenant_id)
);

CREATE TABLE IF NOT EXISTS typology (
    id              TEXT NOT NULL,
    cfg             TEXT NOT NULL,
    tenant_id       TEXT NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    expression      TEXT NOT NULL DEFAULT '{}',
    PRIMARY KEY (id, cfg, tenant_id)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS typology; DROP TABLE IF EXISTS rule_config;`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_network_map",
			Version: "20250101000301",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS network_map (
    id          TEXT PRIMARY KEY,
    tenant_id   TEXT NOT NULL DEFAULT '',
    cfg         TEXT NOT NULL DEFAULT '',
    active      INTEGER NOT NULL DEFAULT 0,
    messages    TEXT NOT NULL DEFAULT '[]',
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_network_map_active ON network_map (tenant_id, active);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS network_map`)
				return err
			},
		},
	)
}
