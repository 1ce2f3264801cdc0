package postgres

import (
	"context"
	"fmt"

	"github.com/xraph/grove/migrate"

	"github.com/xraph/dbmanager/condition"
)

// Migration groups, one per logical database.
var (
	EventHistoryMigrations       = migrate.NewGroup("dbmanager_event_history")
	TransactionHistoryMigrations = migrate.NewGroup("dbmanager_transaction_history")
	ConfigurationMigrations      = migrate.NewGroup("dbmanager_configuration")
	NetworkMapMigrations         = migrate.NewGroup("dbmanager_network_map")
	EvaluationMigrations         = migrate.NewGroup("dbmanager_evaluation")
)

// AllMigrations returns every migration group.
func AllMigrations() []*migrate.Group {
	return []*migrate.Group{
		EventHistoryMigrations,
		TransactionHistoryMigrations,
		ConfigurationMigrations,
		NetworkMapMigrations,
		EvaluationMigrations,
	}
}

func init() {
	EventHistoryMigrations.MustRegister(
		&migrate.Migration{
			Name:    "create_subjects",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS entity (
    id          TEXT NOT NULL,
    tenant_id   TEXT NOT NULL DEFAULT '',
    cre_dt_tm   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (id, tenant_id)
);

CREATE TABLE IF NOT EXISTS account (
    id          TEXT NOT NULL,
    tenant_id   TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (id, tenant_id)
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS account; DROP TABLE IF EXISTS entity;`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_condition",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS condition (
    id          TEXT PRIMARY KEY,
    tenant_id   TEXT NOT NULL DEFAULT '',
    condition   JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_condition_tenant ON condition (tenant_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS condition`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_condition_edges",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				for _, kind := range condition.AllEdgeKinds {
					if _, err := exec.Exec(ctx, edgeTableDDL(kind)); err != nil {
						return fmt.Errorf("create %s: %w", kind, err)
					}
				}
				return nil
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				for _, kind := range condition.AllEdgeKinds {
					if _, err := exec.Exec(ctx, "DROP TABLE IF EXISTS "+string(kind)); err != nil {
						return err
					}
				}
				return nil
			},
		},
	)

	TransactionHistoryMigrations.MustRegister(
		&migrate.Migration{
			Name:    "create_transaction_history",
			Version: "20250101000101",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS transaction_history (
    end_to_end_id        TEXT NOT NULL,
    tenant_id            TEXT NOT NULL DEFAULT '',
    tx_tp                TEXT NOT NULL,
    msg_id               TEXT NOT NULL DEFAULT '',
    debtor_account_id    TEXT NOT NULL DEFAULT '',
    creditor_account_id  TEXT NOT NULL DEFAULT '',
    amount               DOUBLE PRECISION NOT NULL DEFAULT 0,
    currency             TEXT NOT NULL DEFAULT '',
    cre_dt_tm            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    document             JSONB NOT NULL,
    PRIMARY KEY (tenant_id, end_to_end_id, tx_tp)
);

CREATE INDEX IF NOT EXISTS idx_transaction_history_debtor ON transaction_history (tenant_id, debtor_account_id, cre_dt_tm DESC);
CREATE INDEX IF NOT EXISTS idx_transaction_history_creditor ON transaction_history (tenant_id, creditor_account_id, cre_dt_tm DESC);
CREATE INDEX IF NOT EXISTS idx_transaction_history_msg ON transaction_history (tenant_id, msg_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS transaction_history`)
				return err
			},
		},
	)

	ConfigurationMigrations.MustRegister(
		&migrate.Migration{
			Name:    "create_configuration",
			Version: "20250101000201",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS rule_config (
    id          TEXT NOT NULL,
    cfg         TEXT NOT NULL,
    tenant_id   TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    configuration JSONB NOT NULL,
    PRIMARY KEY (id, cfg, tenant_id)
);

CREATE TABLE IF NOT EXISTS typology (
    id          TEXT NOT NULL,
    cfg         TEXT NOT NULL,
    tenant_id   TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    expression  JSONB NOT NULL,
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
	)

	NetworkMapMigrations.MustRegister(
		&migrate.Migration{
			Name:    "create_network_map",
			Version: "20250101000301",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS network_map (
    id          TEXT PRIMARY KEY,
    tenant_id   TEXT NOT NULL DEFAULT '',
    cfg         TEXT NOT NULL DEFAULT '',
    active      BOOLEAN NOT NULL DEFAULT FALSE,
    messages    JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
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

	EvaluationMigrations.MustRegister(
		&migrate.Migration{
			Name:    "create_evaluation",
			Version: "20250101000401",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS evaluation (
    id              TEXT PRIMARY KEY,
    transaction_id  TEXT NOT NULL,
    tenant_id       TEXT NOT NULL DEFAULT '',
    status          TEXT NOT NULL,
    report          JSONB NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_evaluation_tx ON evaluation (tenant_id, transaction_id);
CREATE INDEX IF NOT EXISTS idx_evaluation_status ON evaluation (tenant_id, status, created_at DESC);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS evaluation`)
				return err
			},
		},
	)
}

func edgeTableDDL(kind condition.EdgeKind) string {
	t := string(kind)
	return `
CREATE TABLE IF NOT EXISTS ` + t + ` (
    id              TEXT PRIMARY KEY,
    source          TEXT NOT NULL,
    destination     TEXT NOT NULL,
    evt_tp          TEXT[] NOT NULL DEFAULT '{}',
    tenant_id       TEXT NOT NULL DEFAULT '',
    incptn_dt_tm    TIMESTAMPTZ NOT NULL,
    xprtn_dt_tm     TIMESTAMPTZ,
    UNIQUE (source, destination)
);

CREATE INDEX IF NOT EXISTS idx_` + t + `_source ON ` + t + ` (source, tenant_id);
CREATE INDEX IF NOT EXISTS idx_` + t + `_destination ON ` + t + ` (destination);
`
}
