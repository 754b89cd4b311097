package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Mintgate store (SQLite).
var Migrations = migrate.NewGroup("mintgate")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_mintgate_sales",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS mintgate_sales (
    product_id    TEXT PRIMARY KEY,
    start_at      TEXT NOT NULL DEFAULT (datetime('now')),
    end_at        TEXT NOT NULL DEFAULT (datetime('now')),
    price_value   INTEGER NOT NULL DEFAULT 0,
    price_asset   TEXT NOT NULL DEFAULT '',
    max_per_buyer INTEGER NOT NULL DEFAULT 0,
    recipient     TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at    TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS mintgate_sales`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_mintgate_escrow",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS mintgate_escrow (
    product_id   TEXT PRIMARY KEY,
    amount_value INTEGER NOT NULL DEFAULT 0,
    amount_asset TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at   TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS mintgate_escrow`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_mintgate_quota",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS mintgate_quota (
    product_id TEXT NOT NULL,
    buyer      TEXT NOT NULL,
    used       INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (product_id, buyer)
);

CREATE INDEX IF NOT EXISTS idx_mintgate_quota_product ON mintgate_quota (product_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS mintgate_quota`)
				return err
			},
		},
	)
}
