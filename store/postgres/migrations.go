package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Mintgate store (PostgreSQL).
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
    start_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    end_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    price_value   BIGINT NOT NULL DEFAULT 0,
    price_asset   TEXT NOT NULL DEFAULT '',
    max_per_buyer BIGINT NOT NULL DEFAULT 0,
    recipient     TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    amount_value BIGINT NOT NULL DEFAULT 0,
    amount_asset TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
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
    used       BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
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
