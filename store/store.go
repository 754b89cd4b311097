// Package store defines the unified storage interface for Mintgate.
package store

import (
	"context"

	"github.com/xraph/mintgate/escrow"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/sale"
	"github.com/xraph/mintgate/types"
)

// Store is the unified storage interface for all Mintgate entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Sale configuration methods
	PutSaleConfig(ctx context.Context, cfg *sale.Config) error
	GetSaleConfig(ctx context.Context, productID id.ProductID) (*sale.Config, error)
	DeleteSaleConfig(ctx context.Context, productID id.ProductID) error

	// Escrow methods
	GetEscrow(ctx context.Context, productID id.ProductID) (*escrow.Balance, error)
	CreditEscrow(ctx context.Context, productID id.ProductID, amount types.Amount) error
	ResetEscrow(ctx context.Context, productID id.ProductID) error

	// Quota methods. CheckAndRecordQuota is a single atomic step: it either
	// records the full quantity or records nothing and returns quota.ErrExceeded.
	QuotaUsed(ctx context.Context, productID id.ProductID, buyer string) (int64, error)
	CheckAndRecordQuota(ctx context.Context, productID id.ProductID, buyer string, quantity, limit int64) error
	ReleaseQuota(ctx context.Context, productID id.ProductID, buyer string, quantity int64) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
