// Package quota enforces per-buyer purchase limits.
//
// The Tracker is an injected strategy rather than behavior baked into the
// purchase path, so alternative policies (rolling windows, tiered limits)
// can be substituted without touching the engine.
package quota

import (
	"context"
	"errors"

	"github.com/xraph/mintgate/id"
)

// ErrExceeded is returned when recording a quantity would push a buyer's
// cumulative total past the configured limit.
var ErrExceeded = errors.New("quota: per-buyer limit exceeded")

// Tracker checks and records cumulative mint counts per buyer per product.
//
// CheckAndRecord is a single atomic step: it either records the full
// quantity or records nothing and returns ErrExceeded. Release undoes a
// previously recorded quantity; the engine calls it when a later step of
// an authorized purchase fails, restoring all-or-nothing semantics.
//
// Bookkeeping keys on (product, buyer) only. No unit identifier exists
// at check time, since issuance happens afterwards.
type Tracker interface {
	CheckAndRecord(ctx context.Context, productID id.ProductID, buyer string, quantity, limit int64) error
	Release(ctx context.Context, productID id.ProductID, buyer string, quantity int64) error
}

// Store is the persistence surface a CumulativeTracker needs. It is
// defined locally so the package does not import the unified store;
// any mintgate store satisfies it.
type Store interface {
	QuotaUsed(ctx context.Context, productID id.ProductID, buyer string) (int64, error)
	CheckAndRecordQuota(ctx context.Context, productID id.ProductID, buyer string, quantity, limit int64) error
	ReleaseQuota(ctx context.Context, productID id.ProductID, buyer string, quantity int64) error
}

// CumulativeTracker is the default Tracker: a hard cumulative cap per
// buyer per product, persisted through the engine store.
type CumulativeTracker struct {
	store Store
}

// NewCumulativeTracker creates a Tracker backed by the given store.
func NewCumulativeTracker(s Store) *CumulativeTracker {
	return &CumulativeTracker{store: s}
}

// CheckAndRecord implements Tracker.
func (t *CumulativeTracker) CheckAndRecord(ctx context.Context, productID id.ProductID, buyer string, quantity, limit int64) error {
	return t.store.CheckAndRecordQuota(ctx, productID, buyer, quantity, limit)
}

// Release implements Tracker.
func (t *CumulativeTracker) Release(ctx context.Context, productID id.ProductID, buyer string, quantity int64) error {
	return t.store.ReleaseQuota(ctx, productID, buyer, quantity)
}

// Used returns the buyer's recorded cumulative total for a product.
func (t *CumulativeTracker) Used(ctx context.Context, productID id.ProductID, buyer string) (int64, error) {
	return t.store.QuotaUsed(ctx, productID, buyer)
}
