package escrow

import (
	"context"

	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/types"
)

// Store is the persistence interface for escrow balances.
type Store interface {
	// Get returns the balance record for the product.
	Get(ctx context.Context, productID id.ProductID) (*Balance, error)
	// Credit atomically increments the product's balance by amount.
	Credit(ctx context.Context, productID id.ProductID, amount types.Amount) error
	// Reset sets the product's balance back to zero.
	Reset(ctx context.Context, productID id.ProductID) error
}
