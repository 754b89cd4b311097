package sale

import (
	"context"

	"github.com/xraph/mintgate/id"
)

// Store is the persistence interface for sale configurations.
type Store interface {
	// Put fully replaces any existing configuration for the product.
	Put(ctx context.Context, cfg *Config) error
	// Get returns the configuration for the product.
	Get(ctx context.Context, productID id.ProductID) (*Config, error)
	// Delete removes the configuration for the product.
	Delete(ctx context.Context, productID id.ProductID) error
}
