// Package access answers ownership questions for owner-gated operations.
package access

import (
	"context"

	"github.com/xraph/mintgate/id"
)

// Authority decides whether a candidate identity currently owns a product.
// Implementations must resolve ownership fresh on every call — never cache
// across operations, since the underlying owner can change at any time.
type Authority interface {
	IsOwner(ctx context.Context, productID id.ProductID, candidate string) (bool, error)
}

// OwnerResolver looks up a product's current recorded owner. The engine's
// ProductLedger collaborator satisfies it.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, productID id.ProductID) (string, error)
}

// LedgerAuthority is the default Authority: it delegates every check to
// the product's own recorded-owner query.
type LedgerAuthority struct {
	resolver OwnerResolver
}

// NewLedgerAuthority creates an Authority backed by the given resolver.
func NewLedgerAuthority(r OwnerResolver) *LedgerAuthority {
	return &LedgerAuthority{resolver: r}
}

// IsOwner implements Authority.
func (a *LedgerAuthority) IsOwner(ctx context.Context, productID id.ProductID, candidate string) (bool, error) {
	owner, err := a.resolver.OwnerOf(ctx, productID)
	if err != nil {
		return false, err
	}
	return owner != "" && owner == candidate, nil
}
