package mintgate

import (
	"context"

	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/types"
)

// ProductLedger is the external authority that actually issues units.
// The engine delegates issuance entirely; it does not duplicate the
// ledger's bookkeeping, only reacts to its result.
type ProductLedger interface {
	// IssueUnits issues quantity units of category to buyer and returns
	// the identifier of the issued unit (or batch).
	IssueUnits(ctx context.Context, productID id.ProductID, buyer, category string, quantity int64) (id.UnitID, error)

	// OwnerOf returns the product's current recorded owner.
	OwnerOf(ctx context.Context, productID id.ProductID) (string, error)
}

// PaymentAsset is the external value-transfer service with an
// allowance/approval model. The asset an Amount is denominated in selects
// which asset the call operates on.
type PaymentAsset interface {
	// Allowance returns how much of asset the owner has pre-authorized
	// the spender to pull.
	Allowance(ctx context.Context, asset, owner, spender string) (types.Amount, error)

	// Transfer moves amount from the engine's own account to the recipient.
	Transfer(ctx context.Context, to string, amount types.Amount) error

	// TransferFrom pulls amount from the owner's account into the
	// recipient's, consuming the owner's allowance.
	TransferFrom(ctx context.Context, from, to string, amount types.Amount) error
}
