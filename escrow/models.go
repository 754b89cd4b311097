// Package escrow defines the per-product custodial balance record.
package escrow

import (
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/types"
)

// Balance is the custodial balance held by the engine on a product's
// behalf. It is only ever incremented by successful purchases and reset
// to zero by redemption, so it always equals the sum of purchase
// payments since the last redemption.
type Balance struct {
	types.Entity
	ProductID id.ProductID `json:"product_id"`
	Amount    types.Amount `json:"amount"`
}
