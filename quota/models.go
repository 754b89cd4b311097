package quota

import (
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/types"
)

// Record is the cumulative mint count for one (product, buyer) pair.
type Record struct {
	types.Entity
	ProductID id.ProductID `json:"product_id"`
	Buyer     string       `json:"buyer"`
	Used      int64        `json:"used"`
}
