// Package sale defines the per-product sale configuration record.
package sale

import (
	"time"

	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/types"
)

// Config is the sale configuration for one product. It is the single
// source of truth for pricing, timing and payout routing, and is always
// replaced wholesale, never partially merged.
//
// The zero value is meaningful: both Start and End default to the zero
// instant, so an unconfigured product behaves as an always-closed sale
// (any current time is after the zero End).
type Config struct {
	types.Entity
	ProductID   id.ProductID `json:"product_id"`
	Start       time.Time    `json:"start"`
	End         time.Time    `json:"end"`
	UnitPrice   types.Amount `json:"unit_price"`    // Price per unit; Asset is the payment asset
	MaxPerBuyer int64        `json:"max_per_buyer"` // Cumulative units per buyer; 0 = unlimited
	Recipient   string       `json:"recipient"`     // Payout identity for redeemed escrow
}

// Ended reports whether the sale window has closed at the given instant.
// Holds for the zero-value Config, which is the default-closed state.
func (c *Config) Ended(at time.Time) bool {
	return at.After(c.End)
}

// NotStarted reports whether the sale window has not yet opened.
func (c *Config) NotStarted(at time.Time) bool {
	return at.Before(c.Start)
}

// Open reports whether the sale accepts purchases at the given instant.
func (c *Config) Open(at time.Time) bool {
	return !c.Ended(at) && !c.NotStarted(at)
}

// PriceFor returns the total price for the given quantity of units.
func (c *Config) PriceFor(quantity int64) types.Amount {
	return c.UnitPrice.Multiply(quantity)
}

// Limited reports whether a per-buyer quota applies.
func (c *Config) Limited() bool {
	return c.MaxPerBuyer > 0
}
