// Package types provides common types used across Mintgate.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Amount represents a quantity of a payment asset in its smallest unit.
// All arithmetic is integer-only — no floating point.
//
// The Asset field is the opaque identifier of the payment asset the value
// is denominated in (e.g. "usdc", "credits"). Two Amounts are only
// comparable when they reference the same asset.
type Amount struct {
	Value int64  `json:"value"` // Smallest unit of the asset
	Asset string `json:"asset"` // Lowercase payment asset identifier
}

// NewAmount creates an Amount of the given asset.
func NewAmount(asset string, value int64) Amount {
	return Amount{Value: value, Asset: strings.ToLower(asset)}
}

// Zero returns a zero Amount in the specified asset.
func Zero(asset string) Amount { return Amount{Value: 0, Asset: strings.ToLower(asset)} }

// Arithmetic operations

// Add adds two Amounts. Panics if assets don't match.
func (a Amount) Add(other Amount) Amount {
	a.assertSameAsset(other)
	return Amount{Value: a.Value + other.Value, Asset: a.Asset}
}

// Subtract subtracts another Amount. Panics if assets don't match.
func (a Amount) Subtract(other Amount) Amount {
	a.assertSameAsset(other)
	return Amount{Value: a.Value - other.Value, Asset: a.Asset}
}

// Multiply multiplies the Amount by a quantity.
func (a Amount) Multiply(qty int64) Amount {
	return Amount{Value: a.Value * qty, Asset: a.Asset}
}

// Negate returns the negative of the Amount.
func (a Amount) Negate() Amount {
	return Amount{Value: -a.Value, Asset: a.Asset}
}

// Comparison methods

// IsZero returns true if the value is zero.
func (a Amount) IsZero() bool { return a.Value == 0 }

// IsPositive returns true if the value is greater than zero.
func (a Amount) IsPositive() bool { return a.Value > 0 }

// IsNegative returns true if the value is less than zero.
func (a Amount) IsNegative() bool { return a.Value < 0 }

// Equal returns true if both Amounts are equal (same value and asset).
func (a Amount) Equal(other Amount) bool {
	return a.Value == other.Value && a.Asset == other.Asset
}

// LessThan returns true if this Amount is less than other. Panics if assets don't match.
func (a Amount) LessThan(other Amount) bool {
	a.assertSameAsset(other)
	return a.Value < other.Value
}

// GreaterThan returns true if this Amount is greater than other. Panics if assets don't match.
func (a Amount) GreaterThan(other Amount) bool {
	a.assertSameAsset(other)
	return a.Value > other.Value
}

// String returns a human-readable representation, e.g. "5000 usdc".
func (a Amount) String() string {
	if a.Asset == "" {
		return fmt.Sprintf("%d", a.Value)
	}
	return fmt.Sprintf("%d %s", a.Value, a.Asset)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value int64  `json:"value"`
		Asset string `json:"asset"`
	}{
		Value: a.Value,
		Asset: a.Asset,
	})
}

// assertSameAsset panics if assets don't match.
func (a Amount) assertSameAsset(other Amount) {
	if a.Asset != other.Asset {
		panic(fmt.Sprintf("amount: asset mismatch: %s != %s", a.Asset, other.Asset))
	}
}

// Sum adds a slice of Amounts, all of which must share an asset.
// Returns the zero Amount for an empty slice.
func Sum(amounts ...Amount) Amount {
	if len(amounts) == 0 {
		return Amount{}
	}

	total := amounts[0]
	for _, a := range amounts[1:] {
		total = total.Add(a)
	}
	return total
}
