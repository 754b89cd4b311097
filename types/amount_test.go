package types

import (
	"encoding/json"
	"testing"
)

func TestAmountConstructors(t *testing.T) {
	tests := []struct {
		name    string
		amount  Amount
		value   int64
		asset   string
		display string
	}{
		{"USDC", NewAmount("usdc", 5000), 5000, "usdc", "5000 usdc"},
		{"Uppercase asset", NewAmount("USDC", 100), 100, "usdc", "100 usdc"},
		{"Zero", Zero("credits"), 0, "credits", "0 credits"},
		{"No asset", Amount{Value: 7}, 7, "", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.amount.Value != tt.value {
				t.Errorf("Value: got %d, want %d", tt.amount.Value, tt.value)
			}
			if tt.amount.Asset != tt.asset {
				t.Errorf("Asset: got %s, want %s", tt.amount.Asset, tt.asset)
			}
			if tt.amount.String() != tt.display {
				t.Errorf("Display: got %s, want %s", tt.amount.String(), tt.display)
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func() Amount
		expected Amount
	}{
		{"Add", func() Amount { return NewAmount("usdc", 100).Add(NewAmount("usdc", 200)) }, NewAmount("usdc", 300)},
		{"Subtract", func() Amount { return NewAmount("usdc", 500).Subtract(NewAmount("usdc", 200)) }, NewAmount("usdc", 300)},
		{"Multiply", func() Amount { return NewAmount("usdc", 10).Multiply(5) }, NewAmount("usdc", 50)},
		{"Negate", func() Amount { return NewAmount("usdc", 100).Negate() }, NewAmount("usdc", -100)},
		{"Sum", func() Amount {
			return Sum(NewAmount("usdc", 100), NewAmount("usdc", 200), NewAmount("usdc", 300))
		}, NewAmount("usdc", 600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.op()
			if !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAmountComparisons(t *testing.T) {
	a := NewAmount("usdc", 100)
	b := NewAmount("usdc", 200)

	if !a.LessThan(b) {
		t.Error("100 should be less than 200")
	}
	if !b.GreaterThan(a) {
		t.Error("200 should be greater than 100")
	}
	if !a.IsPositive() {
		t.Error("100 should be positive")
	}
	if !Zero("usdc").IsZero() {
		t.Error("zero should be zero")
	}
	if !a.Negate().IsNegative() {
		t.Error("-100 should be negative")
	}
	if a.Equal(NewAmount("credits", 100)) {
		t.Error("amounts in different assets are never equal")
	}
}

func TestAmountAssetMismatchPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on asset mismatch")
		}
	}()

	NewAmount("usdc", 100).Add(NewAmount("credits", 100))
}

func TestAmountJSON(t *testing.T) {
	data, err := json.Marshal(NewAmount("usdc", 5000))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded Amount
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !decoded.Equal(NewAmount("usdc", 5000)) {
		t.Errorf("round-trip mismatch: got %v", decoded)
	}
}
