package sale

import (
	"testing"
	"time"

	"github.com/xraph/mintgate/types"
)

func TestWindowSemantics(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	cfg := &Config{Start: start, End: end}

	tests := []struct {
		name       string
		at         time.Time
		ended      bool
		notStarted bool
		open       bool
	}{
		{"before start", start.Add(-time.Second), false, true, false},
		{"at start", start, false, false, true},
		{"inside window", start.Add(time.Hour), false, false, true},
		{"at end", end, false, false, true},
		{"after end", end.Add(time.Second), true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Ended(tt.at); got != tt.ended {
				t.Errorf("Ended: got %v, want %v", got, tt.ended)
			}
			if got := cfg.NotStarted(tt.at); got != tt.notStarted {
				t.Errorf("NotStarted: got %v, want %v", got, tt.notStarted)
			}
			if got := cfg.Open(tt.at); got != tt.open {
				t.Errorf("Open: got %v, want %v", got, tt.open)
			}
		})
	}
}

func TestZeroValueIsClosed(t *testing.T) {
	var cfg Config

	// Any present or future instant is after the zero End.
	if !cfg.Ended(time.Now()) {
		t.Error("zero-value config must report Ended")
	}
	if cfg.Open(time.Now()) {
		t.Error("zero-value config must be closed")
	}
}

func TestInvertedWindowAlwaysClosed(t *testing.T) {
	now := time.Now()
	cfg := &Config{Start: now.Add(time.Hour), End: now}

	// Start after End is a legal configuration; it simply never opens.
	for _, at := range []time.Time{now, now.Add(30 * time.Minute), now.Add(2 * time.Hour)} {
		if cfg.Open(at) {
			t.Errorf("inverted window open at %v", at)
		}
	}
}

func TestPriceFor(t *testing.T) {
	cfg := &Config{UnitPrice: types.NewAmount("usdc", 10)}

	if got := cfg.PriceFor(3); !got.Equal(types.NewAmount("usdc", 30)) {
		t.Errorf("PriceFor(3): got %v, want 30 usdc", got)
	}
	if got := cfg.PriceFor(1); !got.Equal(cfg.UnitPrice) {
		t.Errorf("PriceFor(1): got %v, want unit price", got)
	}
}

func TestLimited(t *testing.T) {
	if (&Config{MaxPerBuyer: 0}).Limited() {
		t.Error("zero limit means unlimited")
	}
	if !(&Config{MaxPerBuyer: 1}).Limited() {
		t.Error("positive limit means limited")
	}
}
