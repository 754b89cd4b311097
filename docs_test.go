package mintgate_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/mintgate"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/sale"
	"github.com/xraph/mintgate/store/memory"
	"github.com/xraph/mintgate/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from the package docs
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL in production)
		store := memory.New()

		ledger := newFakeLedger()
		payment := newFakeAsset()

		// Initialize the engine with collaborators
		eng := mintgate.New(store, ledger, payment,
			mintgate.WithLogger(slog.Default()),
			mintgate.WithAccount("treasury"),
		)

		// Start the engine
		ctx := context.Background()
		if err := eng.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer eng.Stop() //nolint:errcheck // shutdown error irrelevant in example

		// Configure a sale for a product we own
		productID := id.NewProductID()
		ledger.owners[productID.String()] = "alice"

		cfg := &sale.Config{
			ProductID:   productID,
			Start:       time.Now(),
			End:         time.Now().Add(24 * time.Hour),
			UnitPrice:   mintgate.NewAmount("usdc", 10),
			MaxPerBuyer: 5,
			Recipient:   "treasury-wallet",
		}
		if err := eng.SetSale(ctx, "alice", cfg); err != nil {
			t.Fatal(err)
		}

		// A buyer pre-authorizes spending and purchases
		payment.allowances["bob"] = 100

		unitID, err := eng.Mint(ctx, productID, "bob", "standard", 2, "gift")
		if err != nil {
			t.Fatal(err)
		}
		if unitID.Prefix() != id.PrefixUnit {
			t.Errorf("unexpected unit prefix: %q", unitID.Prefix())
		}

		// Check the accumulated escrow
		bal, err := eng.BalanceOf(ctx, productID)
		if err != nil {
			t.Fatal(err)
		}
		if !bal.Equal(types.NewAmount("usdc", 20)) {
			t.Errorf("escrow: got %v, want 20 usdc", bal)
		}

		// The owner sweeps the escrow
		if err := eng.Redeem(ctx, "alice", productID); err != nil {
			t.Fatal(err)
		}
	})
}
