// Package mintgate provides an escrow-gated purchase-authorization engine
// for Go applications.
//
// Mintgate is designed as a library, not a service. Import it directly into
// your Go application and wire it to your product ledger and payment asset
// service. It provides:
//
//   - Time-boxed sale configuration per product (price, window, per-buyer
//     limit, payment asset, payout recipient)
//   - Purchase authorization that delegates unit issuance to an external
//     product ledger and only charges buyers for units actually issued
//   - Custodial escrow accounting with owner-gated redemption
//   - Injectable per-buyer quota strategies
//   - Plugin hooks for sale, purchase and escrow lifecycle events
//
// # Quick Start
//
// Create an engine instance with your preferred store and collaborators:
//
//	import (
//	    "github.com/xraph/mintgate"
//	    "github.com/xraph/mintgate/store/memory"
//	)
//
//	// ledger implements mintgate.ProductLedger, payment implements
//	// mintgate.PaymentAsset.
//	eng := mintgate.New(memory.New(), ledger, payment,
//	    mintgate.WithAccount("treasury"),
//	)
//
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// # Core Concepts
//
// A sale configuration opens a purchase window for a product. Setting it
// is gated on the product's current owner:
//
//	cfg := &sale.Config{
//	    ProductID:   productID,
//	    Start:       time.Now(),
//	    End:         time.Now().Add(24 * time.Hour),
//	    UnitPrice:   mintgate.NewAmount("usdc", 10),
//	    MaxPerBuyer: 5,
//	    Recipient:   "treasury-wallet",
//	}
//	if err := eng.SetSale(ctx, owner, cfg); err != nil { ... }
//
// Buyers purchase through Mint, which checks the window, the buyer's
// payment allowance and the per-buyer quota before issuing:
//
//	unitID, err := eng.Mint(ctx, productID, buyer, "standard", 2, "gift")
//
// The owner later sweeps the accumulated escrow:
//
//	if err := eng.Redeem(ctx, owner, productID); err != nil { ... }
//
// A product with no sale configuration behaves as an always-closed sale:
// every Mint fails with ErrSaleEnded until SetSale is called.
//
// # Stores
//
// Mintgate ships four store backends behind one interface: memory (tests
// and demos), and sqlite, postgres and mongo via Grove. All quota
// accounting is atomic inside the store, so the per-buyer limit holds
// even across engine restarts.
//
// # Extending
//
// Plugins observe the engine's lifecycle (see the plugin package); the
// observability and audithook packages ship ready-made plugins for
// metrics and audit trails, and the extension package adapts the engine
// as a Forge extension.
package mintgate
