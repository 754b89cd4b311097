// Package plugin provides an extensible plugin system for Mintgate.
// Plugins can hook into purchase lifecycle events to extend functionality.
package plugin

import "context"

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Sale configuration hooks
// ──────────────────────────────────────────────────

// OnSaleSet is called when a product's sale configuration is created or replaced.
type OnSaleSet interface {
	Plugin
	OnSaleSet(ctx context.Context, cfg interface{}) error
}

// OnSaleRetired is called when a sale configuration is deleted during redemption.
type OnSaleRetired interface {
	Plugin
	OnSaleRetired(ctx context.Context, productID string) error
}

// ──────────────────────────────────────────────────
// Purchase hooks
// ──────────────────────────────────────────────────

// OnPurchaseComment is called when a buyer attaches a comment to a purchase.
// Informational only; it has no effect on engine state.
type OnPurchaseComment interface {
	Plugin
	OnPurchaseComment(ctx context.Context, buyer, productID, unitID string, quantity int64, comment string) error
}

// OnQuotaExceeded is called when a purchase is denied by the per-buyer limit.
type OnQuotaExceeded interface {
	Plugin
	OnQuotaExceeded(ctx context.Context, productID, buyer string, requested, limit int64) error
}

// ──────────────────────────────────────────────────
// Escrow hooks
// ──────────────────────────────────────────────────

// OnEscrowDeposit is called when a successful purchase credits a product's escrow.
type OnEscrowDeposit interface {
	Plugin
	OnEscrowDeposit(ctx context.Context, productID, buyer string, amount interface{}) error
}

// OnEscrowRedeemed is called when a product owner sweeps the escrow balance.
type OnEscrowRedeemed interface {
	Plugin
	OnEscrowRedeemed(ctx context.Context, productID, recipient string, amount interface{}) error
}
