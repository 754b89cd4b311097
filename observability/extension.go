// Package observability provides a metrics extension for Mintgate that records
// lifecycle event counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/mintgate/plugin"
	"github.com/xraph/mintgate/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnInit            = (*MetricsExtension)(nil)
	_ plugin.OnSaleSet         = (*MetricsExtension)(nil)
	_ plugin.OnSaleRetired     = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseComment = (*MetricsExtension)(nil)
	_ plugin.OnQuotaExceeded   = (*MetricsExtension)(nil)
	_ plugin.OnEscrowDeposit   = (*MetricsExtension)(nil)
	_ plugin.OnEscrowRedeemed  = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Mintgate plugin to automatically track purchase metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Sale metrics
	SaleConfigured Counter
	SaleRetired    Counter

	// Purchase metrics
	PurchaseComments Counter
	PurchaseQuantity Histogram
	QuotaDenials     Counter

	// Escrow metrics
	EscrowDeposits  Counter
	EscrowDeposited Histogram
	EscrowRedeemed  Counter
	EscrowSwept     Histogram

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Sale metrics
		SaleConfigured: factory.Counter("mintgate.sale.configured"),
		SaleRetired:    factory.Counter("mintgate.sale.retired"),

		// Purchase metrics
		PurchaseComments: factory.Counter("mintgate.purchase.comments"),
		PurchaseQuantity: factory.Histogram("mintgate.purchase.quantity"),
		QuotaDenials:     factory.Counter("mintgate.quota.denials"),

		// Escrow metrics
		EscrowDeposits:  factory.Counter("mintgate.escrow.deposits"),
		EscrowDeposited: factory.Histogram("mintgate.escrow.deposit_amount"),
		EscrowRedeemed:  factory.Counter("mintgate.escrow.redemptions"),
		EscrowSwept:     factory.Histogram("mintgate.escrow.swept_amount"),

		// Error metrics
		StoreErrors:  factory.Counter("mintgate.store.errors"),
		PluginErrors: factory.Counter("mintgate.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Sale lifecycle hooks
// ──────────────────────────────────────────────────

// OnSaleSet implements plugin.OnSaleSet.
func (m *MetricsExtension) OnSaleSet(_ context.Context, _ interface{}) error {
	m.SaleConfigured.Inc()
	return nil
}

// OnSaleRetired implements plugin.OnSaleRetired.
func (m *MetricsExtension) OnSaleRetired(_ context.Context, _ string) error {
	m.SaleRetired.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Purchase lifecycle hooks
// ──────────────────────────────────────────────────

// OnPurchaseComment implements plugin.OnPurchaseComment.
func (m *MetricsExtension) OnPurchaseComment(_ context.Context, _, _, _ string, quantity int64, _ string) error {
	m.PurchaseComments.Inc()
	m.PurchaseQuantity.Observe(float64(quantity))
	return nil
}

// OnQuotaExceeded implements plugin.OnQuotaExceeded.
func (m *MetricsExtension) OnQuotaExceeded(_ context.Context, _, _ string, _, _ int64) error {
	m.QuotaDenials.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Escrow lifecycle hooks
// ──────────────────────────────────────────────────

// OnEscrowDeposit implements plugin.OnEscrowDeposit.
func (m *MetricsExtension) OnEscrowDeposit(_ context.Context, _, _ string, amount interface{}) error {
	m.EscrowDeposits.Inc()
	if a, ok := amount.(types.Amount); ok {
		m.EscrowDeposited.Observe(float64(a.Value))
	}
	return nil
}

// OnEscrowRedeemed implements plugin.OnEscrowRedeemed.
func (m *MetricsExtension) OnEscrowRedeemed(_ context.Context, _, _ string, amount interface{}) error {
	m.EscrowRedeemed.Inc()
	if a, ok := amount.(types.Amount); ok {
		m.EscrowSwept.Observe(float64(a.Value))
	}
	return nil
}
