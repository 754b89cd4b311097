// Package audithook bridges Mintgate lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import any
// audit backend directly. Callers inject a RecorderFunc adapter that bridges
// to the concrete backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/mintgate/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin            = (*Extension)(nil)
	_ plugin.OnSaleSet         = (*Extension)(nil)
	_ plugin.OnSaleRetired     = (*Extension)(nil)
	_ plugin.OnPurchaseComment = (*Extension)(nil)
	_ plugin.OnQuotaExceeded   = (*Extension)(nil)
	_ plugin.OnEscrowDeposit   = (*Extension)(nil)
	_ plugin.OnEscrowRedeemed  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so that the audithook package does not import a
// concrete audit backend. Callers inject the backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Mintgate lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Sale lifecycle hooks
// ──────────────────────────────────────────────────

// OnSaleSet implements plugin.OnSaleSet.
func (e *Extension) OnSaleSet(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSaleSet, SeverityInfo, OutcomeSuccess,
		ResourceSale, "", CategorySale, nil,
		"event", "sale_set",
	)
}

// OnSaleRetired implements plugin.OnSaleRetired.
func (e *Extension) OnSaleRetired(ctx context.Context, productID string) error {
	return e.record(ctx, ActionSaleRetired, SeverityInfo, OutcomeSuccess,
		ResourceSale, productID, CategorySale, nil,
		"product_id", productID,
	)
}

// ──────────────────────────────────────────────────
// Purchase lifecycle hooks
// ──────────────────────────────────────────────────

// OnPurchaseComment implements plugin.OnPurchaseComment.
func (e *Extension) OnPurchaseComment(ctx context.Context, buyer, productID, unitID string, quantity int64, comment string) error {
	return e.record(ctx, ActionPurchaseComment, SeverityInfo, OutcomeSuccess,
		ResourcePurchase, unitID, CategorySale, nil,
		"buyer", buyer,
		"product_id", productID,
		"quantity", quantity,
		"comment", comment,
	)
}

// OnQuotaExceeded implements plugin.OnQuotaExceeded.
func (e *Extension) OnQuotaExceeded(ctx context.Context, productID, buyer string, requested, limit int64) error {
	return e.record(ctx, ActionQuotaExceeded, SeverityWarning, OutcomeFailure,
		ResourceQuota, productID, CategoryAccess, nil,
		"buyer", buyer,
		"product_id", productID,
		"requested", requested,
		"limit", limit,
	)
}

// ──────────────────────────────────────────────────
// Escrow lifecycle hooks
// ──────────────────────────────────────────────────

// OnEscrowDeposit implements plugin.OnEscrowDeposit.
func (e *Extension) OnEscrowDeposit(ctx context.Context, productID, buyer string, amount interface{}) error {
	return e.record(ctx, ActionEscrowDeposit, SeverityInfo, OutcomeSuccess,
		ResourceEscrow, productID, CategoryPayment, nil,
		"buyer", buyer,
		"product_id", productID,
		"amount", fmt.Sprintf("%v", amount),
	)
}

// OnEscrowRedeemed implements plugin.OnEscrowRedeemed.
func (e *Extension) OnEscrowRedeemed(ctx context.Context, productID, recipient string, amount interface{}) error {
	return e.record(ctx, ActionEscrowRedeemed, SeverityInfo, OutcomeSuccess,
		ResourceEscrow, productID, CategoryPayment, nil,
		"recipient", recipient,
		"product_id", productID,
		"amount", fmt.Sprintf("%v", amount),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audithook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
