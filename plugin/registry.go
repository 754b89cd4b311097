package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit            []OnInit
	onShutdown        []OnShutdown
	onSaleSet         []OnSaleSet
	onSaleRetired     []OnSaleRetired
	onPurchaseComment []OnPurchaseComment
	onQuotaExceeded   []OnQuotaExceeded
	onEscrowDeposit   []OnEscrowDeposit
	onEscrowRedeemed  []OnEscrowRedeemed
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnSaleSet); ok {
		r.onSaleSet = append(r.onSaleSet, v)
	}
	if v, ok := p.(OnSaleRetired); ok {
		r.onSaleRetired = append(r.onSaleRetired, v)
	}
	if v, ok := p.(OnPurchaseComment); ok {
		r.onPurchaseComment = append(r.onPurchaseComment, v)
	}
	if v, ok := p.(OnQuotaExceeded); ok {
		r.onQuotaExceeded = append(r.onQuotaExceeded, v)
	}
	if v, ok := p.(OnEscrowDeposit); ok {
		r.onEscrowDeposit = append(r.onEscrowDeposit, v)
	}
	if v, ok := p.(OnEscrowRedeemed); ok {
		r.onEscrowRedeemed = append(r.onEscrowRedeemed, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnSaleSet)(nil)).Elem(), "OnSaleSet")
	checkInterface(reflect.TypeOf((*OnSaleRetired)(nil)).Elem(), "OnSaleRetired")
	checkInterface(reflect.TypeOf((*OnPurchaseComment)(nil)).Elem(), "OnPurchaseComment")
	checkInterface(reflect.TypeOf((*OnQuotaExceeded)(nil)).Elem(), "OnQuotaExceeded")
	checkInterface(reflect.TypeOf((*OnEscrowDeposit)(nil)).Elem(), "OnEscrowDeposit")
	checkInterface(reflect.TypeOf((*OnEscrowRedeemed)(nil)).Elem(), "OnEscrowRedeemed")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSaleSet emits a sale configured event.
func (r *Registry) EmitSaleSet(ctx context.Context, cfg interface{}) {
	r.mu.RLock()
	plugins := r.onSaleSet
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSaleSet(ctx, cfg)
		}); err != nil {
			r.logger.Warn("plugin OnSaleSet failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSaleRetired emits a sale retired event.
func (r *Registry) EmitSaleRetired(ctx context.Context, productID string) {
	r.mu.RLock()
	plugins := r.onSaleRetired
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSaleRetired(ctx, productID)
		}); err != nil {
			r.logger.Warn("plugin OnSaleRetired failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPurchaseComment emits a purchase comment event.
func (r *Registry) EmitPurchaseComment(ctx context.Context, buyer, productID, unitID string, quantity int64, comment string) {
	r.mu.RLock()
	plugins := r.onPurchaseComment
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseComment(ctx, buyer, productID, unitID, quantity, comment)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseComment failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitQuotaExceeded emits a quota denial event.
func (r *Registry) EmitQuotaExceeded(ctx context.Context, productID, buyer string, requested, limit int64) {
	r.mu.RLock()
	plugins := r.onQuotaExceeded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnQuotaExceeded(ctx, productID, buyer, requested, limit)
		}); err != nil {
			r.logger.Warn("plugin OnQuotaExceeded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEscrowDeposit emits an escrow deposit event.
func (r *Registry) EmitEscrowDeposit(ctx context.Context, productID, buyer string, amount interface{}) {
	r.mu.RLock()
	plugins := r.onEscrowDeposit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEscrowDeposit(ctx, productID, buyer, amount)
		}); err != nil {
			r.logger.Warn("plugin OnEscrowDeposit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEscrowRedeemed emits an escrow redeemed event.
func (r *Registry) EmitEscrowRedeemed(ctx context.Context, productID, recipient string, amount interface{}) {
	r.mu.RLock()
	plugins := r.onEscrowRedeemed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEscrowRedeemed(ctx, productID, recipient, amount)
		}); err != nil {
			r.logger.Warn("plugin OnEscrowRedeemed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the purchase pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
