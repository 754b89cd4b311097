package mintgate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/xraph/mintgate/access"
	"github.com/xraph/mintgate/id"
	"github.com/xraph/mintgate/plugin"
	"github.com/xraph/mintgate/quota"
	"github.com/xraph/mintgate/sale"
	"github.com/xraph/mintgate/store"
	"github.com/xraph/mintgate/types"
)

// DefaultAccount is the engine's custodial account identity on the
// payment asset service when none is configured.
const DefaultAccount = "mintgate"

// Engine is the escrow-gated purchase-authorization engine.
//
// It authorizes unit issuance against a product's sale configuration and
// per-buyer quota, pulls payment into its custodial account, and tracks
// the accumulated escrow until the product owner redeems it.
type Engine struct {
	store     store.Store
	ledger    ProductLedger
	payment   PaymentAsset
	authority access.Authority
	tracker   quota.Tracker
	plugins   *plugin.Registry
	logger    *slog.Logger
	account   string

	// Per-product operation locks. Held for the full duration of a
	// mutating operation so a collaborator calling back into the engine
	// mid-operation is rejected instead of observing stale escrow state.
	// Entries are never evicted (removing one while another goroutine
	// holds its mutex would break exclusion); the map grows with the
	// number of distinct products the process touches.
	locks sync.Map // product ID string -> *sync.Mutex
}

// New creates a new Engine instance.
func New(s store.Store, ledger ProductLedger, payment PaymentAsset, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		ledger:  ledger,
		payment: payment,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		account: DefaultAccount,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.authority == nil {
		e.authority = access.NewLedgerAuthority(ledger)
	}
	if e.tracker == nil {
		e.tracker = quota.NewCumulativeTracker(s)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithAuthority sets the ownership authority. Defaults to resolving the
// product's recorded owner through the ProductLedger on every check.
func WithAuthority(a access.Authority) Option {
	return func(e *Engine) {
		e.authority = a
	}
}

// WithQuotaTracker sets the per-buyer quota strategy. Defaults to a hard
// cumulative cap persisted through the engine store.
func WithQuotaTracker(t quota.Tracker) Option {
	return func(e *Engine) {
		e.tracker = t
	}
}

// WithAccount sets the engine's custodial account identity on the
// payment asset service.
func WithAccount(account string) Option {
	return func(e *Engine) {
		e.account = account
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("mintgate started", "account", e.account)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	e.plugins.EmitShutdown(context.Background())

	return e.store.Close()
}

// Ping checks store connectivity.
func (e *Engine) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

// Account returns the engine's custodial account identity.
func (e *Engine) Account() string { return e.account }

// ──────────────────────────────────────────────────
// Sale configuration
// ──────────────────────────────────────────────────

// SetSale creates or wholesale-replaces the sale configuration for
// cfg.ProductID. The caller must be the product's current owner or the
// call fails with ErrUnauthorized.
//
// Field ranges are deliberately not validated: an owner may configure a
// sale that starts after it ends, which simply behaves as always closed.
func (e *Engine) SetSale(ctx context.Context, caller string, cfg *sale.Config) error {
	if cfg == nil || cfg.ProductID.IsNil() {
		return ErrInvalidInput
	}

	unlock, err := e.lockProduct(cfg.ProductID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := e.requireOwner(ctx, cfg.ProductID, caller); err != nil {
		return err
	}

	// Persist a copy so the caller's struct is not rewritten.
	rec := *cfg
	rec.Entity = types.NewEntity()

	if err := e.store.PutSaleConfig(ctx, &rec); err != nil {
		return err
	}

	e.plugins.EmitSaleSet(ctx, &rec)

	e.logger.Debug("sale configured",
		"product", cfg.ProductID.String(),
		"start", cfg.Start,
		"end", cfg.End,
		"unit_price", cfg.UnitPrice.String(),
		"max_per_buyer", cfg.MaxPerBuyer,
	)

	return nil
}

// Sale returns the product's sale configuration. A product that was never
// configured yields the zero-value Config, whose closed window rejects
// every purchase with ErrSaleEnded.
func (e *Engine) Sale(ctx context.Context, productID id.ProductID) (*sale.Config, error) {
	cfg, err := e.store.GetSaleConfig(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrSaleNotFound) {
			return &sale.Config{ProductID: productID}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// ──────────────────────────────────────────────────
// Purchase authorization
// ──────────────────────────────────────────────────

// Mint authorizes the purchase of quantity units of category for buyer,
// delegates issuance to the product ledger, pulls payment into the
// engine's custody, and credits the product's escrow.
//
// Any failure leaves the sale config, escrow and quota state unchanged.
// The buyer is never charged for units that were not issued: issuance
// precedes the payment pull, which precedes the escrow credit.
func (e *Engine) Mint(ctx context.Context, productID id.ProductID, buyer, category string, quantity int64, comment string) (id.UnitID, error) {
	if productID.IsNil() || buyer == "" {
		return id.Nil, ErrInvalidInput
	}
	if quantity <= 0 {
		return id.Nil, ErrInvalidQuantity
	}

	unlock, err := e.lockProduct(productID)
	if err != nil {
		return id.Nil, err
	}
	defer unlock()

	cfg, err := e.Sale(ctx, productID)
	if err != nil {
		return id.Nil, err
	}

	// Temporal gating. The zero-value config ends at the zero instant,
	// so the unconfigured case fails here too.
	now := time.Now()
	if cfg.Ended(now) {
		return id.Nil, ErrSaleEnded
	}
	if cfg.NotStarted(now) {
		return id.Nil, ErrSaleNotStarted
	}

	// A quantity large enough to wrap the multiplication would slip
	// past the allowance check with a tiny wrapped total.
	if cfg.UnitPrice.Value > 0 && quantity > math.MaxInt64/cfg.UnitPrice.Value {
		return id.Nil, ErrInvalidQuantity
	}
	total := cfg.PriceFor(quantity)

	allowance, err := e.payment.Allowance(ctx, total.Asset, buyer, e.account)
	if err != nil {
		return id.Nil, fmt.Errorf("mintgate: query allowance: %w", err)
	}
	if allowance.LessThan(total) {
		return id.Nil, ErrInsufficientAuthorization
	}

	// The quota is the one mutation that happens before the issuance
	// call, so a denied purchase never reaches the ledger. It is
	// compensated via Release if a later step fails.
	recorded := false
	if cfg.Limited() {
		err := e.tracker.CheckAndRecord(ctx, productID, buyer, quantity, cfg.MaxPerBuyer)
		if errors.Is(err, quota.ErrExceeded) {
			e.plugins.EmitQuotaExceeded(ctx, productID.String(), buyer, quantity, cfg.MaxPerBuyer)
			return id.Nil, err
		}
		if err != nil {
			return id.Nil, fmt.Errorf("mintgate: record quota: %w", err)
		}
		recorded = true
	}

	unitID, err := e.ledger.IssueUnits(ctx, productID, buyer, category, quantity)
	if err != nil {
		e.releaseQuota(ctx, recorded, productID, buyer, quantity)
		return id.Nil, fmt.Errorf("mintgate: issue units: %w", err)
	}

	if comment != "" {
		e.plugins.EmitPurchaseComment(ctx, buyer, productID.String(), unitID.String(), quantity, comment)
	}

	if err := e.payment.TransferFrom(ctx, buyer, e.account, total); err != nil {
		e.releaseQuota(ctx, recorded, productID, buyer, quantity)
		return id.Nil, fmt.Errorf("mintgate: pull payment: %w", err)
	}

	if err := e.store.CreditEscrow(ctx, productID, total); err != nil {
		// Funds were already pulled; surface loudly before compensating.
		e.logger.Error("escrow credit failed after payment pull",
			"product", productID.String(),
			"buyer", buyer,
			"amount", total.String(),
			"error", err,
		)
		e.releaseQuota(ctx, recorded, productID, buyer, quantity)
		return id.Nil, err
	}

	e.plugins.EmitEscrowDeposit(ctx, productID.String(), buyer, total)

	e.logger.Debug("purchase authorized",
		"product", productID.String(),
		"buyer", buyer,
		"unit", unitID.String(),
		"quantity", quantity,
		"total", total.String(),
	)

	return unitID, nil
}

// BalanceOf returns the product's current escrow balance. Products with
// no recorded deposits report the zero Amount.
func (e *Engine) BalanceOf(ctx context.Context, productID id.ProductID) (types.Amount, error) {
	bal, err := e.store.GetEscrow(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrEscrowNotFound) {
			return types.Amount{}, nil
		}
		return types.Amount{}, err
	}
	return bal.Amount, nil
}

// ──────────────────────────────────────────────────
// Redemption
// ──────────────────────────────────────────────────

// Redeem sweeps the product's escrow balance to the configured recipient
// and retires the sale configuration. The caller must be the product's
// current owner. A subsequent purchase attempt fails with ErrSaleEnded
// until a new configuration is set.
func (e *Engine) Redeem(ctx context.Context, caller string, productID id.ProductID) error {
	if productID.IsNil() {
		return ErrInvalidInput
	}

	unlock, err := e.lockProduct(productID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := e.requireOwner(ctx, productID, caller); err != nil {
		return err
	}

	cfg, err := e.Sale(ctx, productID)
	if err != nil {
		return err
	}

	amount := types.Zero(cfg.UnitPrice.Asset)
	if bal, err := e.store.GetEscrow(ctx, productID); err == nil {
		amount = bal.Amount
	} else if !errors.Is(err, ErrEscrowNotFound) {
		return err
	}

	if amount.IsPositive() {
		if err := e.payment.Transfer(ctx, cfg.Recipient, amount); err != nil {
			return fmt.Errorf("mintgate: pay out escrow: %w", err)
		}
	}

	e.plugins.EmitEscrowRedeemed(ctx, productID.String(), cfg.Recipient, amount)

	if err := e.store.ResetEscrow(ctx, productID); err != nil {
		return err
	}
	if err := e.store.DeleteSaleConfig(ctx, productID); err != nil {
		return err
	}

	e.plugins.EmitSaleRetired(ctx, productID.String())

	e.logger.Info("escrow redeemed",
		"product", productID.String(),
		"recipient", cfg.Recipient,
		"amount", amount.String(),
	)

	return nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// requireOwner resolves ownership fresh from the authority; results are
// never cached across operations.
func (e *Engine) requireOwner(ctx context.Context, productID id.ProductID, candidate string) error {
	ok, err := e.authority.IsOwner(ctx, productID, candidate)
	if err != nil {
		return fmt.Errorf("mintgate: resolve owner: %w", err)
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

// lockProduct acquires the product's operation lock without blocking.
// A failed acquisition means another operation on the product is in
// flight, either a concurrent caller or a collaborator re-entering the
// engine, and the operation is rejected with ErrReentrantCall.
func (e *Engine) lockProduct(productID id.ProductID) (func(), error) {
	v, _ := e.locks.LoadOrStore(productID.String(), &sync.Mutex{})
	mu := v.(*sync.Mutex)

	if !mu.TryLock() {
		return nil, ErrReentrantCall
	}
	return mu.Unlock, nil
}

// releaseQuota compensates a recorded quota after a failed purchase step.
func (e *Engine) releaseQuota(ctx context.Context, recorded bool, productID id.ProductID, buyer string, quantity int64) {
	if !recorded {
		return
	}
	if err := e.tracker.Release(ctx, productID, buyer, quantity); err != nil {
		e.logger.Error("quota release failed",
			"product", productID.String(),
			"buyer", buyer,
			"quantity", quantity,
			"error", err,
		)
	}
}
