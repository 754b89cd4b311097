package extension

import (
	mintgate "github.com/xraph/mintgate"
	"github.com/xraph/mintgate/plugin"
	"github.com/xraph/mintgate/store"
)

// Option configures the Mintgate Forge extension.
type Option func(*Extension)

// WithStore sets the store for the purchase engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithProductLedger sets the downstream unit ledger the engine issues against.
func WithProductLedger(l mintgate.ProductLedger) Option {
	return func(e *Extension) {
		e.ledger = l
	}
}

// WithPaymentAsset sets the payment asset used to collect purchase funds.
func WithPaymentAsset(p mintgate.PaymentAsset) Option {
	return func(e *Extension) {
		e.payment = p
	}
}

// WithEngineOption passes a mintgate.Option through to the underlying engine.
func WithEngineOption(opt mintgate.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers a mintgate plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, mintgate.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithAccount sets the custodial account name for purchase payments.
func WithAccount(account string) Option {
	return func(e *Extension) { e.config.Account = account }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
