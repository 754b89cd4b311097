// Package extension provides the Forge extension adapter for Mintgate.
//
// It implements the forge.Extension interface to integrate Mintgate
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.mintgate" or "mintgate" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	mintgate "github.com/xraph/mintgate"
	"github.com/xraph/mintgate/store"
	"github.com/xraph/mintgate/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "mintgate"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Escrow-gated purchase authorization engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Mintgate as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *mintgate.Engine
	store      store.Store
	ledger     mintgate.ProductLedger
	payment    mintgate.PaymentAsset
	engineOpts []mintgate.Option
}

// New creates a new Mintgate Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Mintgate engine.
// This is nil until Register is called.
func (e *Extension) Engine() *mintgate.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the purchase engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.ledger == nil {
		return errors.New("mintgate: product ledger is required; use extension.WithProductLedger")
	}
	if e.payment == nil {
		return errors.New("mintgate: payment asset is required; use extension.WithPaymentAsset")
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build engine options from resolved config.
	opts := e.buildEngineOpts()

	e.engine = mintgate.New(e.store, e.ledger, e.payment, opts...)

	return vessel.Provide(fapp.Container(), func() (*mintgate.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("mintgate: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("mintgate: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs mintgate.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []mintgate.Option {
	opts := make([]mintgate.Option, 0, len(e.engineOpts)+1)

	if e.config.Account != "" {
		opts = append(opts, mintgate.WithAccount(e.config.Account))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("mintgate: configuration is required but not found in config files; " +
				"ensure 'extensions.mintgate' or 'mintgate' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("mintgate: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("account", e.config.Account),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.mintgate" first (namespaced pattern).
	if cm.IsSet("extensions.mintgate") {
		if err := cm.Bind("extensions.mintgate", &cfg); err == nil {
			e.Logger().Debug("mintgate: loaded config from file",
				forge.F("key", "extensions.mintgate"),
			)
			return cfg, true
		}
		e.Logger().Warn("mintgate: failed to bind extensions.mintgate config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "mintgate" key.
	if cm.IsSet("mintgate") {
		if err := cm.Bind("mintgate", &cfg); err == nil {
			e.Logger().Debug("mintgate: loaded config from file",
				forge.F("key", "mintgate"),
			)
			return cfg, true
		}
		e.Logger().Warn("mintgate: failed to bind mintgate config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Account == "" {
		cfg.Account = defaults.Account
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Account == "" && programmaticConfig.Account != "" {
		yamlConfig.Account = programmaticConfig.Account
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
