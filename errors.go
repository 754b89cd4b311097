package mintgate

import (
	"errors"

	"github.com/xraph/mintgate/quota"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrInvalidInput = errors.New("mintgate: invalid input")

	// Temporal gating
	ErrSaleEnded      = errors.New("mintgate: sale ended")
	ErrSaleNotStarted = errors.New("mintgate: sale not started")

	// Payment pre-authorization too low for the requested quantity
	ErrInsufficientAuthorization = errors.New("mintgate: insufficient payment authorization")

	// Per-buyer limit; alias of the quota package sentinel so callers can
	// match either one with errors.Is.
	ErrQuotaExceeded = quota.ErrExceeded

	// Caller is not the recognized product owner
	ErrUnauthorized = errors.New("mintgate: unauthorized")

	// Operation entered while another operation holds the product; covers
	// both a collaborator calling back into the engine mid-operation and
	// concurrent callers, who should retry.
	ErrReentrantCall = errors.New("mintgate: reentrant or concurrent call on product")

	// Request validation
	ErrInvalidQuantity = errors.New("mintgate: quantity must be positive")

	// Store errors
	ErrSaleNotFound   = errors.New("mintgate: sale config not found")
	ErrEscrowNotFound = errors.New("mintgate: escrow balance not found")
	ErrStoreClosed    = errors.New("mintgate: store is closed")
)
