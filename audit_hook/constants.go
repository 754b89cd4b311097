package audithook

// Action constants for audit events.
const (
	// Sale actions
	ActionSaleSet     = "sale.set"
	ActionSaleRetired = "sale.retired"

	// Purchase actions
	ActionPurchaseComment = "purchase.comment"
	ActionQuotaExceeded   = "quota.exceeded"

	// Escrow actions
	ActionEscrowDeposit  = "escrow.deposit"
	ActionEscrowRedeemed = "escrow.redeemed"
)

// Resource constants for audit events.
const (
	ResourceSale     = "sale"
	ResourcePurchase = "purchase"
	ResourceEscrow   = "escrow"
	ResourceQuota    = "quota"
)

// Category constants for audit events.
const (
	CategorySale    = "sale"
	CategoryAccess  = "access"
	CategoryPayment = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
