package marketplaceconst

const (
	// MaxWithdrawFeePercent bounds the withdrawal fee policy value.
	MaxWithdrawFeePercent = 100

	// ErrTerminated is returned by every entry point of a terminated
	// marketplace. The state is permanent.
	ErrTerminated = "marketplace is terminated"

	// ErrHalted is returned by normal mutating entry points while the
	// emergency circuit breaker is engaged.
	ErrHalted = "marketplace is halted"

	// ErrNotHalted is returned on termination attempt while the
	// marketplace is still active.
	ErrNotHalted = "marketplace must be halted first"

	// ErrUnknownTicket is returned when the referenced ticket ledger was
	// not created by this marketplace.
	ErrUnknownTicket = "unknown ticket contract"

	// ErrNoTemplate is returned by createListing before the ticket
	// contract template has been set.
	ErrNoTemplate = "ticket contract template is not set"

	// ErrSalesEnded is returned on purchase at or past the sales deadline.
	ErrSalesEnded = "ticket sales have ended"

	// ErrNotEnoughTickets is returned when the purchase quantity exceeds
	// the remaining sellable inventory.
	ErrNotEnoughTickets = "not enough tickets available"

	// ErrInsufficientPayment is returned when the attached payment does
	// not cover the purchase cost.
	ErrInsufficientPayment = "insufficient payment"

	ErrInvalidAccount   = "invalid account"
	ErrInvalidQuantity  = "quantity must be positive"
	ErrInvalidAmount    = "amount must be positive"
	ErrInvalidPrice     = "price must be positive"
	ErrInvalidSupply    = "total supply must be positive"
	ErrInvalidCap       = "available cap is out of range"
	ErrEndTimeNotFuture = "sales end time is not in the future"
	ErrEmptyMetadata    = "listing metadata must not be empty"
	ErrEmptyMemo        = "withdrawal memo must not be empty"

	// ErrInvalidFeePercent is returned on fee policy update with a
	// percent outside [0, MaxWithdrawFeePercent].
	ErrInvalidFeePercent = "withdrawal fee percent is out of range"

	// ErrCharityExceedsHeartbank is returned when a donation exceeds the
	// accumulated withdrawal fees.
	ErrCharityExceedsHeartbank = "donation exceeds heartbank balance"

	// ErrRefundExceedsBalance is returned when an excess-payment refund
	// exceeds the GAS held by the marketplace itself.
	ErrRefundExceedsBalance = "refund exceeds directly held value"

	// ErrPaymentFailed is returned when the buyer's GAS payment could not
	// be collected.
	ErrPaymentFailed = "payment transfer failed"

	// ErrReleaseFailed is returned when an outgoing GAS transfer was
	// rejected by the GAS contract.
	ErrReleaseFailed = "value release failed"
)
