package feetokenconst

const (
	// Symbol is the fee token ticker symbol.
	Symbol = "TFEE"
	// Decimals is the fee token precision.
	Decimals = 8

	// ErrNotAuthorized is returned when chargeFee is invoked by anything
	// but an admin-authorized marketplace contract.
	ErrNotAuthorized = "caller is not an authorized marketplace"

	// ErrInsufficientBalance is returned when a fee charge exceeds the
	// payer's balance.
	ErrInsufficientBalance = "insufficient fee token balance"
)
