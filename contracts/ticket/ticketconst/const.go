package ticketconst

const (
	// Symbol is the ticker symbol shared by all event ticket ledgers.
	Symbol = "TICKET"
	// Decimals is the precision of ticket units. Tickets are indivisible.
	Decimals = 0

	// ErrMarketplaceOnly is returned when a sale or fund operation is
	// invoked by anyone but the creating marketplace contract.
	ErrMarketplaceOnly = "caller is not the creating marketplace"

	// ErrInsufficientTickets is returned when the listing owner's balance
	// cannot cover a requested sale.
	ErrInsufficientTickets = "insufficient ticket balance of the listing owner"

	// ErrNoTickets is returned on redemption attempt by a holder with
	// zero balance.
	ErrNoTickets = "caller holds no tickets"

	// ErrInsufficientFund is returned when an escrow debit exceeds the
	// currently escrowed fund.
	ErrInsufficientFund = "insufficient escrowed fund"
)
