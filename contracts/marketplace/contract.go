package marketplace

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/ticketplace/ticketplace-contract/common"
	"github.com/ticketplace/ticketplace-contract/contracts/marketplace/marketplaceconst"
)

// listingState is a (sufficient) part of
// github.com/ticketplace/ticketplace-contract/contracts/ticket.Listing
// to prevent cross-contract imports that may fail due to internal `_deploy` calls.
type listingState struct {
	Owner     interop.Hash160
	EndTime   int
	Available int
	Price     int
	// Other fields are irrelevant and therefore omitted.
}

const (
	adminKey          = 'a'
	feeTokenKey       = 'f'
	haltedKey         = 'h'
	terminatedKey     = 'z'
	heartbankKey      = 'b'
	charityKey        = 'c'
	listingFeeKey     = 'g'
	withdrawFeeKey    = 'w'
	listingsKey       = 'q'
	listingCountKey   = 'n'
	nefKey            = 'T'
	manifestPrefixKey = 'P'
	manifestSuffixKey = 'S'
	pendingPaymentKey = 'p'

	listedPrefix = 'x'
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.([]any)
	admin := args[0].(interop.Hash160)
	feeToken := args[1].(interop.Hash160)
	listingFee := args[2].(int)
	withdrawFeePercent := args[3].(int)

	if len(admin) != interop.Hash160Len || len(feeToken) != interop.Hash160Len {
		panic(marketplaceconst.ErrInvalidAccount)
	}
	if listingFee < 0 {
		panic(marketplaceconst.ErrInvalidAmount)
	}
	if withdrawFeePercent < 0 || withdrawFeePercent > marketplaceconst.MaxWithdrawFeePercent {
		panic(marketplaceconst.ErrInvalidFeePercent)
	}

	storage.Put(ctx, adminKey, admin)
	storage.Put(ctx, feeTokenKey, feeToken)
	storage.Put(ctx, listingFeeKey, listingFee)
	storage.Put(ctx, withdrawFeeKey, withdrawFeePercent)

	runtime.Log("marketplace contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the admin.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("marketplace contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// GAS pulled by buyTickets is recognized through the pending payment marker;
// anything else is kept and only reported for out-of-band reconciliation.
//
// It produces StrayValue notification for unexpected incoming value.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("marketplace accepts GAS only")
	}

	ctx := storage.GetContext()
	pending := storage.Get(ctx, pendingPaymentKey)
	if pending != nil && pending.(int) == amount {
		storage.Delete(ctx, pendingPaymentKey)
		return
	}

	runtime.Notify("StrayValue", from, amount)
}

// SetTicketTemplate stores the compiled ticket contract template used by
// createListing. The manifest is stored split around its name so that each
// deployment can receive a unique one (the contract hash is a function of
// the deployer, NEF checksum and manifest name). It can be invoked only by
// the admin.
func SetTicketTemplate(nefFile, manifestPrefix, manifestSuffix []byte) {
	ctx := storage.GetContext()
	requireActive(ctx)
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if len(nefFile) == 0 || len(manifestPrefix) == 0 || len(manifestSuffix) == 0 {
		panic(marketplaceconst.ErrNoTemplate)
	}

	storage.Put(ctx, nefKey, nefFile)
	storage.Put(ctx, manifestPrefixKey, manifestPrefix)
	storage.Put(ctx, manifestSuffixKey, manifestSuffix)
	runtime.Log("ticket contract template updated")
}

// CreateListing charges the listing fee in the fee token and deploys a fresh
// Event Ticket Ledger bound to the owner, with the full ticket supply
// credited to them and this marketplace as the only sale/withdraw authority.
// It can be invoked only by the listing owner.
//
// It produces ListingCreated notification and returns the address of the new
// ledger.
func CreateListing(owner interop.Hash160, endTime, available, price, supply int,
	name, description, location string) interop.Hash160 {
	ctx := storage.GetContext()
	requireActive(ctx)

	if len(owner) != interop.Hash160Len {
		panic(marketplaceconst.ErrInvalidAccount)
	}
	common.CheckOwnerWitness(owner)

	if endTime <= runtime.GetTime() {
		panic(marketplaceconst.ErrEndTimeNotFuture)
	}
	if supply <= 0 {
		panic(marketplaceconst.ErrInvalidSupply)
	}
	if price <= 0 {
		panic(marketplaceconst.ErrInvalidPrice)
	}
	if available <= 0 || available > supply {
		panic(marketplaceconst.ErrInvalidCap)
	}
	if len(name) == 0 || len(description) == 0 || len(location) == 0 {
		panic(marketplaceconst.ErrEmptyMetadata)
	}

	nefFile := storage.Get(ctx, nefKey)
	if nefFile == nil {
		panic(marketplaceconst.ErrNoTemplate)
	}

	id := common.GetIntOrZero(ctx, listingCountKey)
	deployData := []any{owner, runtime.GetExecutingScriptHash(),
		endTime, available, price, supply, name, description, location}
	deployed := management.DeployWithData(nefFile.([]byte), ticketManifest(ctx, id), deployData)
	ticket := deployed.Hash

	storage.Put(ctx, listingCountKey, id+1)
	storage.Put(ctx, append([]byte{listedPrefix}, ticket...), id)
	common.AppendToList(ctx, listingsKey, ticket)

	fee := common.GetIntOrZero(ctx, listingFeeKey)
	if fee > 0 {
		feeToken := storage.Get(ctx, feeTokenKey).(interop.Hash160)
		admin := storage.Get(ctx, adminKey).(interop.Hash160)
		contract.Call(feeToken, "chargeFee", contract.All,
			owner, admin, fee, common.ListingFeeDetails(ticket))
	}

	runtime.Notify("ListingCreated", ticket, owner, endTime, available, price, supply, name)
	return ticket
}

// BuyTickets purchases tickets from the given listing. The payment is the
// amount of GAS pulled from the buyer; it must cover quantity×price, any
// excess is retained by the marketplace and only reported via ExcessPayment
// for the admin to reconcile out-of-band. It can be invoked only by the
// buyer.
//
// It produces TicketsSold and, on overpayment, ExcessPayment notifications.
func BuyTickets(buyer, ticket interop.Hash160, quantity, payment int) {
	ctx := storage.GetContext()
	requireActive(ctx)

	if len(buyer) != interop.Hash160Len {
		panic(marketplaceconst.ErrInvalidAccount)
	}
	common.CheckOwnerWitness(buyer)
	requireListed(ctx, ticket)

	if quantity <= 0 {
		panic(marketplaceconst.ErrInvalidQuantity)
	}

	state := contract.Call(ticket, "getListing", contract.ReadOnly).(listingState)
	if runtime.GetTime() >= state.EndTime {
		panic(marketplaceconst.ErrSalesEnded)
	}
	if quantity > state.Available {
		panic(marketplaceconst.ErrNotEnoughTickets)
	}

	cost := common.Mul(quantity, state.Price)
	if payment < cost {
		panic(marketplaceconst.ErrInsufficientPayment)
	}

	contract.Call(ticket, "sellTickets", contract.All, buyer, quantity)

	runtime.Notify("TicketsSold", ticket, buyer, quantity, cost)
	if payment > cost {
		runtime.Notify("ExcessPayment", ticket, buyer, payment-cost)
	}

	storage.Put(ctx, pendingPaymentKey, payment)
	if !gas.Transfer(buyer, runtime.GetExecutingScriptHash(), payment, common.SaleDetails(ticket)) {
		panic(marketplaceconst.ErrPaymentFailed)
	}
}

// WithdrawFunds releases escrowed sale proceeds of the given listing. The
// withdrawal fee is computed once, accrued to the heartbank and the charity
// lifetime total, and the escrowed fund is debited by amount+fee in the same
// call, so a failed debit rolls the fee accrual back too. The net amount is
// transferred to the recipient as the final step. It can be invoked only by
// the listing owner.
//
// It produces FundsWithdrawn notification.
func WithdrawFunds(ticket, recipient interop.Hash160, amount int, memo []byte) {
	ctx := storage.GetContext()
	requireActive(ctx)
	requireListed(ctx, ticket)

	owner := contract.Call(ticket, "listingOwner", contract.ReadOnly).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	if len(recipient) != interop.Hash160Len {
		panic(marketplaceconst.ErrInvalidAccount)
	}
	if amount <= 0 {
		panic(marketplaceconst.ErrInvalidAmount)
	}
	if len(memo) == 0 {
		panic(marketplaceconst.ErrEmptyMemo)
	}

	pct := common.GetIntOrZero(ctx, withdrawFeeKey)
	fee := common.Div(common.Mul(amount, pct), 100)

	storage.Put(ctx, heartbankKey, common.Add(common.GetIntOrZero(ctx, heartbankKey), fee))
	storage.Put(ctx, charityKey, common.Add(common.GetIntOrZero(ctx, charityKey), fee))

	contract.Call(ticket, "drainFund", contract.All, common.Add(amount, fee))

	runtime.Notify("FundsWithdrawn", ticket, recipient, amount, fee, memo)

	if !gas.Transfer(runtime.GetExecutingScriptHash(), recipient, amount, common.WithdrawDetails(memo)) {
		panic(marketplaceconst.ErrReleaseFailed)
	}
}

// SetFeePolicy overwrites the listing fee and the withdrawal fee percent.
// It can be invoked only by the admin.
//
// It produces FeePolicyUpdated notification.
func SetFeePolicy(listingFee, withdrawFeePercent int) {
	ctx := storage.GetContext()
	requireActive(ctx)
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if listingFee < 0 {
		panic(marketplaceconst.ErrInvalidAmount)
	}
	if withdrawFeePercent < 0 || withdrawFeePercent > marketplaceconst.MaxWithdrawFeePercent {
		panic(marketplaceconst.ErrInvalidFeePercent)
	}

	storage.Put(ctx, listingFeeKey, listingFee)
	storage.Put(ctx, withdrawFeeKey, withdrawFeePercent)
	runtime.Notify("FeePolicyUpdated", listingFee, withdrawFeePercent)
}

// DonateToCharity releases accumulated withdrawal fees from the heartbank.
// It can be invoked only by the admin.
//
// It produces CharityDonated notification.
func DonateToCharity(recipient interop.Hash160, amount int) {
	ctx := storage.GetContext()
	requireActive(ctx)
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if len(recipient) != interop.Hash160Len {
		panic(marketplaceconst.ErrInvalidAccount)
	}
	if amount <= 0 {
		panic(marketplaceconst.ErrInvalidAmount)
	}

	heartbank := common.GetIntOrZero(ctx, heartbankKey)
	if amount > heartbank {
		panic(marketplaceconst.ErrCharityExceedsHeartbank)
	}
	storage.Put(ctx, heartbankKey, common.Sub(heartbank, amount))

	runtime.Notify("CharityDonated", recipient, amount)

	if !gas.Transfer(runtime.GetExecutingScriptHash(), recipient, amount, nil) {
		panic(marketplaceconst.ErrReleaseFailed)
	}
}

// RefundExcess returns value held directly by the marketplace (stray
// transfers and retained overpayments) to the given recipient. It can be
// invoked only by the admin.
//
// It produces ExcessReturned notification.
func RefundExcess(recipient interop.Hash160, amount int) {
	ctx := storage.GetContext()
	requireActive(ctx)
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if len(recipient) != interop.Hash160Len {
		panic(marketplaceconst.ErrInvalidAccount)
	}
	if amount <= 0 {
		panic(marketplaceconst.ErrInvalidAmount)
	}

	self := runtime.GetExecutingScriptHash()
	if amount > gas.BalanceOf(self) {
		panic(marketplaceconst.ErrRefundExceedsBalance)
	}

	runtime.Notify("ExcessReturned", recipient, amount)

	if !gas.Transfer(self, recipient, amount, nil) {
		panic(marketplaceconst.ErrReleaseFailed)
	}
}

// ToggleEmergency flips the emergency circuit breaker. It works in both
// directions regardless of the current state and can be invoked only by the
// admin.
func ToggleEmergency() {
	ctx := storage.GetContext()
	requireAlive(ctx)
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if storage.Get(ctx, haltedKey) == nil {
		storage.Put(ctx, haltedKey, true)
		runtime.Log("emergency halt engaged")
	} else {
		storage.Delete(ctx, haltedKey)
		runtime.Log("emergency halt lifted")
	}
}

// Terminate irreversibly shuts the marketplace down, transferring any
// residual directly-held GAS to the admin. It requires the emergency halt to
// be engaged and can be invoked only by the admin. Afterwards every entry
// point permanently fails; ticket ledgers are left orphaned and their
// sale/withdraw authority checks can never pass again.
func Terminate() {
	ctx := storage.GetContext()
	requireAlive(ctx)
	if storage.Get(ctx, haltedKey) == nil {
		panic(marketplaceconst.ErrNotHalted)
	}

	admin := storage.Get(ctx, adminKey).(interop.Hash160)
	common.CheckAdminWitness(admin)

	storage.Put(ctx, terminatedKey, true)
	runtime.Log("marketplace terminated")

	self := runtime.GetExecutingScriptHash()
	residual := gas.BalanceOf(self)
	if residual > 0 {
		if !gas.Transfer(self, admin, residual, nil) {
			panic(marketplaceconst.ErrReleaseFailed)
		}
	}
}

// Admin returns the marketplace admin account.
func Admin() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), adminKey).(interop.Hash160)
}

// FeeToken returns the address of the fee token contract.
func FeeToken() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), feeTokenKey).(interop.Hash160)
}

// Heartbank returns the balance of collected withdrawal fees still available
// for charitable disbursement.
func Heartbank() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), heartbankKey)
}

// CharityTotal returns the lifetime total of collected withdrawal fees. It
// never decreases and always bounds the heartbank balance from above.
func CharityTotal() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), charityKey)
}

// ListingFee returns the current listing fee in fee token units.
func ListingFee() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), listingFeeKey)
}

// WithdrawFeePercent returns the current withdrawal fee percent.
func WithdrawFeePercent() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), withdrawFeeKey)
}

// IsHalted returns true if the emergency circuit breaker is engaged.
func IsHalted() bool {
	return storage.Get(storage.GetReadOnlyContext(), haltedKey) != nil
}

// IsTerminated returns true if the marketplace has been irreversibly
// terminated.
func IsTerminated() bool {
	return storage.Get(storage.GetReadOnlyContext(), terminatedKey) != nil
}

// Listings returns addresses of all ticket ledgers ever created by this
// marketplace, in creation order.
func Listings() [][]byte {
	return common.GetList(storage.GetReadOnlyContext(), listingsKey)
}

// ListingsIterator is like [Listings] but avoids materializing the whole
// sequence. Iteration is through ledger addresses in storage key order.
func ListingsIterator() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(),
		[]byte{listedPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// ListingsCount returns the number of ticket ledgers ever created by this
// marketplace.
func ListingsCount() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), listingCountKey)
}

// IsListed returns true if the given address is a ticket ledger created by
// this marketplace.
func IsListed(ticket interop.Hash160) bool {
	return storage.Get(storage.GetReadOnlyContext(),
		append([]byte{listedPrefix}, ticket...)) != nil
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// ticketManifest builds the manifest for the id-th ticket ledger deployment
// by splicing a unique contract name into the stored template.
func ticketManifest(ctx storage.Context, id int) []byte {
	prefix := storage.Get(ctx, manifestPrefixKey).([]byte)
	suffix := storage.Get(ctx, manifestSuffixKey).([]byte)

	name := "\"Event Ticket " + std.Itoa(id, 10) + "\""
	manifest := append(prefix, []byte(name)...)
	return append(manifest, suffix...)
}

// Guards run in a fixed order for every entry point: terminal state, then
// circuit breaker, then witness, then argument validation.

func requireAlive(ctx storage.Context) {
	if storage.Get(ctx, terminatedKey) != nil {
		panic(marketplaceconst.ErrTerminated)
	}
}

func requireActive(ctx storage.Context) {
	requireAlive(ctx)
	if storage.Get(ctx, haltedKey) != nil {
		panic(marketplaceconst.ErrHalted)
	}
}

func requireListed(ctx storage.Context, ticket interop.Hash160) {
	if len(ticket) != interop.Hash160Len ||
		storage.Get(ctx, append([]byte{listedPrefix}, ticket...)) == nil {
		panic(marketplaceconst.ErrUnknownTicket)
	}
}
