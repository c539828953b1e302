package ticket

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/ticketplace/ticketplace-contract/common"
	"github.com/ticketplace/ticketplace-contract/contracts/ticket/ticketconst"
)

type (
	// Listing is the full metadata and inventory state of the event this
	// ledger was created for.
	Listing struct {
		// Owner is the listing owner fixed at creation.
		Owner interop.Hash160
		// EndTime is the sales deadline in milliseconds.
		EndTime int
		// Available is the remaining sellable inventory.
		Available int
		// Price is the unit price in GAS fractions.
		Price int
		// Supply is the total issued ticket supply.
		Supply int
		// Name of the event.
		Name string
		// Description of the event.
		Description string
		// Location of the event.
		Location string
	}
)

const (
	ownerKey       = 'o'
	marketplaceKey = 'm'
	endTimeKey     = 'e'
	availableKey   = 'c'
	priceKey       = 'p'
	supplyKey      = 's'
	salesKey       = 'v'
	fundKey        = 'f'
	nameKey        = 'n'
	descriptionKey = 'd'
	locationKey    = 'l'
	redeemedKey    = 'r'

	accPrefix       = 'a'
	allowancePrefix = 'w'
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
	owner := args[0].(interop.Hash160)
	marketplace := args[1].(interop.Hash160)
	endTime := args[2].(int)
	available := args[3].(int)
	price := args[4].(int)
	supply := args[5].(int)
	name := args[6].(string)
	description := args[7].(string)
	location := args[8].(string)

	if len(owner) != interop.Hash160Len || len(marketplace) != interop.Hash160Len {
		panic("invalid account")
	}
	if endTime <= runtime.GetTime() {
		panic("sales end time is not in the future")
	}
	if supply <= 0 {
		panic("total supply must be positive")
	}
	if price <= 0 {
		panic("price must be positive")
	}
	if available <= 0 || available > supply {
		panic("available cap is out of range")
	}
	if len(name) == 0 || len(description) == 0 || len(location) == 0 {
		panic("listing metadata must not be empty")
	}

	storage.Put(ctx, ownerKey, owner)
	storage.Put(ctx, marketplaceKey, marketplace)
	storage.Put(ctx, endTimeKey, endTime)
	storage.Put(ctx, availableKey, available)
	storage.Put(ctx, priceKey, price)
	storage.Put(ctx, supplyKey, supply)
	storage.Put(ctx, nameKey, name)
	storage.Put(ctx, descriptionKey, description)
	storage.Put(ctx, locationKey, location)

	setBalance(ctx, owner, supply)
	runtime.Notify("Transfer", interop.Hash160(nil), owner, supply)
	runtime.Log("ticket ledger initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the admin of the creating marketplace.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	marketplace := storage.Get(ctx, marketplaceKey).(interop.Hash160)
	admin := contract.Call(marketplace, "admin", contract.ReadOnly).(interop.Hash160)
	common.CheckAdminWitness(admin)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("ticket ledger updated")
}

// Symbol is a NEP-17 standard method that returns the ticket ticker symbol.
func Symbol() string {
	return ticketconst.Symbol
}

// Decimals is a NEP-17 standard method that returns precision of ticket
// units. Tickets are indivisible, so it is always zero.
func Decimals() int {
	return ticketconst.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the total issued
// ticket supply. It never changes after creation.
func TotalSupply() int {
	return storage.Get(storage.GetReadOnlyContext(), supplyKey).(int)
}

// BalanceOf is a NEP-17 standard method that returns the ticket balance of
// the specified account.
func BalanceOf(holder interop.Hash160) int {
	return balanceOf(storage.GetReadOnlyContext(), holder)
}

// Transfer is a NEP-17 standard method that moves ticket units between
// accounts. It can be invoked only by the `from` account owner.
//
// It produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	if amount < 0 {
		panic("negative amount")
	}
	if len(to) != interop.Hash160Len || !isUsableAddress(from) {
		runtime.Log("bad script hashes")
		return false
	}

	return move(ctx, from, to, amount)
}

// Allowance returns the amount of ticket units the spender is still allowed
// to move out of the owner's balance via [TransferFrom].
func Allowance(owner, spender interop.Hash160) int {
	return allowance(storage.GetReadOnlyContext(), owner, spender)
}

// Approve sets the spender's allowance over the owner's ticket units to the
// given value. It can be invoked only by the owner.
//
// It produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(owner)
	if len(spender) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount < 0 {
		panic("negative amount")
	}

	setAllowance(ctx, owner, spender, amount)
	runtime.Notify("Approval", owner, spender, amount)
	return true
}

// IncreaseApproval raises the spender's allowance by the given amount. It can
// be invoked only by the owner.
//
// It produces Approval notification.
func IncreaseApproval(owner, spender interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(owner)
	if amount < 0 {
		panic("negative amount")
	}

	updated := common.Add(allowance(ctx, owner, spender), amount)
	setAllowance(ctx, owner, spender, updated)
	runtime.Notify("Approval", owner, spender, updated)
	return true
}

// DecreaseApproval lowers the spender's allowance by the given amount,
// flooring at zero. It can be invoked only by the owner.
//
// It produces Approval notification.
func DecreaseApproval(owner, spender interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(owner)
	if amount < 0 {
		panic("negative amount")
	}

	updated := allowance(ctx, owner, spender)
	if amount > updated {
		updated = 0
	} else {
		updated -= amount
	}
	setAllowance(ctx, owner, spender, updated)
	runtime.Notify("Approval", owner, spender, updated)
	return true
}

// TransferFrom moves ticket units from one account to another using the
// spender's allowance. It can be invoked only by the spender.
//
// It produces Transfer notification.
func TransferFrom(spender, from, to interop.Hash160, amount int) bool {
	ctx := storage.GetContext()
	common.CheckWitness(spender)
	if amount < 0 {
		panic("negative amount")
	}
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("invalid account")
	}

	remaining := allowance(ctx, from, spender)
	if remaining < amount {
		runtime.Log("allowance exceeded")
		return false
	}

	if !move(ctx, from, to, amount) {
		return false
	}

	setAllowance(ctx, from, spender, remaining-amount)
	return true
}

// UpdateListing edits listing metadata. It can be invoked only by the listing
// owner. Unlike every other mutating method of the marketplace suite, each
// field is validated independently and silently skipped when invalid; the
// call itself never aborts on a bad field.
//
// It produces ListingUpdated notification carrying the resulting state.
func UpdateListing(endTime, available, price int, name, description, location string) {
	ctx := storage.GetContext()
	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	if endTime > runtime.GetTime() {
		storage.Put(ctx, endTimeKey, endTime)
	} else {
		runtime.Log("listing update: end time not in the future, skipped")
	}

	supply := storage.Get(ctx, supplyKey).(int)
	if available >= 0 && available <= supply {
		storage.Put(ctx, availableKey, available)
	} else {
		runtime.Log("listing update: available cap out of range, skipped")
	}

	if price > 0 {
		storage.Put(ctx, priceKey, price)
	} else {
		runtime.Log("listing update: price not positive, skipped")
	}

	if len(name) > 0 {
		storage.Put(ctx, nameKey, name)
	} else {
		runtime.Log("listing update: empty name, skipped")
	}

	if len(description) > 0 {
		storage.Put(ctx, descriptionKey, description)
	} else {
		runtime.Log("listing update: empty description, skipped")
	}

	if len(location) > 0 {
		storage.Put(ctx, locationKey, location)
	} else {
		runtime.Log("listing update: empty location, skipped")
	}

	runtime.Notify("ListingUpdated",
		storage.Get(ctx, endTimeKey).(int),
		storage.Get(ctx, availableKey).(int),
		storage.Get(ctx, priceKey).(int),
		storage.Get(ctx, nameKey).(string))
}

// RedeemTicket spends one ticket unit of the holder, moving it to the
// creating marketplace's sink slot and recording the holder in the
// append-only redemption log. It can be invoked only by the holder.
//
// It produces TicketRedeemed and Transfer notifications.
func RedeemTicket(holder interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(holder)

	if balanceOf(ctx, holder) == 0 {
		panic(ticketconst.ErrNoTickets)
	}

	sink := storage.Get(ctx, marketplaceKey).(interop.Hash160)
	if !move(ctx, holder, sink, 1) {
		panic("can't spend ticket")
	}

	common.AppendToList(ctx, redeemedKey, holder)
	runtime.Notify("TicketRedeemed", holder)
}

// SellTickets moves the given quantity of ticket units from the listing
// owner to the buyer, decrements the available cap and accrues the sale
// proceeds into the escrowed fund. It can be invoked only by the creating
// marketplace.
//
// It produces Transfer notification.
func SellTickets(buyer interop.Hash160, quantity int) {
	ctx := storage.GetContext()
	checkMarketplaceCaller(ctx)

	if quantity <= 0 {
		panic("quantity must be positive")
	}
	if len(buyer) != interop.Hash160Len {
		panic("invalid account")
	}

	owner := storage.Get(ctx, ownerKey).(interop.Hash160)
	if balanceOf(ctx, owner) < quantity {
		panic(ticketconst.ErrInsufficientTickets)
	}

	available := storage.Get(ctx, availableKey).(int)
	storage.Put(ctx, availableKey, common.Sub(available, quantity))

	proceeds := common.Mul(quantity, storage.Get(ctx, priceKey).(int))
	storage.Put(ctx, salesKey, common.Add(common.GetIntOrZero(ctx, salesKey), proceeds))
	storage.Put(ctx, fundKey, common.Add(common.GetIntOrZero(ctx, fundKey), proceeds))

	if !move(ctx, owner, buyer, quantity) {
		panic("can't transfer tickets")
	}
}

// DrainFund debits the escrowed fund. This is pure bookkeeping: the actual
// value release is performed by the marketplace within the same call. It can
// be invoked only by the creating marketplace.
func DrainFund(amount int) {
	ctx := storage.GetContext()
	checkMarketplaceCaller(ctx)

	if amount <= 0 {
		panic("amount must be positive")
	}

	fund := common.GetIntOrZero(ctx, fundKey)
	if fund < amount {
		panic(ticketconst.ErrInsufficientFund)
	}

	storage.Put(ctx, fundKey, common.Sub(fund, amount))
	runtime.Log("escrowed fund drained")
}

// ListingOwner returns the listing owner fixed at creation.
func ListingOwner() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), ownerKey).(interop.Hash160)
}

// Marketplace returns the address of the marketplace contract that created
// this ledger.
func Marketplace() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), marketplaceKey).(interop.Hash160)
}

// SalesEndTime returns the sales deadline in milliseconds.
func SalesEndTime() int {
	return storage.Get(storage.GetReadOnlyContext(), endTimeKey).(int)
}

// AvailableTickets returns the remaining sellable inventory.
func AvailableTickets() int {
	return storage.Get(storage.GetReadOnlyContext(), availableKey).(int)
}

// Price returns the current unit price.
func Price() int {
	return storage.Get(storage.GetReadOnlyContext(), priceKey).(int)
}

// EventName returns the event name.
func EventName() string {
	return storage.Get(storage.GetReadOnlyContext(), nameKey).(string)
}

// EventDescription returns the event description.
func EventDescription() string {
	return storage.Get(storage.GetReadOnlyContext(), descriptionKey).(string)
}

// EventLocation returns the event location.
func EventLocation() string {
	return storage.Get(storage.GetReadOnlyContext(), locationKey).(string)
}

// GetListing returns the full listing state.
func GetListing() Listing {
	ctx := storage.GetReadOnlyContext()
	return Listing{
		Owner:       storage.Get(ctx, ownerKey).(interop.Hash160),
		EndTime:     storage.Get(ctx, endTimeKey).(int),
		Available:   storage.Get(ctx, availableKey).(int),
		Price:       storage.Get(ctx, priceKey).(int),
		Supply:      storage.Get(ctx, supplyKey).(int),
		Name:        storage.Get(ctx, nameKey).(string),
		Description: storage.Get(ctx, descriptionKey).(string),
		Location:    storage.Get(ctx, locationKey).(string),
	}
}

// CumulativeSales returns the lifetime total of sale proceeds.
func CumulativeSales() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), salesKey)
}

// EscrowedFund returns the undrained portion of the sale proceeds.
func EscrowedFund() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), fundKey)
}

// RedeemedHolders returns the append-only log of accounts that redeemed a
// ticket, in redemption order.
func RedeemedHolders() [][]byte {
	return common.GetList(storage.GetReadOnlyContext(), redeemedKey)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkMarketplaceCaller(ctx storage.Context) {
	marketplace := storage.Get(ctx, marketplaceKey).(interop.Hash160)
	if !runtime.GetCallingScriptHash().Equals(marketplace) {
		panic(ticketconst.ErrMarketplaceOnly)
	}
}

// isUsableAddress checks if the sender is either a correct signer of the
// transaction or a calling smart contract.
func isUsableAddress(addr interop.Hash160) bool {
	if len(addr) == interop.Hash160Len {
		if runtime.CheckWitness(addr) {
			return true
		}

		callingScriptHash := runtime.GetCallingScriptHash()
		if callingScriptHash.Equals(addr) {
			return true
		}
	}

	return false
}

func move(ctx storage.Context, from, to interop.Hash160, amount int) bool {
	fromBalance := balanceOf(ctx, from)
	if fromBalance < amount {
		runtime.Log("not enough tickets")
		return false
	}

	setBalance(ctx, from, fromBalance-amount)
	setBalance(ctx, to, balanceOf(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	return true
}

func balanceOf(ctx storage.Context, holder interop.Hash160) int {
	return common.GetIntOrZero(ctx, append([]byte{accPrefix}, holder...))
}

func setBalance(ctx storage.Context, holder interop.Hash160, amount int) {
	key := append([]byte{accPrefix}, holder...)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}

func allowance(ctx storage.Context, owner, spender interop.Hash160) int {
	return common.GetIntOrZero(ctx, allowanceKey(owner, spender))
}

func setAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	key := append([]byte{allowancePrefix}, owner...)
	return append(key, spender...)
}
