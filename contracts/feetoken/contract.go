package feetoken

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/ticketplace/ticketplace-contract/common"
	"github.com/ticketplace/ticketplace-contract/contracts/feetoken/feetokenconst"
)

const (
	adminKey  = 'a'
	supplyKey = 's'

	accPrefix        = 'b'
	authorizedPrefix = 'm'
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
	if len(admin) != interop.Hash160Len {
		panic("invalid account")
	}

	storage.Put(ctx, adminKey, admin)
	runtime.Log("fee token contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the admin.
func Update(script []byte, manifest []byte, data any) {
	common.CheckAdminWitness(Admin())

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("fee token contract updated")
}

// Symbol is a NEP-17 standard method that returns the fee token symbol.
func Symbol() string {
	return feetokenconst.Symbol
}

// Decimals is a NEP-17 standard method that returns the fee token precision.
func Decimals() int {
	return feetokenconst.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the amount of fee
// tokens minted so far.
func TotalSupply() int {
	return common.GetIntOrZero(storage.GetReadOnlyContext(), supplyKey)
}

// BalanceOf is a NEP-17 standard method that returns the fee token balance
// of the specified account.
func BalanceOf(account interop.Hash160) int {
	return balanceOf(storage.GetReadOnlyContext(), account)
}

// Transfer is a NEP-17 standard method that moves fee tokens between
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

// Mint credits fee tokens to a user account, increasing the total supply.
// It can be invoked only by the admin.
//
// It produces Transfer notification.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if len(to) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount <= 0 {
		panic("amount must be positive")
	}

	setBalance(ctx, to, common.Add(balanceOf(ctx, to), amount))
	storage.Put(ctx, supplyKey, common.Add(common.GetIntOrZero(ctx, supplyKey), amount))

	runtime.Notify("Transfer", interop.Hash160(nil), to, amount)
	runtime.Log("fee tokens minted")
}

// Authorize adds a marketplace contract to the allowlist of chargeFee
// callers. It can be invoked only by the admin.
func Authorize(marketplace interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	if len(marketplace) != interop.Hash160Len {
		panic("invalid account")
	}

	storage.Put(ctx, append([]byte{authorizedPrefix}, marketplace...), true)
	runtime.Log("marketplace authorized")
}

// Deauthorize removes a marketplace contract from the allowlist of chargeFee
// callers. It can be invoked only by the admin.
func Deauthorize(marketplace interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckAdminWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	storage.Delete(ctx, append([]byte{authorizedPrefix}, marketplace...))
	runtime.Log("marketplace deauthorized")
}

// IsAuthorized returns true if the given marketplace contract may charge
// fees.
func IsAuthorized(marketplace interop.Hash160) bool {
	return storage.Get(storage.GetReadOnlyContext(),
		append([]byte{authorizedPrefix}, marketplace...)) != nil
}

// ChargeFee debits a fee from the payer without their witness. It can be
// invoked only by an admin-authorized marketplace contract; each marketplace
// is expected to guard its own fee-charging entry point.
//
// It produces Transfer and FeeCharged notifications.
func ChargeFee(from, to interop.Hash160, amount int, details []byte) {
	ctx := storage.GetContext()

	caller := runtime.GetCallingScriptHash()
	if storage.Get(ctx, append([]byte{authorizedPrefix}, caller...)) == nil {
		panic(feetokenconst.ErrNotAuthorized)
	}

	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount <= 0 {
		panic("amount must be positive")
	}
	if balanceOf(ctx, from) < amount {
		panic(feetokenconst.ErrInsufficientBalance)
	}

	if !move(ctx, from, to, amount) {
		panic("can't charge fee")
	}

	runtime.Notify("FeeCharged", from, to, amount, details)
}

// Admin returns the fee token admin account.
func Admin() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), adminKey).(interop.Hash160)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
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
		runtime.Log("not enough assets")
		return false
	}

	setBalance(ctx, from, fromBalance-amount)
	setBalance(ctx, to, balanceOf(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	return true
}

func balanceOf(ctx storage.Context, account interop.Hash160) int {
	return common.GetIntOrZero(ctx, append([]byte{accPrefix}, account...))
}

func setBalance(ctx storage.Context, account interop.Hash160, amount int) {
	key := append([]byte{accPrefix}, account...)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}
