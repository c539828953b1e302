// Package ticket contains RPC wrappers for Ticketplace Event Ticket contract.
package ticket

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep17"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// TicketListing is a contract-specific ticket.Listing type used by its methods.
type TicketListing struct {
	Owner       util.Uint160
	EndTime     *big.Int
	Available   *big.Int
	Price       *big.Int
	Supply      *big.Int
	Name        string
	Description string
	Location    string
}

// ApprovalEvent represents "Approval" event emitted by the contract.
type ApprovalEvent struct {
	Owner   util.Uint160
	Spender util.Uint160
	Amount  *big.Int
}

// ListingUpdatedEvent represents "ListingUpdated" event emitted by the contract.
type ListingUpdatedEvent struct {
	EndTime   *big.Int
	Available *big.Int
	Price     *big.Int
	Name      string
}

// TicketRedeemedEvent represents "TicketRedeemed" event emitted by the contract.
type TicketRedeemedEvent struct {
	Holder util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	nep17.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep17.Actor

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	nep17.TokenReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	nep17.TokenWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*nep17.NewReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	var nep17t = nep17.New(actor, hash)
	return &Contract{ContractReader{nep17t.TokenReader, actor, hash}, nep17t.TokenWriter, actor, hash}
}

// Allowance invokes `allowance` method of contract.
func (c *ContractReader) Allowance(owner util.Uint160, spender util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "allowance", owner, spender))
}

// AvailableTickets invokes `availableTickets` method of contract.
func (c *ContractReader) AvailableTickets() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "availableTickets"))
}

// CumulativeSales invokes `cumulativeSales` method of contract.
func (c *ContractReader) CumulativeSales() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "cumulativeSales"))
}

// EscrowedFund invokes `escrowedFund` method of contract.
func (c *ContractReader) EscrowedFund() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "escrowedFund"))
}

// EventDescription invokes `eventDescription` method of contract.
func (c *ContractReader) EventDescription() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "eventDescription"))
}

// EventLocation invokes `eventLocation` method of contract.
func (c *ContractReader) EventLocation() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "eventLocation"))
}

// EventName invokes `eventName` method of contract.
func (c *ContractReader) EventName() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "eventName"))
}

// GetListing invokes `getListing` method of contract.
func (c *ContractReader) GetListing() (*TicketListing, error) {
	return itemToTicketListing(unwrap.Item(c.invoker.Call(c.hash, "getListing")))
}

// ListingOwner invokes `listingOwner` method of contract.
func (c *ContractReader) ListingOwner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "listingOwner"))
}

// Marketplace invokes `marketplace` method of contract.
func (c *ContractReader) Marketplace() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "marketplace"))
}

// Price invokes `price` method of contract.
func (c *ContractReader) Price() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "price"))
}

// RedeemedHolders invokes `redeemedHolders` method of contract.
func (c *ContractReader) RedeemedHolders() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "redeemedHolders"))
}

// SalesEndTime invokes `salesEndTime` method of contract.
func (c *ContractReader) SalesEndTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "salesEndTime"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Approve creates a transaction invoking `approve` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Approve(owner util.Uint160, spender util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "approve", owner, spender, amount)
}

// ApproveTransaction creates a transaction invoking `approve` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ApproveTransaction(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "approve", owner, spender, amount)
}

// ApproveUnsigned creates a transaction invoking `approve` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ApproveUnsigned(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "approve", nil, owner, spender, amount)
}

// DecreaseApproval creates a transaction invoking `decreaseApproval` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DecreaseApproval(owner util.Uint160, spender util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "decreaseApproval", owner, spender, amount)
}

// DecreaseApprovalTransaction creates a transaction invoking `decreaseApproval` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DecreaseApprovalTransaction(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "decreaseApproval", owner, spender, amount)
}

// DecreaseApprovalUnsigned creates a transaction invoking `decreaseApproval` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DecreaseApprovalUnsigned(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "decreaseApproval", nil, owner, spender, amount)
}

// IncreaseApproval creates a transaction invoking `increaseApproval` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) IncreaseApproval(owner util.Uint160, spender util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "increaseApproval", owner, spender, amount)
}

// IncreaseApprovalTransaction creates a transaction invoking `increaseApproval` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) IncreaseApprovalTransaction(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "increaseApproval", owner, spender, amount)
}

// IncreaseApprovalUnsigned creates a transaction invoking `increaseApproval` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) IncreaseApprovalUnsigned(owner util.Uint160, spender util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "increaseApproval", nil, owner, spender, amount)
}

// RedeemTicket creates a transaction invoking `redeemTicket` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RedeemTicket(holder util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "redeemTicket", holder)
}

// RedeemTicketTransaction creates a transaction invoking `redeemTicket` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RedeemTicketTransaction(holder util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "redeemTicket", holder)
}

// RedeemTicketUnsigned creates a transaction invoking `redeemTicket` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RedeemTicketUnsigned(holder util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "redeemTicket", nil, holder)
}

// TransferFrom creates a transaction invoking `transferFrom` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferFrom(spender util.Uint160, from util.Uint160, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferFrom", spender, from, to, amount)
}

// TransferFromTransaction creates a transaction invoking `transferFrom` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferFromTransaction(spender util.Uint160, from util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferFrom", spender, from, to, amount)
}

// TransferFromUnsigned creates a transaction invoking `transferFrom` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferFromUnsigned(spender util.Uint160, from util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferFrom", nil, spender, from, to, amount)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// UpdateListing creates a transaction invoking `updateListing` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateListing(endTime *big.Int, available *big.Int, price *big.Int, name string, description string, location string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateListing", endTime, available, price, name, description, location)
}

// UpdateListingTransaction creates a transaction invoking `updateListing` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateListingTransaction(endTime *big.Int, available *big.Int, price *big.Int, name string, description string, location string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateListing", endTime, available, price, name, description, location)
}

// UpdateListingUnsigned creates a transaction invoking `updateListing` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateListingUnsigned(endTime *big.Int, available *big.Int, price *big.Int, name string, description string, location string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateListing", nil, endTime, available, price, name, description, location)
}

// itemToTicketListing converts stack item into *TicketListing.
func itemToTicketListing(item stackitem.Item, err error) (*TicketListing, error) {
	if err != nil {
		return nil, err
	}
	var res = new(TicketListing)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of TicketListing from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *TicketListing) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 8 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Owner, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.EndTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EndTime: %w", err)
	}

	index++
	res.Available, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Available: %w", err)
	}

	index++
	res.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	index++
	res.Supply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Supply: %w", err)
	}

	index++
	res.Name, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	res.Description, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Description: %w", err)
	}

	index++
	res.Location, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Location: %w", err)
	}

	return nil
}

// ApprovalEventsFromApplicationLog retrieves a set of all emitted events
// with "Approval" name from the provided [result.ApplicationLog].
func ApprovalEventsFromApplicationLog(log *result.ApplicationLog) ([]*ApprovalEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ApprovalEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Approval" {
				continue
			}
			event := new(ApprovalEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ApprovalEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ApprovalEvent or
// returns an error if it's not possible to do to so.
func (e *ApprovalEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Owner, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	e.Spender, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Spender: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ListingUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ListingUpdated" name from the provided [result.ApplicationLog].
func ListingUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ListingUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ListingUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ListingUpdated" {
				continue
			}
			event := new(ListingUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ListingUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ListingUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *ListingUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.EndTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field EndTime: %w", err)
	}

	index++
	e.Available, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Available: %w", err)
	}

	index++
	e.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	index++
	e.Name, err = func(item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	return nil
}

// TicketRedeemedEventsFromApplicationLog retrieves a set of all emitted events
// with "TicketRedeemed" name from the provided [result.ApplicationLog].
func TicketRedeemedEventsFromApplicationLog(log *result.ApplicationLog) ([]*TicketRedeemedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*TicketRedeemedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "TicketRedeemed" {
				continue
			}
			event := new(TicketRedeemedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize TicketRedeemedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to TicketRedeemedEvent or
// returns an error if it's not possible to do to so.
func (e *TicketRedeemedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Holder, err = func(item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Holder: %w", err)
	}

	return nil
}
