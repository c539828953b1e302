// Package marketplace contains RPC wrappers for Ticketplace Marketplace contract.
package marketplace

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ListingCreatedEvent represents "ListingCreated" event emitted by the contract.
type ListingCreatedEvent struct {
	Ticket    util.Uint160
	Owner     util.Uint160
	EndTime   *big.Int
	Available *big.Int
	Price     *big.Int
	Supply    *big.Int
	Name      string
}

// TicketsSoldEvent represents "TicketsSold" event emitted by the contract.
type TicketsSoldEvent struct {
	Ticket   util.Uint160
	Buyer    util.Uint160
	Quantity *big.Int
	Cost     *big.Int
}

// ExcessPaymentEvent represents "ExcessPayment" event emitted by the contract.
type ExcessPaymentEvent struct {
	Ticket util.Uint160
	Buyer  util.Uint160
	Amount *big.Int
}

// FundsWithdrawnEvent represents "FundsWithdrawn" event emitted by the contract.
type FundsWithdrawnEvent struct {
	Ticket    util.Uint160
	Recipient util.Uint160
	Amount    *big.Int
	Fee       *big.Int
	Memo      []byte
}

// CharityDonatedEvent represents "CharityDonated" event emitted by the contract.
type CharityDonatedEvent struct {
	Recipient util.Uint160
	Amount    *big.Int
}

// ExcessReturnedEvent represents "ExcessReturned" event emitted by the contract.
type ExcessReturnedEvent struct {
	Recipient util.Uint160
	Amount    *big.Int
}

// FeePolicyUpdatedEvent represents "FeePolicyUpdated" event emitted by the contract.
type FeePolicyUpdatedEvent struct {
	ListingFee         *big.Int
	WithdrawFeePercent *big.Int
}

// StrayValueEvent represents "StrayValue" event emitted by the contract.
type StrayValueEvent struct {
	From   util.Uint160
	Amount *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Admin invokes `admin` method of contract.
func (c *ContractReader) Admin() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "admin"))
}

// CharityTotal invokes `charityTotal` method of contract.
func (c *ContractReader) CharityTotal() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "charityTotal"))
}

// FeeToken invokes `feeToken` method of contract.
func (c *ContractReader) FeeToken() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "feeToken"))
}

// Heartbank invokes `heartbank` method of contract.
func (c *ContractReader) Heartbank() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "heartbank"))
}

// IsHalted invokes `isHalted` method of contract.
func (c *ContractReader) IsHalted() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isHalted"))
}

// IsListed invokes `isListed` method of contract.
func (c *ContractReader) IsListed(ticket util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isListed", ticket))
}

// IsTerminated invokes `isTerminated` method of contract.
func (c *ContractReader) IsTerminated() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isTerminated"))
}

// ListingFee invokes `listingFee` method of contract.
func (c *ContractReader) ListingFee() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "listingFee"))
}

// Listings invokes `listings` method of contract.
func (c *ContractReader) Listings() ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "listings"))
}

// ListingsCount invokes `listingsCount` method of contract.
func (c *ContractReader) ListingsCount() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "listingsCount"))
}

// ListingsIterator invokes `listingsIterator` method of contract.
func (c *ContractReader) ListingsIterator() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "listingsIterator"))
}

// ListingsIteratorExpanded is similar to ListingsIterator (uses the same
// contract method), but can be useful if the server used doesn't support
// sessions and doesn't expand iterators. It creates a script that will get
// the specified number of result items from the iterator right in the
// invocation and return them to you. It's only limited by VM stack and GAS
// available for RPC invocations.
func (c *ContractReader) ListingsIteratorExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "listingsIterator", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// WithdrawFeePercent invokes `withdrawFeePercent` method of contract.
func (c *ContractReader) WithdrawFeePercent() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "withdrawFeePercent"))
}

// BuyTickets creates a transaction invoking `buyTickets` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) BuyTickets(buyer util.Uint160, ticket util.Uint160, quantity *big.Int, payment *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "buyTickets", buyer, ticket, quantity, payment)
}

// BuyTicketsTransaction creates a transaction invoking `buyTickets` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) BuyTicketsTransaction(buyer util.Uint160, ticket util.Uint160, quantity *big.Int, payment *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "buyTickets", buyer, ticket, quantity, payment)
}

// BuyTicketsUnsigned creates a transaction invoking `buyTickets` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) BuyTicketsUnsigned(buyer util.Uint160, ticket util.Uint160, quantity *big.Int, payment *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "buyTickets", nil, buyer, ticket, quantity, payment)
}

// CreateListing creates a transaction invoking `createListing` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateListing(owner util.Uint160, endTime *big.Int, available *big.Int, price *big.Int, supply *big.Int, name string, description string, location string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createListing", owner, endTime, available, price, supply, name, description, location)
}

// CreateListingTransaction creates a transaction invoking `createListing` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateListingTransaction(owner util.Uint160, endTime *big.Int, available *big.Int, price *big.Int, supply *big.Int, name string, description string, location string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createListing", owner, endTime, available, price, supply, name, description, location)
}

// CreateListingUnsigned creates a transaction invoking `createListing` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateListingUnsigned(owner util.Uint160, endTime *big.Int, available *big.Int, price *big.Int, supply *big.Int, name string, description string, location string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createListing", nil, owner, endTime, available, price, supply, name, description, location)
}

// DonateToCharity creates a transaction invoking `donateToCharity` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) DonateToCharity(recipient util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "donateToCharity", recipient, amount)
}

// DonateToCharityTransaction creates a transaction invoking `donateToCharity` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DonateToCharityTransaction(recipient util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "donateToCharity", recipient, amount)
}

// DonateToCharityUnsigned creates a transaction invoking `donateToCharity` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DonateToCharityUnsigned(recipient util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "donateToCharity", nil, recipient, amount)
}

// RefundExcess creates a transaction invoking `refundExcess` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RefundExcess(recipient util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "refundExcess", recipient, amount)
}

// RefundExcessTransaction creates a transaction invoking `refundExcess` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RefundExcessTransaction(recipient util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "refundExcess", recipient, amount)
}

// RefundExcessUnsigned creates a transaction invoking `refundExcess` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RefundExcessUnsigned(recipient util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "refundExcess", nil, recipient, amount)
}

// SetFeePolicy creates a transaction invoking `setFeePolicy` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetFeePolicy(listingFee *big.Int, withdrawFeePercent *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFeePolicy", listingFee, withdrawFeePercent)
}

// SetFeePolicyTransaction creates a transaction invoking `setFeePolicy` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetFeePolicyTransaction(listingFee *big.Int, withdrawFeePercent *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setFeePolicy", listingFee, withdrawFeePercent)
}

// SetFeePolicyUnsigned creates a transaction invoking `setFeePolicy` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetFeePolicyUnsigned(listingFee *big.Int, withdrawFeePercent *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setFeePolicy", nil, listingFee, withdrawFeePercent)
}

// SetTicketTemplate creates a transaction invoking `setTicketTemplate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetTicketTemplate(nefFile []byte, manifestPrefix []byte, manifestSuffix []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setTicketTemplate", nefFile, manifestPrefix, manifestSuffix)
}

// SetTicketTemplateTransaction creates a transaction invoking `setTicketTemplate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetTicketTemplateTransaction(nefFile []byte, manifestPrefix []byte, manifestSuffix []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setTicketTemplate", nefFile, manifestPrefix, manifestSuffix)
}

// SetTicketTemplateUnsigned creates a transaction invoking `setTicketTemplate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetTicketTemplateUnsigned(nefFile []byte, manifestPrefix []byte, manifestSuffix []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setTicketTemplate", nil, nefFile, manifestPrefix, manifestSuffix)
}

// Terminate creates a transaction invoking `terminate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Terminate() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "terminate")
}

// TerminateTransaction creates a transaction invoking `terminate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TerminateTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "terminate")
}

// TerminateUnsigned creates a transaction invoking `terminate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TerminateUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "terminate", nil)
}

// ToggleEmergency creates a transaction invoking `toggleEmergency` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ToggleEmergency() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "toggleEmergency")
}

// ToggleEmergencyTransaction creates a transaction invoking `toggleEmergency` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ToggleEmergencyTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "toggleEmergency")
}

// ToggleEmergencyUnsigned creates a transaction invoking `toggleEmergency` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ToggleEmergencyUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "toggleEmergency", nil)
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

// WithdrawFunds creates a transaction invoking `withdrawFunds` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) WithdrawFunds(ticket util.Uint160, recipient util.Uint160, amount *big.Int, memo []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdrawFunds", ticket, recipient, amount, memo)
}

// WithdrawFundsTransaction creates a transaction invoking `withdrawFunds` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawFundsTransaction(ticket util.Uint160, recipient util.Uint160, amount *big.Int, memo []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdrawFunds", ticket, recipient, amount, memo)
}

// WithdrawFundsUnsigned creates a transaction invoking `withdrawFunds` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawFundsUnsigned(ticket util.Uint160, recipient util.Uint160, amount *big.Int, memo []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdrawFunds", nil, ticket, recipient, amount, memo)
}

// ListingCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "ListingCreated" name from the provided [result.ApplicationLog].
func ListingCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ListingCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ListingCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ListingCreated" {
				continue
			}
			event := new(ListingCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ListingCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ListingCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *ListingCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Ticket, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ticket: %w", err)
	}

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
	e.Supply, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Supply: %w", err)
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

// TicketsSoldEventsFromApplicationLog retrieves a set of all emitted events
// with "TicketsSold" name from the provided [result.ApplicationLog].
func TicketsSoldEventsFromApplicationLog(log *result.ApplicationLog) ([]*TicketsSoldEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*TicketsSoldEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "TicketsSold" {
				continue
			}
			event := new(TicketsSoldEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize TicketsSoldEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to TicketsSoldEvent or
// returns an error if it's not possible to do to so.
func (e *TicketsSoldEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Ticket, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ticket: %w", err)
	}

	index++
	e.Buyer, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	e.Quantity, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Quantity: %w", err)
	}

	index++
	e.Cost, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cost: %w", err)
	}

	return nil
}

// ExcessPaymentEventsFromApplicationLog retrieves a set of all emitted events
// with "ExcessPayment" name from the provided [result.ApplicationLog].
func ExcessPaymentEventsFromApplicationLog(log *result.ApplicationLog) ([]*ExcessPaymentEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ExcessPaymentEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ExcessPayment" {
				continue
			}
			event := new(ExcessPaymentEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ExcessPaymentEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ExcessPaymentEvent or
// returns an error if it's not possible to do to so.
func (e *ExcessPaymentEvent) FromStackItem(item *stackitem.Array) error {
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
	e.Ticket, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ticket: %w", err)
	}

	index++
	e.Buyer, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// FundsWithdrawnEventsFromApplicationLog retrieves a set of all emitted events
// with "FundsWithdrawn" name from the provided [result.ApplicationLog].
func FundsWithdrawnEventsFromApplicationLog(log *result.ApplicationLog) ([]*FundsWithdrawnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FundsWithdrawnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FundsWithdrawn" {
				continue
			}
			event := new(FundsWithdrawnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FundsWithdrawnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FundsWithdrawnEvent or
// returns an error if it's not possible to do to so.
func (e *FundsWithdrawnEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Ticket, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Ticket: %w", err)
	}

	index++
	e.Recipient, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Recipient: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	e.Fee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Fee: %w", err)
	}

	index++
	e.Memo, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Memo: %w", err)
	}

	return nil
}

// CharityDonatedEventsFromApplicationLog retrieves a set of all emitted events
// with "CharityDonated" name from the provided [result.ApplicationLog].
func CharityDonatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CharityDonatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CharityDonatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "CharityDonated" {
				continue
			}
			event := new(CharityDonatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CharityDonatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CharityDonatedEvent or
// returns an error if it's not possible to do to so.
func (e *CharityDonatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Recipient, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Recipient: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// ExcessReturnedEventsFromApplicationLog retrieves a set of all emitted events
// with "ExcessReturned" name from the provided [result.ApplicationLog].
func ExcessReturnedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ExcessReturnedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ExcessReturnedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ExcessReturned" {
				continue
			}
			event := new(ExcessReturnedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ExcessReturnedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ExcessReturnedEvent or
// returns an error if it's not possible to do to so.
func (e *ExcessReturnedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Recipient, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field Recipient: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// FeePolicyUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "FeePolicyUpdated" name from the provided [result.ApplicationLog].
func FeePolicyUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeePolicyUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FeePolicyUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FeePolicyUpdated" {
				continue
			}
			event := new(FeePolicyUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FeePolicyUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FeePolicyUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *FeePolicyUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ListingFee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ListingFee: %w", err)
	}

	index++
	e.WithdrawFeePercent, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field WithdrawFeePercent: %w", err)
	}

	return nil
}

// StrayValueEventsFromApplicationLog retrieves a set of all emitted events
// with "StrayValue" name from the provided [result.ApplicationLog].
func StrayValueEventsFromApplicationLog(log *result.ApplicationLog) ([]*StrayValueEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*StrayValueEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "StrayValue" {
				continue
			}
			event := new(StrayValueEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize StrayValueEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to StrayValueEvent or
// returns an error if it's not possible to do to so.
func (e *StrayValueEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.From, err = func(item stackitem.Item) (util.Uint160, error) {
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
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}
