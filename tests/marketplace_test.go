package tests

import (
	"path"
	"strconv"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
	"github.com/ticketplace/ticketplace-contract/common"
	"github.com/ticketplace/ticketplace-contract/contracts/feetoken/feetokenconst"
	"github.com/ticketplace/ticketplace-contract/contracts/marketplace/marketplaceconst"
	"github.com/ticketplace/ticketplace-contract/contracts/ticket/ticketconst"
	"github.com/ticketplace/ticketplace-contract/deploy"
)

const (
	mListingFee         = 50
	mWithdrawFeePercent = 1
)

type marketplaceSuite struct {
	*neotest.Executor

	feeToken    *neotest.ContractInvoker
	marketplace *neotest.ContractInvoker
	ticketCtr   *neotest.Contract

	nextListingID int64
}

// newBareMarketplaceSuite deploys the fee token and the marketplace without
// uploading the ticket contract template or authorizing fee charges.
func newBareMarketplaceSuite(t *testing.T) *marketplaceSuite {
	e := newExecutor(t)

	ctrFee := neotest.CompileFile(t, e.CommitteeHash, feeTokenPath, path.Join(feeTokenPath, "config.yml"))
	e.DeployContract(t, ctrFee, []any{e.CommitteeHash})

	ctrMarket := neotest.CompileFile(t, e.CommitteeHash, marketplacePath, path.Join(marketplacePath, "config.yml"))
	e.DeployContract(t, ctrMarket, []any{
		e.CommitteeHash, ctrFee.Hash, int64(mListingFee), int64(mWithdrawFeePercent),
	})

	ctrTicket := neotest.CompileFile(t, e.CommitteeHash, ticketPath, path.Join(ticketPath, "config.yml"))

	return &marketplaceSuite{
		Executor:    e,
		feeToken:    e.CommitteeInvoker(ctrFee.Hash),
		marketplace: e.CommitteeInvoker(ctrMarket.Hash),
		ticketCtr:   ctrTicket,
	}
}

func newMarketplaceSuite(t *testing.T) *marketplaceSuite {
	s := newBareMarketplaceSuite(t)

	rawNEF, err := s.ticketCtr.NEF.Bytes()
	require.NoError(t, err)
	prefix, suffix, err := deploy.SplitTicketManifest(*s.ticketCtr.Manifest)
	require.NoError(t, err)

	s.marketplace.Invoke(t, stackitem.Null{}, "setTicketTemplate", rawNEF, prefix, suffix)
	s.feeToken.Invoke(t, stackitem.Null{}, "authorize", s.marketplace.Hash)

	return s
}

// createListing mints exactly the listing fee to the owner and creates a
// listing on their behalf, returning the address of the deployed ticket
// ledger.
func (s *marketplaceSuite) createListing(t *testing.T, owner neotest.Signer,
	endTime int64, available, price, supply int64, name string) util.Uint160 {
	ownerHash := owner.ScriptHash()
	s.feeToken.Invoke(t, stackitem.Null{}, "mint", ownerHash, mListingFee)

	ticketHash := state.CreateContractHash(ownerHash, s.ticketCtr.NEF.Checksum,
		"Event Ticket "+strconv.FormatInt(s.nextListingID, 10))
	s.nextListingID++

	s.marketplace.WithSigners(owner).Invoke(t, ticketHash, "createListing",
		ownerHash, endTime, available, price, supply, name, "Some event", "Town Hall")

	return ticketHash
}

func (s *marketplaceSuite) gasBalance(t *testing.T, h util.Uint160) int64 {
	return s.Chain.GetUtilityTokenBalance(h).Int64()
}

func TestMarketplaceGeneric(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	m.Invoke(t, s.CommitteeHash, "admin")
	m.Invoke(t, s.feeToken.Hash, "feeToken")
	m.Invoke(t, 0, "heartbank")
	m.Invoke(t, 0, "charityTotal")
	m.Invoke(t, mListingFee, "listingFee")
	m.Invoke(t, mWithdrawFeePercent, "withdrawFeePercent")
	m.Invoke(t, false, "isHalted")
	m.Invoke(t, false, "isTerminated")
	m.Invoke(t, 0, "listingsCount")
	m.Invoke(t, common.Version, "version")
}

func TestCreateListing(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	owner := s.NewAccount(t)
	ownerHash := owner.ScriptHash()
	endTime := chainTimeAfter(t, s.Executor, time.Hour)

	mOwner := m.WithSigners(owner)

	// Not witnessed by the declared owner.
	m.InvokeFail(t, common.ErrOwnerWitnessFailed, "createListing",
		ownerHash, endTime, 100, 10, 100, "Gala", "d", "l")

	mOwner.InvokeFail(t, marketplaceconst.ErrEndTimeNotFuture, "createListing",
		ownerHash, chainTime(t, s.Executor)-1000, 100, 10, 100, "Gala", "d", "l")
	mOwner.InvokeFail(t, marketplaceconst.ErrInvalidSupply, "createListing",
		ownerHash, endTime, 0, 10, 0, "Gala", "d", "l")
	mOwner.InvokeFail(t, marketplaceconst.ErrInvalidPrice, "createListing",
		ownerHash, endTime, 100, 0, 100, "Gala", "d", "l")
	mOwner.InvokeFail(t, marketplaceconst.ErrInvalidCap, "createListing",
		ownerHash, endTime, 0, 10, 100, "Gala", "d", "l")
	mOwner.InvokeFail(t, marketplaceconst.ErrInvalidCap, "createListing",
		ownerHash, endTime, 101, 10, 100, "Gala", "d", "l")
	mOwner.InvokeFail(t, marketplaceconst.ErrEmptyMetadata, "createListing",
		ownerHash, endTime, 100, 10, 100, "", "d", "l")

	// The owner has no fee tokens yet.
	mOwner.InvokeFail(t, feetokenconst.ErrInsufficientBalance, "createListing",
		ownerHash, endTime, 100, 10, 100, "Gala", "d", "l")

	ticketHash := s.createListing(t, owner, endTime, 100, 10, 100, "Spring Gala")

	m.Invoke(t, 1, "listingsCount")
	m.Invoke(t, true, "isListed", ticketHash)
	m.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(ticketHash.BytesBE()),
	}), "listings")

	// The listing fee went to the admin.
	s.feeToken.Invoke(t, 0, "balanceOf", ownerHash)
	s.feeToken.Invoke(t, mListingFee, "balanceOf", s.CommitteeHash)

	tk := s.CommitteeInvoker(ticketHash)
	tk.Invoke(t, 100, "balanceOf", ownerHash)
	tk.Invoke(t, 100, "availableTickets")
	tk.Invoke(t, 10, "price")
	tk.Invoke(t, ownerHash, "listingOwner")
	tk.Invoke(t, m.Hash, "marketplace")

	// A second listing of the same owner gets a distinct address.
	other := s.createListing(t, owner, endTime, 50, 5, 50, "Autumn Gala")
	require.NotEqual(t, ticketHash, other)
	m.Invoke(t, 2, "listingsCount")
}

func TestCreateListingNoTemplate(t *testing.T) {
	s := newBareMarketplaceSuite(t)

	owner := s.NewAccount(t)
	s.marketplace.WithSigners(owner).InvokeFail(t, marketplaceconst.ErrNoTemplate, "createListing",
		owner.ScriptHash(), chainTimeAfter(t, s.Executor, time.Hour), 100, 10, 100, "Gala", "d", "l")
}

func TestBuyTickets(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	buyerHash := buyer.ScriptHash()

	endTime := chainTimeAfter(t, s.Executor, time.Hour)
	ticketHash := s.createListing(t, owner, endTime, 100, 10, 100, "Spring Gala")
	tk := s.CommitteeInvoker(ticketHash)

	mBuyer := m.WithSigners(buyer)

	mBuyer.InvokeFail(t, marketplaceconst.ErrUnknownTicket, "buyTickets",
		buyerHash, util.Uint160{1, 2, 3}, 1, 10)
	mBuyer.InvokeFail(t, marketplaceconst.ErrInvalidQuantity, "buyTickets",
		buyerHash, ticketHash, 0, 10)
	mBuyer.InvokeFail(t, marketplaceconst.ErrInsufficientPayment, "buyTickets",
		buyerHash, ticketHash, 30, 299)
	m.InvokeFail(t, common.ErrOwnerWitnessFailed, "buyTickets",
		buyerHash, ticketHash, 1, 10)

	mBuyer.Invoke(t, stackitem.Null{}, "buyTickets", buyerHash, ticketHash, 30, 300)

	tk.Invoke(t, 30, "balanceOf", buyerHash)
	tk.Invoke(t, 70, "balanceOf", owner.ScriptHash())
	tk.Invoke(t, 70, "availableTickets")
	tk.Invoke(t, 300, "cumulativeSales")
	tk.Invoke(t, 300, "escrowedFund")
	require.EqualValues(t, 300, s.gasBalance(t, m.Hash))

	// Over the remaining cap.
	mBuyer.InvokeFail(t, marketplaceconst.ErrNotEnoughTickets, "buyTickets",
		buyerHash, ticketHash, 71, 710)

	// Overpayment is accepted and retained.
	mBuyer.Invoke(t, stackitem.Null{}, "buyTickets", buyerHash, ticketHash, 1, 15)
	tk.Invoke(t, 310, "cumulativeSales")
	tk.Invoke(t, 310, "escrowedFund")
	require.EqualValues(t, 315, s.gasBalance(t, m.Hash))
}

func TestBuyTicketsExpiry(t *testing.T) {
	s := newMarketplaceSuite(t)

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)

	tpb := s.Chain.GetConfig().TimePerBlock
	endTime := chainTimeAfter(t, s.Executor, 3*tpb)
	ticketHash := s.createListing(t, owner, endTime, 100, 10, 100, "Spring Gala")

	for i := 0; i < 5; i++ {
		s.AddNewBlock(t)
	}

	s.marketplace.WithSigners(buyer).InvokeFail(t, marketplaceconst.ErrSalesEnded, "buyTickets",
		buyer.ScriptHash(), ticketHash, 1, 10)
}

func TestWithdrawFunds(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	recipient := util.Uint160{4, 8, 15, 16, 23, 42}

	endTime := chainTimeAfter(t, s.Executor, time.Hour)
	ticketHash := s.createListing(t, owner, endTime, 100, 10, 100, "Spring Gala")
	tk := s.CommitteeInvoker(ticketHash)

	m.WithSigners(buyer).Invoke(t, stackitem.Null{}, "buyTickets",
		buyer.ScriptHash(), ticketHash, 30, 300)

	mOwner := m.WithSigners(owner)

	m.InvokeFail(t, common.ErrOwnerWitnessFailed, "withdrawFunds",
		ticketHash, recipient, 100, []byte("payout"))
	mOwner.InvokeFail(t, marketplaceconst.ErrInvalidAmount, "withdrawFunds",
		ticketHash, recipient, 0, []byte("payout"))
	mOwner.InvokeFail(t, marketplaceconst.ErrEmptyMemo, "withdrawFunds",
		ticketHash, recipient, 100, []byte{})

	mOwner.Invoke(t, stackitem.Null{}, "withdrawFunds",
		ticketHash, recipient, 100, []byte("payout"))

	// 1% fee on 100 is 1: the recipient gets the amount in full, the fee
	// comes out of the escrowed fund on top of it.
	require.EqualValues(t, 100, s.gasBalance(t, recipient))
	require.EqualValues(t, 200, s.gasBalance(t, m.Hash))
	tk.Invoke(t, 199, "escrowedFund")
	tk.Invoke(t, 300, "cumulativeSales")
	m.Invoke(t, 1, "heartbank")
	m.Invoke(t, 1, "charityTotal")

	// Amount plus fee exceeds the remaining fund; the fee accrual made
	// before the debit is rolled back with the whole transaction.
	mOwner.InvokeFail(t, ticketconst.ErrInsufficientFund, "withdrawFunds",
		ticketHash, recipient, 199, []byte("payout"))
	m.Invoke(t, 1, "heartbank")
	tk.Invoke(t, 199, "escrowedFund")
}

func TestSetFeePolicy(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	m.WithSigners(s.NewAccount(t)).InvokeFail(t, common.ErrAdminWitnessFailed,
		"setFeePolicy", 10, 2)
	m.InvokeFail(t, marketplaceconst.ErrInvalidAmount, "setFeePolicy", -1, 2)
	m.InvokeFail(t, marketplaceconst.ErrInvalidFeePercent, "setFeePolicy", 10, 101)

	m.Invoke(t, stackitem.Null{}, "setFeePolicy", 75, 2)
	m.Invoke(t, 75, "listingFee")
	m.Invoke(t, 2, "withdrawFeePercent")
}

func TestDonateToCharity(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	charity := util.Uint160{7, 7, 7}

	m.InvokeFail(t, marketplaceconst.ErrCharityExceedsHeartbank, "donateToCharity", charity, 1)

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	ticketHash := s.createListing(t, owner,
		chainTimeAfter(t, s.Executor, time.Hour), 100, 10, 100, "Spring Gala")
	m.WithSigners(buyer).Invoke(t, stackitem.Null{}, "buyTickets",
		buyer.ScriptHash(), ticketHash, 30, 300)
	m.WithSigners(owner).Invoke(t, stackitem.Null{}, "withdrawFunds",
		ticketHash, owner.ScriptHash(), 100, []byte("payout"))
	m.Invoke(t, 1, "heartbank")

	m.WithSigners(s.NewAccount(t)).InvokeFail(t, common.ErrAdminWitnessFailed,
		"donateToCharity", charity, 1)
	m.InvokeFail(t, marketplaceconst.ErrCharityExceedsHeartbank, "donateToCharity", charity, 2)

	m.Invoke(t, stackitem.Null{}, "donateToCharity", charity, 1)
	require.EqualValues(t, 1, s.gasBalance(t, charity))
	m.Invoke(t, 0, "heartbank")

	// Lifetime total survives the donation.
	m.Invoke(t, 1, "charityTotal")
}

func TestRefundExcess(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	recipient := util.Uint160{9, 9, 9}

	m.InvokeFail(t, marketplaceconst.ErrRefundExceedsBalance, "refundExcess", recipient, 1)

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	ticketHash := s.createListing(t, owner,
		chainTimeAfter(t, s.Executor, time.Hour), 100, 10, 100, "Spring Gala")

	// Overpay by 15 on a 300 purchase.
	m.WithSigners(buyer).Invoke(t, stackitem.Null{}, "buyTickets",
		buyer.ScriptHash(), ticketHash, 30, 315)

	m.WithSigners(s.NewAccount(t)).InvokeFail(t, common.ErrAdminWitnessFailed,
		"refundExcess", recipient, 15)

	m.Invoke(t, stackitem.Null{}, "refundExcess", recipient, 15)
	require.EqualValues(t, 15, s.gasBalance(t, recipient))
	require.EqualValues(t, 300, s.gasBalance(t, m.Hash))
}

func TestStrayValue(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	sender := s.NewAccount(t)
	senderHash := sender.ScriptHash()

	gasHash, err := s.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	// GAS arriving outside a purchase is retained and only reported.
	gasSender := s.CommitteeInvoker(gasHash).WithSigners(sender)
	h := gasSender.Invoke(t, true, "transfer", senderHash, m.Hash, 7, nil)
	aer := s.CheckHalt(t, h)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(senderHash.BytesBE()),
		stackitem.Make(7),
	}), notification(t, aer, "StrayValue"))
	require.EqualValues(t, 7, s.gasBalance(t, m.Hash))

	// Any other NEP-17 token is rejected outright.
	neoHash, err := s.Chain.GetNativeContractScriptHash(nativenames.Neo)
	require.NoError(t, err)
	s.CommitteeInvoker(neoHash).WithSigners(s.Validator).InvokeFail(t, "ABORT",
		"transfer", s.Validator.ScriptHash(), m.Hash, 1, nil)
}

func TestMarketplaceNotifications(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	ownerHash, buyerHash := owner.ScriptHash(), buyer.ScriptHash()
	endTime := chainTimeAfter(t, s.Executor, time.Hour)

	s.feeToken.Invoke(t, stackitem.Null{}, "mint", ownerHash, mListingFee)
	ticketHash := state.CreateContractHash(ownerHash, s.ticketCtr.NEF.Checksum,
		"Event Ticket "+strconv.FormatInt(s.nextListingID, 10))
	s.nextListingID++

	mOwner := m.WithSigners(owner)
	h := mOwner.Invoke(t, ticketHash, "createListing",
		ownerHash, endTime, 100, 10, 100, "Spring Gala", "Some event", "Town Hall")
	aer := s.CheckHalt(t, h)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(ticketHash.BytesBE()),
		stackitem.NewByteArray(ownerHash.BytesBE()),
		stackitem.Make(endTime),
		stackitem.Make(100),
		stackitem.Make(10),
		stackitem.Make(100),
		stackitem.Make("Spring Gala"),
	}), notification(t, aer, "ListingCreated"))

	h = m.WithSigners(buyer).Invoke(t, stackitem.Null{}, "buyTickets",
		buyerHash, ticketHash, 30, 315)
	aer = s.CheckHalt(t, h)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(ticketHash.BytesBE()),
		stackitem.NewByteArray(buyerHash.BytesBE()),
		stackitem.Make(30),
		stackitem.Make(300),
	}), notification(t, aer, "TicketsSold"))
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(ticketHash.BytesBE()),
		stackitem.NewByteArray(buyerHash.BytesBE()),
		stackitem.Make(15),
	}), notification(t, aer, "ExcessPayment"))

	h = mOwner.Invoke(t, stackitem.Null{}, "withdrawFunds",
		ticketHash, ownerHash, 100, []byte("payout"))
	aer = s.CheckHalt(t, h)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(ticketHash.BytesBE()),
		stackitem.NewByteArray(ownerHash.BytesBE()),
		stackitem.Make(100),
		stackitem.Make(1),
		stackitem.NewByteArray([]byte("payout")),
	}), notification(t, aer, "FundsWithdrawn"))
}

func TestEmergencyHalt(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	endTime := chainTimeAfter(t, s.Executor, time.Hour)
	ticketHash := s.createListing(t, owner, endTime, 100, 10, 100, "Spring Gala")

	m.WithSigners(s.NewAccount(t)).InvokeFail(t, common.ErrAdminWitnessFailed, "toggleEmergency")

	m.Invoke(t, stackitem.Null{}, "toggleEmergency")
	m.Invoke(t, true, "isHalted")

	s.feeToken.Invoke(t, stackitem.Null{}, "mint", owner.ScriptHash(), mListingFee)
	m.WithSigners(owner).InvokeFail(t, marketplaceconst.ErrHalted, "createListing",
		owner.ScriptHash(), endTime, 100, 10, 100, "Gala", "d", "l")
	m.WithSigners(buyer).InvokeFail(t, marketplaceconst.ErrHalted, "buyTickets",
		buyer.ScriptHash(), ticketHash, 1, 10)
	m.WithSigners(owner).InvokeFail(t, marketplaceconst.ErrHalted, "withdrawFunds",
		ticketHash, owner.ScriptHash(), 1, []byte("payout"))
	m.InvokeFail(t, marketplaceconst.ErrHalted, "setFeePolicy", 10, 2)

	m.Invoke(t, stackitem.Null{}, "toggleEmergency")
	m.Invoke(t, false, "isHalted")

	// Normal operation resumes.
	m.WithSigners(buyer).Invoke(t, stackitem.Null{}, "buyTickets",
		buyer.ScriptHash(), ticketHash, 1, 10)
}

func TestTerminate(t *testing.T) {
	s := newMarketplaceSuite(t)
	m := s.marketplace

	owner := s.NewAccount(t)
	buyer := s.NewAccount(t)
	ticketHash := s.createListing(t, owner,
		chainTimeAfter(t, s.Executor, time.Hour), 100, 10, 100, "Spring Gala")
	m.WithSigners(buyer).Invoke(t, stackitem.Null{}, "buyTickets",
		buyer.ScriptHash(), ticketHash, 30, 300)

	// The circuit breaker must be engaged first.
	m.InvokeFail(t, marketplaceconst.ErrNotHalted, "terminate")

	m.Invoke(t, stackitem.Null{}, "toggleEmergency")
	m.WithSigners(s.NewAccount(t)).InvokeFail(t, common.ErrAdminWitnessFailed, "terminate")

	m.Invoke(t, stackitem.Null{}, "terminate")
	m.Invoke(t, true, "isTerminated")

	// Residual value is swept to the admin.
	require.EqualValues(t, 0, s.gasBalance(t, m.Hash))

	// Terminal state is irreversible and gates everything, the kill switch
	// included.
	m.InvokeFail(t, marketplaceconst.ErrTerminated, "toggleEmergency")
	m.InvokeFail(t, marketplaceconst.ErrTerminated, "terminate")
	m.WithSigners(buyer).InvokeFail(t, marketplaceconst.ErrTerminated, "buyTickets",
		buyer.ScriptHash(), ticketHash, 1, 10)
	m.InvokeFail(t, marketplaceconst.ErrTerminated, "setFeePolicy", 10, 2)
	s.feeToken.Invoke(t, stackitem.Null{}, "mint", owner.ScriptHash(), mListingFee)
	m.WithSigners(owner).InvokeFail(t, marketplaceconst.ErrTerminated, "createListing",
		owner.ScriptHash(), chainTimeAfter(t, s.Executor, time.Hour), 100, 10, 100, "Gala", "d", "l")

	// Orphaned ledgers keep serving reads.
	tk := s.CommitteeInvoker(ticketHash)
	tk.Invoke(t, 30, "balanceOf", buyer.ScriptHash())
	tk.Invoke(t, 300, "escrowedFund")
}
