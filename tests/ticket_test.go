package tests

import (
	"path"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/ticketplace/ticketplace-contract/common"
	"github.com/ticketplace/ticketplace-contract/contracts/ticket/ticketconst"
)

const (
	ticketSupply = 100
	ticketPrice  = 10
)

// newTicketInvoker deploys a standalone Event Ticket ledger with the
// committee recorded as the creating marketplace. Direct transactions can
// never satisfy the marketplace caller check, which is exactly what the
// guard tests need.
func newTicketInvoker(t *testing.T) (*neotest.ContractInvoker, neotest.Signer) {
	e := newExecutor(t)
	owner := e.NewAccount(t)

	ctr := neotest.CompileFile(t, e.CommitteeHash, ticketPath, path.Join(ticketPath, "config.yml"))
	e.DeployContract(t, ctr, []any{
		owner.ScriptHash(), e.CommitteeHash,
		chainTimeAfter(t, e, time.Hour), ticketSupply, ticketPrice, ticketSupply,
		"Spring Gala", "Annual spring gala", "Town Hall",
	})

	return e.CommitteeInvoker(ctr.Hash), owner
}

func TestTicketDeployValidation(t *testing.T) {
	e := newExecutor(t)
	owner := e.NewAccount(t)

	ctr := neotest.CompileFile(t, e.CommitteeHash, ticketPath, path.Join(ticketPath, "config.yml"))
	e.DeployContractCheckFAULT(t, ctr, []any{
		owner.ScriptHash(), e.CommitteeHash,
		chainTimeAfter(t, e, time.Hour), 0, ticketPrice, ticketSupply,
		"Spring Gala", "Annual spring gala", "Town Hall",
	}, "available cap is out of range")
	e.DeployContractCheckFAULT(t, ctr, []any{
		owner.ScriptHash(), e.CommitteeHash,
		chainTimeAfter(t, e, time.Hour), ticketSupply + 1, ticketPrice, ticketSupply,
		"Spring Gala", "Annual spring gala", "Town Hall",
	}, "available cap is out of range")
}

func TestTicketGeneric(t *testing.T) {
	c, owner := newTicketInvoker(t)

	c.Invoke(t, ticketconst.Symbol, "symbol")
	c.Invoke(t, ticketconst.Decimals, "decimals")
	c.Invoke(t, ticketSupply, "totalSupply")
	c.Invoke(t, ticketSupply, "balanceOf", owner.ScriptHash())
	c.Invoke(t, owner.ScriptHash(), "listingOwner")
	c.Invoke(t, c.CommitteeHash, "marketplace")
	c.Invoke(t, ticketSupply, "availableTickets")
	c.Invoke(t, ticketPrice, "price")
	c.Invoke(t, "Spring Gala", "eventName")
	c.Invoke(t, "Annual spring gala", "eventDescription")
	c.Invoke(t, "Town Hall", "eventLocation")
	c.Invoke(t, 0, "cumulativeSales")
	c.Invoke(t, 0, "escrowedFund")
	c.Invoke(t, common.Version, "version")
}

func TestTicketTransfer(t *testing.T) {
	c, owner := newTicketInvoker(t)

	holder := c.NewAccount(t)
	ownerHash, holderHash := owner.ScriptHash(), holder.ScriptHash()

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, true, "transfer", ownerHash, holderHash, 5, nil)
	c.Invoke(t, ticketSupply-5, "balanceOf", ownerHash)
	c.Invoke(t, 5, "balanceOf", holderHash)

	// More than the holder has.
	c.WithSigners(holder).Invoke(t, false, "transfer", holderHash, ownerHash, 6, nil)

	// No witness of the sender.
	cOwner.Invoke(t, false, "transfer", holderHash, ownerHash, 1, nil)
}

func TestTicketApprovals(t *testing.T) {
	c, owner := newTicketInvoker(t)

	spender := c.NewAccount(t)
	recipient := c.NewAccount(t)
	ownerHash, spenderHash := owner.ScriptHash(), spender.ScriptHash()

	c.Invoke(t, 0, "allowance", ownerHash, spenderHash)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, true, "approve", ownerHash, spenderHash, 10)
	c.Invoke(t, 10, "allowance", ownerHash, spenderHash)

	cOwner.Invoke(t, true, "increaseApproval", ownerHash, spenderHash, 5)
	c.Invoke(t, 15, "allowance", ownerHash, spenderHash)

	cOwner.Invoke(t, true, "decreaseApproval", ownerHash, spenderHash, 8)
	c.Invoke(t, 7, "allowance", ownerHash, spenderHash)

	// Floors at zero instead of failing.
	cOwner.Invoke(t, true, "decreaseApproval", ownerHash, spenderHash, 100)
	c.Invoke(t, 0, "allowance", ownerHash, spenderHash)

	cOwner.Invoke(t, true, "approve", ownerHash, spenderHash, 3)

	cSpender := c.WithSigners(spender)
	cSpender.Invoke(t, true, "transferFrom", spenderHash, ownerHash, recipient.ScriptHash(), 2)
	c.Invoke(t, 1, "allowance", ownerHash, spenderHash)
	c.Invoke(t, 2, "balanceOf", recipient.ScriptHash())

	// Exceeds the remaining allowance.
	cSpender.Invoke(t, false, "transferFrom", spenderHash, ownerHash, recipient.ScriptHash(), 2)
}

func TestTicketUpdateListing(t *testing.T) {
	c, owner := newTicketInvoker(t)

	newEndTime := chainTimeAfter(t, c.Executor, 2*time.Hour)

	c.WithSigners(c.NewAccount(t)).InvokeFail(t, common.ErrOwnerWitnessFailed, "updateListing",
		newEndTime, 50, 20, "New name", "New description", "New location")

	cOwner := c.WithSigners(owner)

	// Invalid fields are skipped, valid ones still apply.
	cOwner.Invoke(t, stackitem.Null{}, "updateListing",
		newEndTime, ticketSupply+1, 0, "", "Updated description", "")
	c.Invoke(t, newEndTime, "salesEndTime")
	c.Invoke(t, ticketSupply, "availableTickets")
	c.Invoke(t, ticketPrice, "price")
	c.Invoke(t, "Spring Gala", "eventName")
	c.Invoke(t, "Updated description", "eventDescription")

	cOwner.Invoke(t, stackitem.Null{}, "updateListing",
		newEndTime, 40, 25, "Autumn Gala", "Annual autumn gala", "City Park")
	c.Invoke(t, 40, "availableTickets")
	c.Invoke(t, 25, "price")
}

func TestTicketRedeem(t *testing.T) {
	c, owner := newTicketInvoker(t)

	holder := c.NewAccount(t)
	holderHash := holder.ScriptHash()

	cHolder := c.WithSigners(holder)
	cHolder.InvokeFail(t, ticketconst.ErrNoTickets, "redeemTicket", holderHash)

	c.WithSigners(owner).Invoke(t, true, "transfer", owner.ScriptHash(), holderHash, 2, nil)

	cHolder.Invoke(t, stackitem.Null{}, "redeemTicket", holderHash)
	c.Invoke(t, 1, "balanceOf", holderHash)
	c.Invoke(t, 1, "balanceOf", c.CommitteeHash)
	c.Invoke(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(holderHash.BytesBE()),
	}), "redeemedHolders")

	// No witness of the holder.
	c.WithSigners(owner).InvokeFail(t, common.ErrOwnerWitnessFailed, "redeemTicket", holderHash)
}

func TestTicketMarketplaceOnlyGuards(t *testing.T) {
	c, owner := newTicketInvoker(t)

	buyer := c.NewAccount(t)

	c.InvokeFail(t, ticketconst.ErrMarketplaceOnly, "sellTickets", buyer.ScriptHash(), 1)
	c.InvokeFail(t, ticketconst.ErrMarketplaceOnly, "drainFund", 1)
	c.WithSigners(owner).InvokeFail(t, ticketconst.ErrMarketplaceOnly, "sellTickets", buyer.ScriptHash(), 1)
}
