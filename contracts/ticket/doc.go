/*
Package ticket implements the Event Ticket Ledger contract deployed by the
Marketplace contract, one instance per listed event.

Tickets are units of a NEP-17 compatible fungible token, so holdings can be
tracked and moved by any N3 compatible wallet software. The full ticket supply
is credited to the listing owner at deployment; afterwards tickets are only
ever moved, never minted or burned, so the sum of all balances always equals
the total supply.

Besides the fungible surface the ledger carries the listing state (sales
deadline, remaining sellable inventory, unit price, event metadata) and an
escrow account: proceeds of every marketplace sale accumulate in the escrowed
fund and leave it only through the marketplace's fee-charging withdrawal path.
Sale and fund operations are callable exclusively by the creating marketplace
contract; the ledger itself never moves GAS.

Listing metadata updates deliberately use partial-acceptance semantics: each
field of updateListing is validated on its own and silently skipped when
invalid, while every other mutating method of the suite aborts whole.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. Produced when a spender allowance is set or adjusted.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

ListingUpdated notification. Produced by updateListing and carries the state
resulting from the (possibly partial) update.

	ListingUpdated:
	  - name: endTime
	    type: Integer
	  - name: available
	    type: Integer
	  - name: price
	    type: Integer
	  - name: name
	    type: String

TicketRedeemed notification. Produced when a holder spends one ticket.

	TicketRedeemed:
	  - name: holder
	    type: Hash160
*/
package ticket

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'o' -> interop.Hash160
   listing owner fixed at creation
 - 'm' -> interop.Hash160
   marketplace contract that deployed this ledger
 - 'e' -> int
   sales end time, milliseconds
 - 'c' -> int
   remaining sellable inventory
 - 'p' -> int
   unit price
 - 's' -> int
   total issued supply
 - 'v' -> int
   lifetime sale proceeds
 - 'f' -> int
   escrowed (undrained) portion of the proceeds
 - 'n', 'd', 'l' -> string
   event name, description and location
 - 'r' -> std.Serialize([][]byte)
   append-only redemption log
 - a<interop.Hash160> -> int
   per-holder ticket balances
 - w<interop.Hash160><interop.Hash160> -> int
   owner/spender allowances

# Accounting
Contract stores the balance sheet of one event's tickets and the escrow
bookkeeping for its sale proceeds.
*/
