/*
Package marketplace implements the Ticketplace Marketplace contract, the
listing factory and escrow custodian of the suite.

The marketplace deploys one Event Ticket Ledger contract per listed event
(through the native Management contract, splicing a unique name into the
stored manifest template), charges a listing fee in the secondary fee token,
validates and executes ticket purchases, and is the only authority allowed to
release escrowed sale proceeds. Withdrawal fees accumulate in the heartbank
for charitable disbursement; the charity lifetime total never decreases and
always bounds the heartbank from above.

Sale proceeds are held as GAS by the marketplace itself, while per-listing
escrow bookkeeping lives in the ticket ledgers. Every operation follows the
same discipline: validate, mutate internal state, notify, and only then
perform the external GAS transfer, so re-entering receipt logic can never
observe a half-updated ledger. Any precondition violation panics and rolls
the whole call back.

The marketplace is a three-state machine: Active and Halted alternate through
the admin-only emergency toggle, and a halted marketplace can be irreversibly
Terminated by the admin. Termination is a terminal state flag rather than
contract destruction, which keeps the final state auditable; every entry
point of a terminated marketplace permanently fails.

# Contract notifications

ListingCreated notification. Produced when a new ticket ledger is deployed.

	ListingCreated:
	  - name: ticket
	    type: Hash160
	  - name: owner
	    type: Hash160
	  - name: endTime
	    type: Integer
	  - name: available
	    type: Integer
	  - name: price
	    type: Integer
	  - name: supply
	    type: Integer
	  - name: name
	    type: String

TicketsSold notification. Produced on every successful purchase.

	TicketsSold:
	  - name: ticket
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: quantity
	    type: Integer
	  - name: cost
	    type: Integer

ExcessPayment notification. Produced when a purchase payment exceeds the
exact cost; the excess is retained and reconciled by the admin out-of-band.

	ExcessPayment:
	  - name: ticket
	    type: Hash160
	  - name: buyer
	    type: Hash160
	  - name: amount
	    type: Integer

FundsWithdrawn notification. Produced when escrowed proceeds are released.

	FundsWithdrawn:
	  - name: ticket
	    type: Hash160
	  - name: recipient
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: fee
	    type: Integer
	  - name: memo
	    type: ByteArray

CharityDonated notification. Produced when the heartbank is drained.

	CharityDonated:
	  - name: recipient
	    type: Hash160
	  - name: amount
	    type: Integer

ExcessReturned notification. Produced when directly-held value is refunded.

	ExcessReturned:
	  - name: recipient
	    type: Hash160
	  - name: amount
	    type: Integer

FeePolicyUpdated notification. Produced on fee policy change.

	FeePolicyUpdated:
	  - name: listingFee
	    type: Integer
	  - name: withdrawFeePercent
	    type: Integer

StrayValue notification. Produced when GAS arrives outside a purchase.

	StrayValue:
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package marketplace

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' -> interop.Hash160
   admin account, immutable after deployment
 - 'f' -> interop.Hash160
   fee token contract address
 - 'h' -> bool
   emergency halt flag, present only while engaged
 - 'z' -> bool
   terminal state flag, present only after termination
 - 'b' -> int
   heartbank: collected withdrawal fees available for donation
 - 'c' -> int
   charity lifetime total of collected withdrawal fees
 - 'g' -> int
   listing fee in fee token units
 - 'w' -> int
   withdrawal fee percent
 - 'q' -> std.Serialize([][]byte)
   ticket ledger addresses in creation order
 - 'n' -> int
   number of ticket ledgers ever created
 - 'T', 'P', 'S' -> []byte
   ticket contract template: NEF, manifest prefix and suffix around the name
 - 'p' -> int
   pending payment marker, lives only within a purchase transaction
 - x<interop.Hash160> -> int
   ticket ledger membership index

# Accounting
Contract stores marketplace policy, the fee accumulators and the registry of
created ticket ledgers; GAS custody is tracked by the native GAS contract
under the marketplace address.
*/
