/*
Package feetoken implements the secondary fee token of the Ticketplace suite.

It is a minted NEP-17 compatible ledger used purely as fee-payment currency:
listing fees are debited from listers through the chargeFee entry point,
which requires no payer witness and is callable only by marketplace contracts
the admin has put on the allowlist. The token is shared across marketplace
instances; each instance guards its own fee-charging entry point.

# Contract notifications

Transfer notification. This is a NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

FeeCharged notification. Produced when an authorized marketplace debits a
fee; details carry the marketplace-specific transfer context.

	FeeCharged:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: details
	    type: ByteArray
*/
package feetoken

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'a' -> interop.Hash160
   admin account
 - 's' -> int
   total minted supply
 - b<interop.Hash160> -> int
   per-account balances
 - m<interop.Hash160> -> bool
   allowlist of marketplace contracts permitted to charge fees

# Accounting
Contract stores the fee currency balance sheet shared by all marketplaces.
*/
