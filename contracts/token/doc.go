/*
Package token implements a multi-asset balance ledger contract.

The contract tracks a non-negative balance for every (token id, account)
pair. Token ids are opaque non-negative integers: there is no registry of
"existing" ids, any id is usable and starts with zero balance on every
account. Accounts are Neo script hashes, either plain accounts or deployed
contracts.

Accounts move tokens with safeTransferFrom and safeBatchTransferFrom. Both
run the same protocol: authorization (the operator is the debited account or
was approved by it via setApprovalForAll), validation (receiver and list
shapes), balance mutation and reporting. A batch transfer is all-or-nothing:
a failure of any line reverts the whole operation, no partial batch is ever
observable.

If the receiver is a deployed contract, reporting is followed by the
acceptance protocol: the contract's onERC1155Received (single) or
onERC1155BatchReceived (batch) handler is called with the full transfer
description and must return the called method's name as an acknowledgement.
A handler that is missing, faults or returns anything else aborts the
operation, reverting balance changes and notifications alike. The handler
runs inside the same transaction, so any reentrant call it makes observes
the post-transfer balances.

The contract owner set at deploy time can mint (raising per-id circulation,
capped to keep balances within 63 bits) and anyone authorized for an account
can burn from it. Metadata is limited to a single URI template served by
tokenURI, with token id substitution left to clients.

# Contract notifications

TransferSingle notification. Emitted exactly once per successful transfer,
mint (empty from) or burn (empty to).

	TransferSingle:
	  - name: operator
	    type: Hash160
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: id
	    type: Integer
	  - name: amount
	    type: Integer

TransferBatch notification. Emitted exactly once per successful batch
transfer and covers every line of the batch.

	TransferBatch:
	  - name: operator
	    type: Hash160
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: ids
	    type: Array
	  - name: amounts
	    type: Array

ApprovalForAll notification. Emitted on every setApprovalForAll call.

	ApprovalForAll:
	  - name: owner
	    type: Hash160
	  - name: operator
	    type: Hash160
	  - name: approved
	    type: Boolean
*/
package token
