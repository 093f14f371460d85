package token

import (
	"github.com/jkwamlah/ERC1155/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// prefixBalance contains map from (owner, token id) to balance. Only
	// non-zero balances are stored, so keys found under an owner's prefix
	// double as the index of tokens held by that owner.
	prefixBalance byte = 0x01
	// prefixApproval contains map from (owner, operator) to operator
	// approval flag. A missing key means no approval.
	prefixApproval byte = 0x02
	// prefixSupply contains map from token id to amount in circulation.
	prefixSupply byte = 0x03
	// keyOwner contains the contract owner script hash.
	keyOwner byte = 0x04
	// keyURI contains the token metadata URI template.
	keyURI byte = 0x05

	// maxSupply limits circulation of a single token id. Keeping supply
	// within 63 bits keeps every balance representable as int64 for
	// off-chain consumers and makes balance arithmetic overflow-free,
	// since any balance is bounded by its token's supply.
	maxSupply = 1<<63 - 1

	// ackSingle and ackBatch are the acknowledgements a receiver contract
	// must return from its payment handlers. Anything else aborts the
	// transfer.
	ackSingle = "onERC1155Received"
	ackBatch  = "onERC1155BatchReceived"
)

const (
	errNotAuthorized       = "not authorized"
	errInvalidSender       = "invalid sender"
	errInvalidReceiver     = "invalid receiver"
	errInvalidOperator     = "invalid operator"
	errInvalidOwner        = "invalid owner"
	errInvalidTokenID      = "invalid token id"
	errNegativeAmount      = "negative amount"
	errInsufficientBalance = "insufficient balance"
	errLengthMismatch      = "ids and amounts length mismatch"
	errQueryLengthMismatch = "owners and ids length mismatch"
	errSupplyOverflow      = "supply overflow"
	errReceiverRejected    = "transfer rejected by receiver"
)

func _deploy(data interface{}, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
		uri   string
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	storage.Put(ctx, []byte{keyOwner}, args.owner)
	storage.Put(ctx, []byte{keyURI}, args.uri)

	runtime.Log("token contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	common.CheckOwnerWitness(contractOwner(storage.GetReadOnlyContext()))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("token contract updated")
}

// Owner returns the script hash of the contract owner.
func Owner() interop.Hash160 {
	return contractOwner(storage.GetReadOnlyContext())
}

// BalanceOf returns the amount of the specified token held by the specified
// account. Unknown token ids and accounts that never received anything have
// zero balance.
func BalanceOf(owner interop.Hash160, id int) int {
	requireValidToken(id)
	ctx := storage.GetReadOnlyContext()
	return getBalance(ctx, owner, id)
}

// BalanceOfBatch resolves balances for multiple (owner, token id) pairs at
// once. Lists must be of the same length, resulting balances are returned in
// the order of the request pairs.
func BalanceOfBatch(owners []interop.Hash160, ids []int) []int {
	if len(owners) != len(ids) {
		panic(errQueryLengthMismatch)
	}
	ctx := storage.GetReadOnlyContext()
	balances := make([]int, len(owners))
	for i := 0; i < len(owners); i++ {
		requireValidToken(ids[i])
		balances[i] = getBalance(ctx, owners[i], ids[i])
	}
	return balances
}

// TokensOf returns an iterator over ids of all tokens the specified account
// currently holds a non-zero balance of.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic(errInvalidOwner)
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixBalance}, owner...),
		storage.KeysOnly|storage.RemovePrefix)
}

// TotalSupply returns the amount of the specified token in circulation, i.e.
// everything minted minus everything burned.
func TotalSupply(id int) int {
	requireValidToken(id)
	return getSupply(storage.GetReadOnlyContext(), id)
}

// TokenURI returns the metadata URI template of the contract tokens.
// Substitution of a concrete token id into the template is left to clients.
func TokenURI(id int) string {
	requireValidToken(id)
	val := storage.Get(storage.GetReadOnlyContext(), []byte{keyURI})
	if val == nil {
		return ""
	}
	return val.(string)
}

// SetTokenURI replaces the token metadata URI template. Can be invoked only
// by the contract owner.
func SetTokenURI(uri string) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(contractOwner(ctx))
	storage.Put(ctx, []byte{keyURI}, uri)
}

// SetApprovalForAll grants or revokes the right of the specified operator to
// transfer any tokens owned by the specified owner. Can be invoked only by
// the owner. Approving oneself is allowed and changes nothing: owners can
// always move their own tokens.
//
// Produces ApprovalForAll notification.
func SetApprovalForAll(owner, operator interop.Hash160, approved bool) {
	if len(operator) != interop.Hash160Len {
		panic(errInvalidOperator)
	}
	common.CheckOwnerWitness(owner)

	ctx := storage.GetContext()
	if approved {
		storage.Put(ctx, approvalKey(owner, operator), true)
	} else {
		storage.Delete(ctx, approvalKey(owner, operator))
	}
	runtime.Notify("ApprovalForAll", owner, operator, approved)
}

// IsApprovedForAll returns true if the specified operator was approved by the
// specified owner via SetApprovalForAll. Approval is one-way: it never
// authorizes the owner to move the operator's tokens.
func IsApprovedForAll(owner, operator interop.Hash160) bool {
	return isApprovedForAll(storage.GetReadOnlyContext(), owner, operator)
}

// SafeTransferFrom moves the specified amount of the specified token from one
// account to another. Operator must be witnessed by the transaction or be the
// calling contract, and must either be the owner of the debited account or
// approved by it via SetApprovalForAll.
//
// The whole operation is atomic: any failure, including rejection by the
// receiving contract, reverts every balance change and notification.
//
// Produces TransferSingle notification. If the receiver is a deployed
// contract, its onERC1155Received handler is invoked after the notification
// and must return the "onERC1155Received" acknowledgement, otherwise the
// transfer is aborted.
func SafeTransferFrom(operator, from, to interop.Hash160, id, amount int, data interface{}) {
	ctx := storage.GetContext()
	checkAuthorization(ctx, from, operator)
	if len(from) != interop.Hash160Len {
		panic(errInvalidSender)
	}
	requireValidReceiver(to)
	requireValidToken(id)
	requireValidAmount(amount)

	transfer(ctx, from, to, id, amount)
	postTransferSingle(operator, from, to, id, amount, data)
}

// SafeBatchTransferFrom is a batch version of SafeTransferFrom: it moves
// amounts of multiple tokens between the same pair of accounts within a
// single atomic operation. Authorization is checked once for the whole batch.
// Token id and amount lists must be of the same length, list lines are
// applied in order. If any line fails, no line takes effect.
//
// Produces a single TransferBatch notification covering the whole batch. If
// the receiver is a deployed contract, its onERC1155BatchReceived handler is
// invoked once with the full batch and must return the
// "onERC1155BatchReceived" acknowledgement, otherwise the transfer is
// aborted.
func SafeBatchTransferFrom(operator, from, to interop.Hash160, ids []int, amounts []int, data interface{}) {
	ctx := storage.GetContext()
	checkAuthorization(ctx, from, operator)
	if len(from) != interop.Hash160Len {
		panic(errInvalidSender)
	}
	requireValidReceiver(to)
	if len(ids) != len(amounts) {
		panic(errLengthMismatch)
	}

	for i := 0; i < len(ids); i++ {
		requireValidToken(ids[i])
		requireValidAmount(amounts[i])
		transfer(ctx, from, to, ids[i], amounts[i])
	}
	postTransferBatch(operator, from, to, ids, amounts, data)
}

// Mint creates the specified amount of the specified token on the receiving
// account and increases the token circulation. Can be invoked only by the
// contract owner.
//
// Produces TransferSingle notification with empty sender. Contract receivers
// are subject to the same acceptance protocol as in SafeTransferFrom.
func Mint(to interop.Hash160, id, amount int, data interface{}) {
	ctx := storage.GetContext()
	owner := contractOwner(ctx)
	common.CheckOwnerWitness(owner)
	requireValidReceiver(to)
	requireValidToken(id)
	requireValidAmount(amount)

	supply := getSupply(ctx, id)
	if supply+amount > maxSupply {
		panic(errSupplyOverflow)
	}
	storage.Put(ctx, supplyKey(id), supply+amount)
	addToBalance(ctx, to, id, amount)

	postTransferSingle(owner, nil, to, id, amount, data)
}

// Burn destroys the specified amount of the specified token on the debited
// account and decreases the token circulation. Authorization rules are the
// same as in SafeTransferFrom.
//
// Produces TransferSingle notification with empty receiver.
func Burn(operator, from interop.Hash160, id, amount int) {
	ctx := storage.GetContext()
	checkAuthorization(ctx, from, operator)
	if len(from) != interop.Hash160Len {
		panic(errInvalidSender)
	}
	requireValidToken(id)
	requireValidAmount(amount)

	reduceBalance(ctx, from, id, amount)
	supply := getSupply(ctx, id)
	if supply == amount {
		storage.Delete(ctx, supplyKey(id))
	} else {
		storage.Put(ctx, supplyKey(id), supply-amount)
	}

	postTransferSingle(operator, from, nil, id, amount, nil)
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

// checkAuthorization ensures that operator is who it claims to be and has the
// right to move tokens of the from account. It is checked once per operation,
// not per batch line.
func checkAuthorization(ctx storage.Context, from, operator interop.Hash160) {
	if !runtime.CheckWitness(operator) &&
		!common.BytesEqual(runtime.GetCallingScriptHash(), operator) {
		panic(common.ErrWitnessFailed)
	}
	if !common.BytesEqual(from, operator) && !isApprovedForAll(ctx, from, operator) {
		panic(errNotAuthorized)
	}
}

// transfer debits from and credits to. Panics if from doesn't hold enough.
func transfer(ctx storage.Context, from, to interop.Hash160, id, amount int) {
	reduceBalance(ctx, from, id, amount)
	addToBalance(ctx, to, id, amount)
}

// postTransferSingle emits TransferSingle notification and runs the
// acceptance protocol against contract receivers. An empty receiver (burn)
// produces the notification only.
func postTransferSingle(operator, from, to interop.Hash160, id, amount int, data interface{}) {
	runtime.Notify("TransferSingle", operator, from, to, id, amount)
	if isDeployedContract(to) {
		ack := contract.Call(to, "onERC1155Received", contract.All,
			operator, from, id, amount, data)
		requireAck(ack, ackSingle)
	}
}

// postTransferBatch is a batch counterpart of postTransferSingle producing
// exactly one notification and at most one receiver call for the whole batch.
func postTransferBatch(operator, from, to interop.Hash160, ids []int, amounts []int, data interface{}) {
	runtime.Notify("TransferBatch", operator, from, to, ids, amounts)
	if isDeployedContract(to) {
		ack := contract.Call(to, "onERC1155BatchReceived", contract.All,
			operator, from, ids, amounts, data)
		requireAck(ack, ackBatch)
	}
}

// requireAck normalizes every unexpected receiver response to a rejection.
// A receiver that faults or has no handler at all aborts the transfer before
// this check is reached.
func requireAck(ack interface{}, expected string) {
	if ack.(string) != expected {
		panic(errReceiverRejected)
	}
}

func isDeployedContract(addr interop.Hash160) bool {
	return len(addr) == interop.Hash160Len && management.GetContract(addr) != nil
}

func contractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{keyOwner}).(interop.Hash160)
}

func getBalance(ctx storage.Context, owner interop.Hash160, id int) int {
	val := storage.Get(ctx, balanceKey(owner, id))
	if val != nil {
		return val.(int)
	}
	return 0
}

func addToBalance(ctx storage.Context, owner interop.Hash160, id, amount int) {
	storage.Put(ctx, balanceKey(owner, id), getBalance(ctx, owner, id)+amount)
}

func reduceBalance(ctx storage.Context, owner interop.Hash160, id, amount int) {
	balance := getBalance(ctx, owner, id)
	if balance < amount {
		panic(errInsufficientBalance)
	}
	if balance == amount {
		storage.Delete(ctx, balanceKey(owner, id))
	} else {
		storage.Put(ctx, balanceKey(owner, id), balance-amount)
	}
}

func getSupply(ctx storage.Context, id int) int {
	val := storage.Get(ctx, supplyKey(id))
	if val != nil {
		return val.(int)
	}
	return 0
}

func requireValidReceiver(addr interop.Hash160) {
	if len(addr) != interop.Hash160Len || isZero(addr) {
		panic(errInvalidReceiver)
	}
}

func requireValidToken(id int) {
	if id < 0 {
		panic(errInvalidTokenID)
	}
}

func requireValidAmount(amount int) {
	if amount < 0 {
		panic(errNegativeAmount)
	}
}

func isZero(addr interop.Hash160) bool {
	for i := 0; i < len(addr); i++ {
		if addr[i] != 0 {
			return false
		}
	}
	return true
}

func isApprovedForAll(ctx storage.Context, owner, operator interop.Hash160) bool {
	return storage.Get(ctx, approvalKey(owner, operator)) != nil
}

// balanceKey is prefixBalance + owner + token id bytes. Owner part has fixed
// length, so keys of different (owner, id) pairs never collide and all keys
// of one owner share a prefix.
func balanceKey(owner interop.Hash160, id int) []byte {
	return append(append([]byte{prefixBalance}, owner...), convert.ToBytes(id)...)
}

func approvalKey(owner, operator interop.Hash160) []byte {
	return append(append([]byte{prefixApproval}, owner...), operator...)
}

func supplyKey(id int) []byte {
	return append([]byte{prefixSupply}, convert.ToBytes(id)...)
}
