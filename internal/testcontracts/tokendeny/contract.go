package tokendeny

import "github.com/nspcc-dev/neo-go/pkg/interop"

// OnERC1155Received acknowledges the payment with an unexpected value.
func OnERC1155Received(operator, from interop.Hash160, id int, amount int, data any) string {
	return "no thanks"
}

// OnERC1155BatchReceived refuses the payment outright.
func OnERC1155BatchReceived(operator, from interop.Hash160, ids []int, amounts []int, data any) string {
	panic("batch transfers not welcome")
}
