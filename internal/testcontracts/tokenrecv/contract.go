package tokenrecv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type Call struct {
	Operator interop.Hash160
	From     interop.Hash160
	IDs      []int
	Amounts  []int
	Data     any
}

func OnERC1155Received(operator, from interop.Hash160, id int, amount int, data any) string {
	storage.Put(storage.GetContext(), "single", std.Serialize(Call{
		Operator: operator,
		From:     from,
		IDs:      []int{id},
		Amounts:  []int{amount},
		Data:     data,
	}))
	return "onERC1155Received"
}

func OnERC1155BatchReceived(operator, from interop.Hash160, ids []int, amounts []int, data any) string {
	storage.Put(storage.GetContext(), "batch", std.Serialize(Call{
		Operator: operator,
		From:     from,
		IDs:      ids,
		Amounts:  amounts,
		Data:     data,
	}))
	return "onERC1155BatchReceived"
}

func GetSingle() Call {
	return getCall("single")
}

func GetBatch() Call {
	return getCall("batch")
}

func getCall(key string) Call {
	val := storage.Get(storage.GetReadOnlyContext(), key)
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}
