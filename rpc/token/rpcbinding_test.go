package token

import (
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func transferSingleItem(operator, from, to stackitem.Item, id, amount int64) *stackitem.Array {
	return stackitem.NewArray([]stackitem.Item{
		operator,
		from,
		to,
		stackitem.Make(id),
		stackitem.Make(amount),
	})
}

func TestTransferSingleEventsFromApplicationLog(t *testing.T) {
	operator := util.Uint160{1, 2, 3}
	acc := util.Uint160{4, 5, 6}

	// A mint (empty from) and a burn (empty to) along with a regular
	// transfer in a single execution.
	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{
				{
					Name: "TransferSingle",
					Item: transferSingleItem(
						stackitem.Make(operator.BytesBE()),
						stackitem.Null{},
						stackitem.Make(acc.BytesBE()),
						7, 42),
				},
				{
					Name: "TransferSingle",
					Item: transferSingleItem(
						stackitem.Make(operator.BytesBE()),
						stackitem.Make(acc.BytesBE()),
						stackitem.Null{},
						7, 10),
				},
				{
					Name: "TransferSingle",
					Item: transferSingleItem(
						stackitem.Make(operator.BytesBE()),
						stackitem.Make(operator.BytesBE()),
						stackitem.Make(acc.BytesBE()),
						1, 5),
				},
			},
		}},
	}

	events, err := TransferSingleEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, events, 3)

	require.Equal(t, operator, events[0].Operator)
	require.Equal(t, util.Uint160{}, events[0].From)
	require.Equal(t, acc, events[0].To)
	require.Equal(t, big.NewInt(7), events[0].ID)
	require.Equal(t, big.NewInt(42), events[0].Amount)

	require.Equal(t, acc, events[1].From)
	require.Equal(t, util.Uint160{}, events[1].To)
	require.Equal(t, big.NewInt(10), events[1].Amount)

	require.Equal(t, operator, events[2].From)
	require.Equal(t, acc, events[2].To)
}

func TestTransferBatchEventsFromApplicationLog(t *testing.T) {
	operator := util.Uint160{1, 2, 3}
	acc := util.Uint160{4, 5, 6}

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Events: []state.NotificationEvent{{
				Name: "TransferBatch",
				Item: stackitem.NewArray([]stackitem.Item{
					stackitem.Make(operator.BytesBE()),
					stackitem.Null{},
					stackitem.Make(acc.BytesBE()),
					stackitem.NewArray([]stackitem.Item{stackitem.Make(1), stackitem.Make(2)}),
					stackitem.NewArray([]stackitem.Item{stackitem.Make(10), stackitem.Make(20)}),
				}),
			}},
		}},
	}

	events, err := TransferBatchEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, util.Uint160{}, events[0].From)
	require.Equal(t, acc, events[0].To)
	require.Equal(t, []*big.Int{big.NewInt(1), big.NewInt(2)}, events[0].IDs)
	require.Equal(t, []*big.Int{big.NewInt(10), big.NewInt(20)}, events[0].Amounts)
}
