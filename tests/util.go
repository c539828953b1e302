package tests

import (
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	feeTokenPath    = "../contracts/feetoken"
	marketplacePath = "../contracts/marketplace"
	ticketPath      = "../contracts/ticket"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// chainTime returns the timestamp of the topmost block, in milliseconds.
func chainTime(t *testing.T, e *neotest.Executor) int64 {
	h, err := e.Chain.GetHeader(e.Chain.CurrentBlockHash())
	require.NoError(t, err)
	return int64(h.Timestamp)
}

// chainTimeAfter returns a chain timestamp d in the future of the topmost
// block, in milliseconds.
func chainTimeAfter(t *testing.T, e *neotest.Executor, d time.Duration) int64 {
	return chainTime(t, e) + d.Milliseconds()
}

// notification returns the payload of the sole notification with the given
// name in the execution result.
func notification(t *testing.T, aer *state.AppExecResult, name string) *stackitem.Array {
	var item *stackitem.Array
	for _, ev := range aer.Events {
		if ev.Name == name {
			require.Nil(t, item, "duplicate %s notification", name)
			item = ev.Item
		}
	}
	require.NotNil(t, item, "missing %s notification", name)
	return item
}
