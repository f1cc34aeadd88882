package core

import (
	"testing"
	"time"

	"github.com/novachain/nova-go/pkg/core/dao"
	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/smartcontract/trigger"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/novachain/nova-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRunner is a ScriptRunner that writes the executed script into the
// contract storage and finishes in a preconfigured state.
type testRunner struct {
	result vmstate.State
	hash   util.Uint160
}

func (r *testRunner) Run(t trigger.Type, script []byte, tx *transaction.Transaction, d dao.DAO, gas util.Fixed8) *state.AppExecResult {
	err := d.PutStorageItem(r.hash, []byte("script"), &state.StorageItem{Value: script})
	if err != nil {
		return &state.AppExecResult{VMState: vmstate.Fault}
	}
	return &state.AppExecResult{
		VMState:     r.result,
		GasConsumed: gas,
	}
}

func TestInvocationCommitsOnHalt(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()
	contractHash := util.Uint160{0xc0}
	bc.SetScriptRunner(&testRunner{result: vmstate.Halt, hash: contractHash})

	execCh := make(chan *state.AppExecResult, 1)
	bc.SubscribeToExecutions(execCh)

	tx := transaction.NewInvocationTX([]byte{0x51, 0x52}, 0)
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	// The runner's writes are flushed into the chain state.
	si := bc.GetStorageItem(contractHash, []byte("script"))
	require.NotNil(t, si)
	assert.Equal(t, []byte{0x51, 0x52}, si.Value)

	// The execution result is recorded and distributed.
	aer, err := bc.GetAppExecResult(tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), aer.TxHash)
	assert.Equal(t, trigger.Application, aer.Trigger)
	assert.True(t, aer.VMState.HasFlag(vmstate.Halt))

	select {
	case got := <-execCh:
		assert.Equal(t, tx.Hash(), got.TxHash)
	case <-time.After(4 * time.Second):
		t.Fatal("no execution notification")
	}
}

func TestInvocationDiscardsOnFault(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()
	contractHash := util.Uint160{0xc1}
	bc.SetScriptRunner(&testRunner{result: vmstate.Fault, hash: contractHash})

	tx := transaction.NewInvocationTX([]byte{0x51}, 0)
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	// A faulted execution leaves no state behind.
	require.Nil(t, bc.GetStorageItem(contractHash, []byte("script")))

	// But the execution result is still recorded.
	aer, err := bc.GetAppExecResult(tx.Hash())
	require.NoError(t, err)
	assert.True(t, aer.VMState.HasFlag(vmstate.Fault))
}

func TestInvocationWithoutRunnerFaults(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	tx := transaction.NewInvocationTX([]byte{0x51}, 0)
	b := newBlock(t, bc.GetConfig(), bc.GenesisBlock(), tx)
	require.Equal(t, RelaySucceed, bc.AddBlock(b))

	aer, err := bc.GetAppExecResult(tx.Hash())
	require.NoError(t, err)
	assert.True(t, aer.VMState.HasFlag(vmstate.Fault))
}
