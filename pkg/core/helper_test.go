package core

import (
	"testing"

	"github.com/novachain/nova-go/pkg/config"
	"github.com/novachain/nova-go/pkg/consensus"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/storage"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/novachain/nova-go/pkg/vm/opcode"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testChainConfig(t *testing.T) config.ProtocolConfiguration {
	cfg, err := config.Load("../../config", config.ModeUnitTestNet)
	require.NoError(t, err)
	return cfg.ProtocolConfiguration
}

// newTestChain creates a blockchain over an in-memory store with the unit
// test network configuration.
func newTestChain(t *testing.T) *Blockchain {
	chain, err := NewBlockchain(storage.NewMemoryStore(), testChainConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	return chain
}

// newBlock creates a new block chained to the given previous block carrying
// the given transactions. A miner transaction is prepended when txs don't
// start with one.
func newBlock(t *testing.T, cfg config.ProtocolConfiguration, prev *block.Block, txs ...*transaction.Transaction) *block.Block {
	validators, err := getValidators(cfg)
	require.NoError(t, err)
	nextConsensus, err := getNextConsensusAddress(validators)
	require.NoError(t, err)

	if len(txs) == 0 || txs[0].Type != transaction.MinerType {
		minerTx := transaction.NewMinerTX(prev.Index + 1)
		txs = append([]*transaction.Transaction{minerTx}, txs...)
	}

	b := &block.Block{
		Base: block.Base{
			Version:       0,
			PrevHash:      prev.Hash(),
			Timestamp:     prev.Timestamp + 15,
			Index:         prev.Index + 1,
			ConsensusData: uint64(prev.Index) + 1111,
			NextConsensus: nextConsensus,
			Script: transaction.Witness{
				InvocationScript:   []byte{},
				VerificationScript: []byte{byte(opcode.PUSHT)},
			},
		},
		Transactions: txs,
	}
	require.NoError(t, b.RebuildMerkleRoot())
	return b
}

// newBlockChain creates n empty blocks on top of the given chain's genesis.
func newBlockChain(t *testing.T, bc *Blockchain, n int) []*block.Block {
	blocks := make([]*block.Block, n)
	prev := bc.GenesisBlock()
	for i := 0; i < n; i++ {
		blocks[i] = newBlock(t, bc.GetConfig(), prev)
		prev = blocks[i]
	}
	return blocks
}

// newConsensusPayload creates a consensus payload for the given height with
// a structurally valid witness.
func newConsensusPayload(bc *Blockchain, height uint32) *consensus.Payload {
	return &consensus.Payload{
		Version:   0,
		PrevHash:  bc.CurrentBlockHash(),
		Height:    height,
		Timestamp: height*100 + 1,
		Data:      []byte{1, 2, 3},
		Witness: transaction.Witness{
			InvocationScript:   []byte{},
			VerificationScript: []byte{byte(opcode.PUSHT)},
		},
	}
}

// genesisIssueOutput locates the genesis governing token issue output.
func genesisIssueOutput(bc *Blockchain) (*transaction.Transaction, transaction.Output) {
	issueTx := bc.GenesisBlock().Transactions[3]
	return issueTx, issueTx.Outputs[0]
}

// transferTX moves amount of the governing token from the genesis issue
// output to the given script hash with the change returned to the original
// owner.
func transferTX(t *testing.T, bc *Blockchain, to util.Uint160, amount util.Fixed8) *transaction.Transaction {
	issueTx, out := genesisIssueOutput(bc)
	require.True(t, amount <= out.Amount)

	tx := transaction.NewContractTX()
	tx.AddInput(&transaction.Input{
		PrevHash:  issueTx.Hash(),
		PrevIndex: 0,
	})
	tx.AddOutput(&transaction.Output{
		AssetID:    bc.GoverningTokenID(),
		Amount:     amount,
		ScriptHash: to,
	})
	if amount < out.Amount {
		tx.AddOutput(&transaction.Output{
			AssetID:    bc.GoverningTokenID(),
			Amount:     out.Amount - amount,
			ScriptHash: out.ScriptHash,
		})
	}
	return tx
}

// spendTX spends the given output of a previously persisted transaction,
// sending amount to the given script hash and the change back to the
// original owner.
func spendTX(t *testing.T, bc *Blockchain, prev *transaction.Transaction, prevIndex uint16, to util.Uint160, amount util.Fixed8) *transaction.Transaction {
	out := prev.Outputs[prevIndex]
	require.True(t, amount <= out.Amount)

	tx := transaction.NewContractTX()
	tx.AddInput(&transaction.Input{
		PrevHash:  prev.Hash(),
		PrevIndex: prevIndex,
	})
	tx.AddOutput(&transaction.Output{
		AssetID:    out.AssetID,
		Amount:     amount,
		ScriptHash: to,
	})
	if amount < out.Amount {
		tx.AddOutput(&transaction.Output{
			AssetID:    out.AssetID,
			Amount:     out.Amount - amount,
			ScriptHash: out.ScriptHash,
		})
	}
	return tx
}
