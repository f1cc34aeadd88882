package core

import (
	"testing"
	"time"

	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColdStart(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	assert.Equal(t, uint32(0), bc.BlockHeight())
	assert.Equal(t, uint32(0), bc.HeaderHeight())
	assert.Equal(t, bc.GenesisBlock().Hash(), bc.CurrentBlockHash())
	assert.Equal(t, bc.GenesisBlock().Hash(), bc.GetHeaderHash(0))

	// The genesis block is stored and loadable.
	b, err := bc.GetBlock(bc.GenesisBlock().Hash())
	require.NoError(t, err)
	assert.Equal(t, 4, len(b.Transactions))

	// The genesis assets are registered.
	gov := bc.GetAssetState(bc.GoverningTokenID())
	require.NotNil(t, gov)
	assert.Equal(t, transaction.GoverningToken, gov.AssetType)
	utility := bc.GetAssetState(bc.UtilityTokenID())
	require.NotNil(t, utility)
	assert.Equal(t, transaction.UtilityToken, utility.AssetType)

	// The whole governing token supply is credited to the consensus
	// multisig account.
	_, out := genesisIssueOutput(bc)
	acc := bc.GetAccountState(out.ScriptHash)
	require.NotNil(t, acc)
	assert.Equal(t, out.Amount, acc.GetBalance(bc.GoverningTokenID()))
}

func TestAddBlockSequential(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 3)
	for _, b := range blocks {
		assert.Equal(t, RelaySucceed, bc.AddBlock(b))
	}
	assert.Equal(t, uint32(3), bc.BlockHeight())

	// Re-adding any of them reports AlreadyExists with no state change.
	for _, b := range blocks {
		assert.Equal(t, RelayAlreadyExists, bc.AddBlock(b))
	}
	assert.Equal(t, uint32(3), bc.BlockHeight())

	for _, b := range blocks {
		assert.True(t, bc.HasBlock(b.Hash()))
		stored, err := bc.GetBlock(b.Hash())
		require.NoError(t, err)
		assert.Equal(t, b.Hash(), stored.Hash())
	}
}

func TestAddBlockOutOfOrder(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 2)

	// The successor of a missing block can't be verified yet, it's
	// buffered.
	assert.Equal(t, RelayUnableToVerify, bc.AddBlock(blocks[1]))
	assert.Equal(t, uint32(0), bc.BlockHeight())

	// Once the gap is closed both blocks are persisted.
	assert.Equal(t, RelaySucceed, bc.AddBlock(blocks[0]))
	require.Eventually(t, func() bool { return bc.BlockHeight() == 2 },
		4*time.Second, 10*time.Millisecond)
}

func TestAddBlockInvalid(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 1)

	// Break the merkle root.
	bad := *blocks[0]
	bad.MerkleRoot = util.Uint256{9, 9}
	assert.Equal(t, RelayInvalid, bc.AddBlock(&bad))
	assert.Equal(t, uint32(0), bc.BlockHeight())
}

func TestAddHeaders(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 3)
	h1 := blocks[0].Header()
	h2 := blocks[1].Header()
	h3 := blocks[2].Header()

	require.NoError(t, bc.AddHeaders(h1, h2))
	assert.Equal(t, uint32(2), bc.HeaderHeight())
	assert.Equal(t, uint32(0), bc.BlockHeight())
	assert.Equal(t, h2.Hash(), bc.CurrentHeaderHash())

	// Adding a known header again is a no-op, the new one extends the
	// chain.
	require.NoError(t, bc.AddHeaders(h2, h3))
	assert.Equal(t, uint32(3), bc.HeaderHeight())
	assert.Equal(t, h3.Hash(), bc.CurrentHeaderHash())

	// A block that doesn't match the header chain is rejected.
	fake := newBlock(t, bc.GetConfig(), bc.GenesisBlock())
	fake.ConsensusData = 0xdeadbeef
	require.NoError(t, fake.RebuildMerkleRoot())
	assert.Equal(t, RelayInvalid, bc.AddBlock(fake))

	// The matching blocks persist fine.
	for _, b := range blocks {
		assert.Equal(t, RelaySucceed, bc.AddBlock(b))
	}
	assert.Equal(t, uint32(3), bc.BlockHeight())
}

func TestImport(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 5)
	require.NoError(t, bc.Import(blocks))
	assert.Equal(t, uint32(5), bc.BlockHeight())

	// Importing the same blocks again skips them.
	require.NoError(t, bc.Import(blocks))
	assert.Equal(t, uint32(5), bc.BlockHeight())

	// A gap in the imported chain is an error.
	bc2 := newTestChain(t)
	defer bc2.Close()
	require.Error(t, bc2.Import(blocks[1:]))
}

func TestHeaderBatchFlush(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	const n = 2500
	blocks := newBlockChain(t, bc, n)
	headers := make([]*block.Header, n)
	for i, b := range blocks {
		headers[i] = b.Header()
	}
	require.NoError(t, bc.AddHeaders(headers...))
	assert.Equal(t, uint32(n), bc.HeaderHeight())

	// One batch of 2000 hashes has been flushed to the store.
	bc.headerLock.RLock()
	assert.Equal(t, uint32(2000), bc.storedHeaderCount)
	assert.Equal(t, n+1, bc.headerList.Len())
	bc.headerLock.RUnlock()

	for _, b := range blocks {
		require.Equal(t, RelaySucceed, bc.AddBlock(b))
	}
	assert.Equal(t, uint32(n), bc.BlockHeight())

	// The store holds the flushed batch of 2000 header hashes.
	hashes, err := bc.dao.GetHeaderHashes()
	require.NoError(t, err)
	assert.Equal(t, 2000, len(hashes))
}

func TestGetTransaction(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 1)
	require.Equal(t, RelaySucceed, bc.AddBlock(blocks[0]))

	tx := blocks[0].Transactions[0]
	require.True(t, bc.HasTransaction(tx.Hash()))

	got, height, err := bc.GetTransaction(tx.Hash())
	require.NoError(t, err)
	assert.Equal(t, uint32(1), height)
	assert.Equal(t, tx.Hash(), got.Hash())

	// The genesis transactions are there too.
	for _, tx := range bc.GenesisBlock().Transactions {
		require.True(t, bc.HasTransaction(tx.Hash()))
	}
}

func TestGetHeader(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	blocks := newBlockChain(t, bc, 1)
	require.NoError(t, bc.AddHeaders(blocks[0].Header()))

	hdr, err := bc.GetHeader(blocks[0].Hash())
	require.NoError(t, err)
	assert.Equal(t, blocks[0].Hash(), hdr.Hash())

	_, err = bc.GetHeader(util.Uint256{9, 9, 9})
	require.Error(t, err)
}

func TestSubscribeToBlocks(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	ch := make(chan *block.Block, 2)
	bc.SubscribeToBlocks(ch)

	blocks := newBlockChain(t, bc, 1)
	require.Equal(t, RelaySucceed, bc.AddBlock(blocks[0]))

	select {
	case b := <-ch:
		assert.Equal(t, blocks[0].Hash(), b.Hash())
	case <-time.After(4 * time.Second):
		t.Fatal("persisted block not received")
	}

	bc.UnsubscribeFromBlocks(ch)
	blocks2 := newBlockChain(t, bc, 2)
	require.Equal(t, RelayAlreadyExists, bc.AddBlock(blocks2[0]))
}

func TestGetValidatorsColdChain(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	// With no registered validators and no votes the standby set is
	// used.
	vals, err := bc.GetValidators()
	require.NoError(t, err)
	standby, err := getValidators(bc.GetConfig())
	require.NoError(t, err)
	require.Equal(t, len(standby), len(vals))
	for _, s := range standby {
		assert.True(t, vals.Contains(s))
	}
}

func TestRelayConsensusPayload(t *testing.T) {
	bc := newTestChain(t)
	defer bc.Close()

	p := newConsensusPayload(bc, 1)
	assert.Equal(t, RelaySucceed, bc.RelayConsensusPayload(p))
	// Relaying it again hits the relay cache.
	assert.Equal(t, RelayAlreadyExists, bc.RelayConsensusPayload(p))

	// Past payloads are expired, future ones can't be verified.
	old := newConsensusPayload(bc, 0)
	assert.Equal(t, RelayExpired, bc.RelayConsensusPayload(old))
	future := newConsensusPayload(bc, 42)
	assert.Equal(t, RelayUnableToVerify, bc.RelayConsensusPayload(future))
}
