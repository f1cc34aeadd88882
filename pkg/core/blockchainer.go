package core

import (
	"github.com/novachain/nova-go/pkg/consensus"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/mempool"
	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/util"
)

// Blockchainer is an interface that abstracts the implementation of the
// blockchain ledger for its collaborators (the networking layer, the
// consensus service, RPC handlers).
type Blockchainer interface {
	AddHeaders(...*block.Header) error
	AddBlock(*block.Block) RelayResult
	BlockHeight() uint32
	CurrentBlockHash() util.Uint256
	CurrentHeaderHash() util.Uint256
	GetBlock(hash util.Uint256) (*block.Block, error)
	GetHeaderHash(int) util.Uint256
	GetHeader(hash util.Uint256) (*block.Header, error)
	GetAccountState(util.Uint160) *state.Account
	GetAssetState(util.Uint256) *state.Asset
	GetContractState(util.Uint160) *state.Contract
	GetStorageItem(scripthash util.Uint160, key []byte) *state.StorageItem
	GetTransaction(util.Uint256) (*transaction.Transaction, uint32, error)
	GetUnspentCoinState(util.Uint256) *state.UnspentCoin
	GetValidators() (keys.PublicKeys, error)
	HasBlock(util.Uint256) bool
	HasTransaction(util.Uint256) bool
	HeaderHeight() uint32
	GetMemPool() *mempool.Pool
	Import(blocks []*block.Block) error
	RelayTransaction(*transaction.Transaction) RelayResult
	RelayConsensusPayload(*consensus.Payload) RelayResult
	SubscribeToBlocks(ch chan<- *block.Block)
	UnsubscribeFromBlocks(ch chan<- *block.Block)
	SubscribeToExecutions(ch chan<- *state.AppExecResult)
	UnsubscribeFromExecutions(ch chan<- *state.AppExecResult)
	VerifyTx(*transaction.Transaction, *block.Block) error
	Close()
}

// Blockchain is the canonical Blockchainer implementation.
var _ Blockchainer = (*Blockchain)(nil)
