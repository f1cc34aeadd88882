package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/novachain/nova-go/pkg/config"
	"github.com/novachain/nova-go/pkg/consensus"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/dao"
	"github.com/novachain/nova-go/pkg/core/mempool"
	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/core/storage"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/smartcontract"
	"github.com/novachain/nova-go/pkg/smartcontract/trigger"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/novachain/nova-go/pkg/vm/vmstate"
	uatomic "go.uber.org/atomic"
	"go.uber.org/zap"
)

// Tuning parameters.
const (
	headerBatchCount = 2000
	version          = "0.1.0"

	// decrementInterval is the distance (in blocks) between generation
	// amount reductions of the utility token.
	decrementInterval = 2000000

	// maxValidators is the hard cap on the derived validator count.
	maxValidators = 1024

	// registeredAssetLifetime is the number of blocks a registered asset
	// stays valid for.
	registeredAssetLifetime = 2 * decrementInterval

	// relayCacheSize is the capacity of the consensus payload relay cache.
	relayCacheSize = 100

	// maxRelayDistance is how far away from the header chain tip a block
	// can be to still get relayed to peers on arrival.
	maxRelayDistance = 100

	// mempool default capacity.
	defaultMemPoolSize = 50000
)

// genAmount is the utility token generation schedule, one entry per
// decrement interval.
var genAmount = []int{8, 7, 6, 5, 4, 3, 2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

// Blockchain represents the blockchain ledger. It receives blocks, headers,
// transactions and consensus payloads, validates them, applies blocks to the
// persistent state machine and notifies its subscribers.
type Blockchain struct {
	config config.ProtocolConfiguration

	// Event queues of the single-threaded message loop. The loop owns all
	// the non-mempool state below, headers, blocks and consensus
	// payloads preempt transactions.
	highPrio chan bcEvent
	lowPrio  chan bcEvent
	// internal holds self-sent events drained before the queues, which
	// keeps them FIFO with the currently processed message.
	internal []bcEvent

	stopCh  chan struct{}
	runDone chan struct{}

	log *zap.Logger

	// Data access object for CRUD operations around storage.
	dao *dao.Simple

	// Current index/height of the highest persisted block. Always
	// accessed via atomics, written only by the message loop.
	blockHeight uatomic.Uint32

	// Write-protection of the header chain state for the outside readers,
	// the message loop is the only writer.
	headerLock sync.RWMutex

	// headerList is an ordered list of all known canonical header hashes
	// indexed by block height from 0.
	headerList *HeaderHashList

	// Number of headers persisted in HeaderHashList batches, always a
	// multiple of headerBatchCount.
	storedHeaderCount uint32

	// Verified blocks waiting for their predecessors, keyed by hash.
	blockCache map[util.Uint256]*block.Block

	// Blocks past the header chain that can't be verified yet, keyed by
	// index.
	blockCacheUnverified map[uint32]*block.Block

	memPool mempool.Pool

	// relayCache is an LRU cache of recently relayed consensus payloads.
	relayCache *lru.Cache

	// Subscribers, owned by the message loop.
	blockSubs map[chan<- *block.Block]bool
	execSubs  map[chan<- *state.AppExecResult]bool

	// External collaborators, all optional.
	runner           ScriptRunner
	relayer          Relayer
	taskCompleter    HeaderTaskCompleter
	consensusHandler ConsensusHandler
	policyCheck      func(*transaction.Transaction) bool

	governingTokenID util.Uint256
	utilityTokenID   util.Uint256
	genesisBlock     *block.Block
}

// NewBlockchain returns a new blockchain object the will store and process
// the given storage with the given configuration and start its message
// processing loop.
func NewBlockchain(s storage.Store, cfg config.ProtocolConfiguration, log *zap.Logger) (*Blockchain, error) {
	if log == nil {
		return nil, errors.New("empty logger")
	}
	if cfg.MemPoolSize <= 0 {
		cfg.MemPoolSize = defaultMemPoolSize
		log.Info("mempool size is not set or wrong, setting default value", zap.Int("MemPoolSize", cfg.MemPoolSize))
	}
	bc := &Blockchain{
		config:               cfg,
		highPrio:             make(chan bcEvent, 8),
		lowPrio:              make(chan bcEvent, 64),
		stopCh:               make(chan struct{}),
		runDone:              make(chan struct{}),
		log:                  log,
		dao:                  dao.NewSimple(s),
		blockCache:           make(map[util.Uint256]*block.Block),
		blockCacheUnverified: make(map[uint32]*block.Block),
		memPool:              mempool.NewMemPool(cfg.MemPoolSize),
		blockSubs:            make(map[chan<- *block.Block]bool),
		execSubs:             make(map[chan<- *state.AppExecResult]bool),
	}
	bc.relayCache, _ = lru.New(relayCacheSize) // Never errors for positive size.

	bc.governingTokenID = governingTokenTX().Hash()
	bc.utilityTokenID = utilityTokenTX().Hash()

	genesis, err := createGenesisBlock(cfg)
	if err != nil {
		return nil, err
	}
	bc.genesisBlock = genesis

	if err := bc.init(); err != nil {
		return nil, err
	}

	go bc.run()

	return bc, nil
}

func (bc *Blockchain) init() error {
	ver, err := bc.dao.GetVersion()
	if err != nil {
		if err != storage.ErrKeyNotFound {
			return err
		}
		// A fresh storage, persist the genesis block.
		bc.log.Info("no storage version found! creating genesis block")
		if err = bc.dao.PutVersion(version); err != nil {
			return err
		}
		bc.headerList = NewHeaderHashList()
		return bc.storeBlockUnchecked(bc.genesisBlock)
	}
	if ver != version {
		return fmt.Errorf("storage version mismatch: %s != %s", version, ver)
	}

	// At this point a matching version was found in the storage, a fully
	// fresh storage has been handled above, so the chain state is
	// restored from what is stored.
	bHeight, err := bc.dao.GetCurrentBlockHeight()
	if err != nil {
		return err
	}
	bc.blockHeight.Store(bHeight)

	hashes, err := bc.dao.GetHeaderHashes()
	if err != nil {
		return err
	}

	bc.headerList = NewHeaderHashList(hashes...)
	bc.storedHeaderCount = uint32(len(hashes))

	currHeaderHeight, currHeaderHash, err := bc.dao.GetCurrentHeaderHeight()
	if err != nil {
		return err
	}
	if bc.storedHeaderCount == 0 && currHeaderHeight == 0 {
		bc.headerList.Add(currHeaderHash)
	}

	// There is a high chance that the Node is stopped before the next
	// batch of 2000 headers was stored. Via the currentHeaders stored we
	// can sync that with stored blocks.
	if currHeaderHeight >= bc.storedHeaderCount {
		hash := currHeaderHash
		var targetHash util.Uint256
		if bc.headerList.Len() > 0 {
			targetHash = bc.headerList.Get(bc.headerList.Len() - 1)
		} else {
			targetHash = bc.genesisBlock.Hash()
			bc.headerList.Add(targetHash)
		}
		headers := make([]*block.Header, 0)

		for hash != targetHash {
			header, err := bc.GetHeader(hash)
			if err != nil {
				return fmt.Errorf("could not get header %s: %w", hash, err)
			}
			headers = append(headers, header)
			hash = header.PrevHash
		}
		headerSliceReverse(headers)
		for _, h := range headers {
			bc.headerList.Add(h.Hash())
		}
	}

	updateBlockHeightMetric(bHeight)
	updateHeaderHeightMetric(uint32(bc.headerList.Len() - 1))
	return nil
}

// run is the event loop that serializes all the chain state mutation, it
// drains self-sent events first, then the high priority queue and only then
// the normal one.
func (bc *Blockchain) run() {
	defer close(bc.runDone)
	for {
		if len(bc.internal) > 0 {
			ev := bc.internal[0]
			bc.internal = bc.internal[1:]
			bc.handleEvent(ev)
			continue
		}
		select {
		case ev := <-bc.highPrio:
			bc.handleEvent(ev)
			continue
		case <-bc.stopCh:
			return
		default:
		}
		select {
		case ev := <-bc.highPrio:
			bc.handleEvent(ev)
		case ev := <-bc.lowPrio:
			bc.handleEvent(ev)
		case <-bc.stopCh:
			return
		}
	}
}

// selfSend enqueues an event into the internal queue preserving FIFO with
// the currently processed message.
func (bc *Blockchain) selfSend(ev bcEvent) {
	bc.internal = append(bc.internal, ev)
}

func (bc *Blockchain) handleEvent(ev bcEvent) {
	switch e := ev.(type) {
	case headersEvent:
		e.err <- bc.processHeaders(e.headers)
	case blockEvent:
		res := bc.handleNewBlock(e.block)
		if e.result != nil {
			e.result <- res
		}
	case txEvent:
		e.result <- bc.handleNewTransaction(e.tx)
	case consensusEvent:
		e.result <- bc.handleNewConsensus(e.payload)
	case importEvent:
		e.err <- bc.handleImport(e.blocks)
	case reverifyEvent:
		for _, tx := range e.txs {
			// Transactions that no longer verify are silently
			// dropped.
			_ = bc.handleNewTransaction(tx)
		}
	case subBlockEvent:
		if e.unsub {
			delete(bc.blockSubs, e.ch)
		} else {
			bc.blockSubs[e.ch] = true
		}
		close(e.synced)
	case subExecEvent:
		if e.unsub {
			delete(bc.execSubs, e.ch)
		} else {
			bc.execSubs[e.ch] = true
		}
		close(e.synced)
	}
}

// Close stops the event loop, persists the accumulated changes and closes
// the underlying storage.
func (bc *Blockchain) Close() {
	close(bc.stopCh)
	<-bc.runDone
	if _, err := bc.dao.Persist(); err != nil {
		bc.log.Error("failed to persist on shutdown", zap.Error(err))
	}
	if err := bc.dao.Store.Close(); err != nil {
		bc.log.Error("failed to close storage", zap.Error(err))
	}
}

// AddHeaders processes the given headers and adds them to the header chain,
// replying with an error if any of them fails verification.
func (bc *Blockchain) AddHeaders(headers ...*block.Header) error {
	errCh := make(chan error, 1)
	bc.highPrio <- headersEvent{headers: headers, err: errCh}
	return <-errCh
}

// AddBlock submits the given block to the ledger and reports the relay
// outcome back.
func (bc *Blockchain) AddBlock(block *block.Block) RelayResult {
	ch := make(chan RelayResult, 1)
	bc.highPrio <- blockEvent{block: block, result: ch}
	return <-ch
}

// RelayTransaction submits the given transaction to the ledger and reports
// the relay outcome back.
func (bc *Blockchain) RelayTransaction(t *transaction.Transaction) RelayResult {
	ch := make(chan RelayResult, 1)
	bc.lowPrio <- txEvent{tx: t, result: ch}
	return <-ch
}

// RelayConsensusPayload submits the given consensus payload to the ledger,
// forwarding it to the consensus handler and the rest of the network when it
// verifies.
func (bc *Blockchain) RelayConsensusPayload(p *consensus.Payload) RelayResult {
	ch := make(chan RelayResult, 1)
	bc.highPrio <- consensusEvent{payload: p, result: ch}
	return <-ch
}

// Import bulk-imports the given blocks skipping the ones the ledger already
// has and requiring the others to be strictly sequential.
func (bc *Blockchain) Import(blocks []*block.Block) error {
	errCh := make(chan error, 1)
	bc.highPrio <- importEvent{blocks: blocks, err: errCh}
	return <-errCh
}

// SubscribeToBlocks adds the given channel to the persisted block event
// broadcasting, so when a new block is persisted it will be sent to it.
// The subscriber must be able to keep up, the event delivery is synchronous
// with block processing.
func (bc *Blockchain) SubscribeToBlocks(ch chan<- *block.Block) {
	synced := make(chan struct{})
	bc.lowPrio <- subBlockEvent{ch: ch, synced: synced}
	<-synced
}

// UnsubscribeFromBlocks removes the given channel from the persisted block
// event broadcasting.
func (bc *Blockchain) UnsubscribeFromBlocks(ch chan<- *block.Block) {
	synced := make(chan struct{})
	bc.lowPrio <- subBlockEvent{ch: ch, unsub: true, synced: synced}
	<-synced
}

// SubscribeToExecutions adds the given channel to the application execution
// result broadcasting.
func (bc *Blockchain) SubscribeToExecutions(ch chan<- *state.AppExecResult) {
	synced := make(chan struct{})
	bc.lowPrio <- subExecEvent{ch: ch, synced: synced}
	<-synced
}

// UnsubscribeFromExecutions removes the given channel from the application
// execution result broadcasting.
func (bc *Blockchain) UnsubscribeFromExecutions(ch chan<- *state.AppExecResult) {
	synced := make(chan struct{})
	bc.lowPrio <- subExecEvent{ch: ch, unsub: true, synced: synced}
	<-synced
}

// SetScriptRunner sets the VM implementation used to process invocation
// transactions.
func (bc *Blockchain) SetScriptRunner(r ScriptRunner) {
	bc.runner = r
}

// SetRelayer sets the local node used to broadcast accepted inventories.
func (bc *Blockchain) SetRelayer(r Relayer) {
	bc.relayer = r
}

// SetHeaderTaskCompleter sets the synchronization manager notified about
// processed header batches.
func (bc *Blockchain) SetHeaderTaskCompleter(t HeaderTaskCompleter) {
	bc.taskCompleter = t
}

// SetConsensusHandler sets the consensus service that gets verified
// consensus payloads and persist notifications.
func (bc *Blockchain) SetConsensusHandler(h ConsensusHandler) {
	bc.consensusHandler = h
}

// SetPolicyCheck sets an additional transaction acceptance policy predicate.
func (bc *Blockchain) SetPolicyCheck(f func(*transaction.Transaction) bool) {
	bc.policyCheck = f
}

// processHeaders processes the given headers, extending the header chain
// with every one of them that verifies. A header that doesn't fit the chain
// stops the processing, but the valid prefix is still saved.
func (bc *Blockchain) processHeaders(headers []*block.Header) error {
	var (
		lastHeader *block.Header
		err        error
	)

	for _, h := range headers {
		height := bc.headerListLen()
		if int(h.Index) < height {
			continue
		}
		if int(h.Index) > height {
			break
		}
		if err = bc.verifyHeader(h); err != nil {
			break
		}
		if e := bc.addHeaderToChain(h); e != nil {
			return e
		}
		lastHeader = h
	}

	if lastHeader != nil {
		if serr := bc.saveHeaderHashList(); serr != nil {
			return serr
		}
		if _, perr := bc.dao.Persist(); perr != nil {
			return perr
		}
		bc.log.Debug("done processing headers",
			zap.Int("headerIndex", bc.headerListLen()-1),
			zap.Uint32("blockHeight", bc.BlockHeight()))
		if bc.taskCompleter != nil {
			bc.taskCompleter.HeaderTaskCompleted()
		}
	}
	return err
}

// addHeaderToChain appends a verified header to the header chain, storing
// its trimmed form and updating the current header index.
func (bc *Blockchain) addHeaderToChain(h *block.Header) error {
	hdrBlock := &block.Block{Base: h.Base}
	if err := bc.dao.StoreAsBlock(hdrBlock, 0); err != nil {
		return err
	}
	if err := bc.dao.PutCurrentHeader(h.Hash(), h.Index); err != nil {
		return err
	}
	bc.headerLock.Lock()
	bc.headerList.Add(h.Hash())
	bc.headerLock.Unlock()
	updateHeaderHeightMetric(h.Index)
	return nil
}

// saveHeaderHashList flushes the batches of 2000 header hashes accumulated
// past storedHeaderCount into the store.
func (bc *Blockchain) saveHeaderHashList() error {
	bc.headerLock.Lock()
	defer bc.headerLock.Unlock()
	for bc.headerList.Len()-int(bc.storedHeaderCount) >= headerBatchCount {
		err := bc.dao.PutHeaderHashes(bc.storedHeaderCount,
			bc.headerList.Slice(int(bc.storedHeaderCount), int(bc.storedHeaderCount)+headerBatchCount))
		if err != nil {
			return err
		}
		bc.storedHeaderCount += headerBatchCount
	}
	return nil
}

// handleNewBlock is the core of the block ingestion state machine, it
// reconciles out-of-order blocks, the header chain and the pending caches
// into a linearly advancing ledger.
func (bc *Blockchain) handleNewBlock(b *block.Block) RelayResult {
	if b.Index <= bc.BlockHeight() {
		return RelayAlreadyExists
	}
	if _, ok := bc.blockCache[b.Hash()]; ok {
		return RelayAlreadyExists
	}
	headerLen := uint32(bc.headerListLen())
	if b.Index > headerLen {
		// Can't verify this block against the header chain yet, buffer
		// it until its predecessors arrive.
		bc.blockCacheUnverified[b.Index] = b
		return RelayUnableToVerify
	}
	if b.Index == headerLen {
		// The block is ahead of the header chain, it has to carry its
		// own proof.
		if bc.config.VerifyBlocks {
			if err := bc.verifyBlock(b); err != nil {
				bc.log.Warn("block verification failed",
					zap.Stringer("hash", b.Hash()),
					zap.Error(err))
				return RelayInvalid
			}
		}
	} else if !b.Hash().Equals(bc.headerHash(int(b.Index))) {
		return RelayInvalid
	}

	withinRelayWindow := b.Index+maxRelayDistance >= headerLen

	if b.Index == bc.BlockHeight()+1 {
		for blk := b; blk != nil; {
			if err := bc.persistBlock(blk); err != nil {
				bc.log.Warn("block persist failed",
					zap.Stringer("hash", blk.Hash()),
					zap.Uint32("index", blk.Index),
					zap.Error(err))
				return RelayInvalid
			}
			next, ok := bc.blockCache[bc.headerHash(int(bc.BlockHeight()+1))]
			if !ok {
				blk = nil
			} else {
				blk = next
			}
		}
		if err := bc.saveHeaderHashList(); err != nil {
			return RelayInvalid
		}
		// Relay only the first block of the persisted chain and only
		// when reasonably close to the chain tip.
		if withinRelayWindow && bc.relayer != nil {
			bc.relayer.RelayDirectly(b)
		}
		if ub, ok := bc.blockCacheUnverified[bc.BlockHeight()+1]; ok {
			delete(bc.blockCacheUnverified, ub.Index)
			bc.selfSend(blockEvent{block: ub})
		}
		return RelaySucceed
	}

	// Not contiguous yet, cache it until the gap closes.
	bc.blockCache[b.Hash()] = b
	if withinRelayWindow && bc.relayer != nil {
		bc.relayer.RelayDirectly(b)
	}
	if b.Index == headerLen {
		if err := bc.addHeaderToChain(b.Header()); err != nil {
			return RelayInvalid
		}
		if err := bc.saveHeaderHashList(); err != nil {
			return RelayInvalid
		}
	}
	return RelaySucceed
}

// persistBlock verifies the transactions of a contiguous block when
// configured to do so, applies it to the state machine and distributes the
// resulting notifications.
func (bc *Blockchain) persistBlock(b *block.Block) error {
	if bc.config.VerifyTransactions {
		for _, tx := range b.Transactions {
			if err := bc.VerifyTx(tx, b); err != nil {
				return fmt.Errorf("transaction %s failed to verify: %w", tx.Hash().StringLE(), err)
			}
		}
	}
	start := time.Now()
	aers, err := bc.storeBlock(b)
	if err != nil {
		return err
	}
	updatePersistMetric(float64(time.Since(start)) / float64(time.Millisecond))
	updateBlockHeightMetric(b.Index)
	bc.log.Info("blockchain persist completed",
		zap.Uint32("persistedBlock", b.Index),
		zap.Int("persistedTxs", len(b.Transactions)),
		zap.Duration("took", time.Since(start)))

	bc.onPersistCompleted(b, aers)
	return nil
}

// storeBlockUnchecked is used for the genesis block only, when there is no
// message loop running yet.
func (bc *Blockchain) storeBlockUnchecked(b *block.Block) error {
	_, err := bc.storeBlock(b)
	return err
}

// storeBlock performs the deterministic per-block state transition: it
// opens a fresh data cache over the current state, applies the block record,
// every transaction and the header index update to it and commits the whole
// changeset atomically. Broken chain state discovered here is not
// recoverable, so it aborts the process.
func (bc *Blockchain) storeBlock(b *block.Block) ([]*state.AppExecResult, error) {
	cache := dao.NewCached(bc.dao)
	appExecResults := make([]*state.AppExecResult, 0, 4)

	var sysfee uint32
	if !b.PrevHash.Equals(util.Uint256{}) {
		sysfee = bc.getSysFeeAmountByHash(b.PrevHash)
	}
	for _, tx := range b.Transactions {
		sysfee += uint32(bc.SystemFee(tx).IntegralValue())
	}

	if err := cache.StoreAsBlock(b, sysfee); err != nil {
		return nil, err
	}
	if err := cache.StoreAsCurrentBlock(b); err != nil {
		return nil, err
	}

	for _, tx := range b.Transactions {
		if err := cache.StoreAsTransaction(tx, b.Index); err != nil {
			return nil, err
		}
		if err := cache.PutUnspentCoinState(tx.Hash(), state.NewUnspentCoin(len(tx.Outputs))); err != nil {
			return nil, err
		}

		// Process TX outputs.
		if err := bc.processOutputs(tx, cache); err != nil {
			return nil, err
		}

		// Process TX inputs that are grouped by previous hash.
		for prevHash, inputs := range tx.GroupInputsByPrevHash() {
			prevTX, prevTXHeight, err := cache.GetTransaction(prevHash)
			if err != nil {
				bc.log.Fatal("could not find previous TX",
					zap.Stringer("hash", prevHash),
					zap.Stringer("tx", tx.Hash()))
			}
			unspent, err := cache.GetUnspentCoinState(prevHash)
			if err != nil {
				bc.log.Fatal("could not find unspent coins",
					zap.Stringer("hash", prevHash))
			}
			for _, input := range inputs {
				unspent.States[input.PrevIndex] |= state.CoinSpent
				prevTXOutput := prevTX.Outputs[input.PrevIndex]
				account, err := cache.GetAccountStateOrNew(prevTXOutput.ScriptHash)
				if err != nil {
					return nil, err
				}

				if prevTXOutput.AssetID.Equals(bc.governingTokenID) {
					spentCoin, err := cache.GetSpentCoinsOrNew(prevHash, prevTXHeight)
					if err != nil {
						return nil, err
					}
					spentCoin.Items[input.PrevIndex] = b.Index
					if err = cache.PutSpentCoinState(prevHash, spentCoin); err != nil {
						return nil, err
					}
					if err = bc.processTXWithValidatorsSubtract(account, cache, prevTXOutput.Amount); err != nil {
						return nil, err
					}
				}

				account.Balances[prevTXOutput.AssetID] -= prevTXOutput.Amount
				if err = cache.PutAccountState(account); err != nil {
					return nil, err
				}
			}
			if err = cache.PutUnspentCoinState(prevHash, unspent); err != nil {
				return nil, err
			}
		}

		// Process the underlying type of the TX.
		switch t := tx.Data.(type) {
		case *transaction.RegisterTX:
			err := cache.PutAssetState(&state.Asset{
				ID:         tx.Hash(),
				AssetType:  t.AssetType,
				Name:       t.Name,
				Amount:     t.Amount,
				Precision:  t.Precision,
				Owner:      t.Owner,
				Admin:      t.Admin,
				Expiration: b.Index + registeredAssetLifetime,
			})
			if err != nil {
				return nil, err
			}
		case *transaction.IssueTX:
			results, err := bc.transactionResults(cache, tx)
			if err != nil {
				return nil, err
			}
			for _, res := range results {
				if res.Amount < 0 {
					asset, err := cache.GetAssetState(res.AssetID)
					if asset == nil || err != nil {
						return nil, fmt.Errorf("issue failed: no asset %s", res.AssetID.StringLE())
					}
					asset.Available -= res.Amount
					if err := cache.PutAssetState(asset); err != nil {
						return nil, err
					}
				}
			}
		case *transaction.ClaimTX:
			// Remove claimed NOVA from spent coins making it
			// unavailable for a second claim.
			for prevHash, claims := range transaction.GroupInputsByPrevHash(t.Claims) {
				scs, err := cache.GetSpentCoinState(prevHash)
				if err != nil {
					// Uncommitted claims are a fatal
					// inconsistency, the block has already
					// been verified.
					bc.log.Fatal("no spent coin state for claim",
						zap.Stringer("tx", tx.Hash()),
						zap.Stringer("input", prevHash))
				}
				unspent, err := cache.GetUnspentCoinState(prevHash)
				if err != nil {
					bc.log.Fatal("no unspent coin state for claim",
						zap.Stringer("input", prevHash))
				}
				for _, claim := range claims {
					delete(scs.Items, claim.PrevIndex)
					unspent.States[claim.PrevIndex] |= state.CoinClaimed
				}
				if err = cache.PutUnspentCoinState(prevHash, unspent); err != nil {
					return nil, err
				}
				if len(scs.Items) > 0 {
					err = cache.PutSpentCoinState(prevHash, scs)
				} else {
					err = cache.DeleteSpentCoinState(prevHash)
				}
				if err != nil {
					return nil, err
				}
			}
		case *transaction.EnrollmentTX:
			if err := processEnrollmentTX(cache, t); err != nil {
				return nil, err
			}
		case *transaction.StateTX:
			if err := bc.processStateTX(cache, t); err != nil {
				return nil, err
			}
		case *transaction.PublishTX:
			var properties smartcontract.PropertyState
			if t.NeedStorage {
				properties |= smartcontract.HasStorage
			}
			contract := &state.Contract{
				Script:      t.Script,
				ParamList:   t.ParamList,
				ReturnType:  t.ReturnType,
				Properties:  properties,
				Name:        t.Name,
				CodeVersion: t.CodeVersion,
				Author:      t.Author,
				Email:       t.Email,
				Description: t.Description,
			}
			if err := cache.PutContractState(contract); err != nil {
				return nil, err
			}
		case *transaction.InvocationTX:
			// The VM is given a cloned view of the state, its writes
			// only reach the block changeset when the script halts
			// normally.
			engineDao := cache.GetWrapped()
			var aer *state.AppExecResult
			if bc.runner != nil {
				aer = bc.runner.Run(trigger.Application, t.Script, tx, engineDao, t.Gas)
			} else {
				aer = &state.AppExecResult{VMState: vmstate.Fault}
			}
			aer.TxHash = tx.Hash()
			aer.Trigger = trigger.Application
			if aer.VMState.HasFlag(vmstate.Halt) {
				if _, err := engineDao.Persist(); err != nil {
					return nil, err
				}
			} else {
				bc.log.Warn("contract invocation failed",
					zap.Stringer("tx", tx.Hash()),
					zap.Uint32("block", b.Index))
			}
			if err := cache.PutAppExecResult(aer); err != nil {
				return nil, err
			}
			appExecResults = append(appExecResults, aer)
		}
	}

	// A block can arrive before its header, extend the header chain
	// directly in that case.
	bc.headerLock.Lock()
	if int(b.Index) == bc.headerList.Len() {
		bc.headerList.Add(b.Hash())
		if err := cache.PutCurrentHeader(b.Hash(), b.Index); err != nil {
			bc.headerLock.Unlock()
			return nil, err
		}
		updateHeaderHeightMetric(b.Index)
	}
	bc.headerLock.Unlock()

	if _, err := cache.Persist(); err != nil {
		return nil, err
	}
	// Commit the block changeset to the backing store, all or nothing.
	if _, err := bc.dao.Persist(); err != nil {
		bc.log.Fatal("snapshot commit failed", zap.Error(err))
	}
	bc.blockHeight.Store(b.Index)
	return appExecResults, nil
}

// processOutputs credits the outputs of the given transaction to the
// receiving accounts, bumping the votes of the voted validators for
// governing token outputs.
func (bc *Blockchain) processOutputs(tx *transaction.Transaction, cache *dao.Cached) error {
	for _, output := range tx.Outputs {
		account, err := cache.GetAccountStateOrNew(output.ScriptHash)
		if err != nil {
			return err
		}
		account.Balances[output.AssetID] += output.Amount
		if err = cache.PutAccountState(account); err != nil {
			return err
		}
		if output.AssetID.Equals(bc.governingTokenID) && len(account.Votes) > 0 {
			if err = processTXWithValidatorsAdd(account, cache, output.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

func processTXWithValidatorsAdd(account *state.Account, cache *dao.Cached, output util.Fixed8) error {
	for _, vote := range account.Votes {
		validator, err := cache.GetValidatorStateOrNew(vote)
		if err != nil {
			return err
		}
		validator.Votes += output
		if err = cache.PutValidatorState(validator); err != nil {
			return err
		}
	}
	return modAccountVotes(account, cache, output)
}

func (bc *Blockchain) processTXWithValidatorsSubtract(account *state.Account, cache *dao.Cached, output util.Fixed8) error {
	if len(account.Votes) == 0 {
		return nil
	}
	for _, vote := range account.Votes {
		validator, err := cache.GetValidatorStateOrNew(vote)
		if err != nil {
			return err
		}
		validator.Votes -= output
		if validator.UnregisteredAndHasNoVotes() {
			if err := cache.DeleteValidatorState(validator); err != nil {
				return err
			}
		} else if err := cache.PutValidatorState(validator); err != nil {
			return err
		}
	}
	return modAccountVotes(account, cache, -output)
}

// modAccountVotes adds the given value to the validators count entry of the
// account's vote multiplicity.
func modAccountVotes(account *state.Account, cache *dao.Cached, value util.Fixed8) error {
	if len(account.Votes) == 0 {
		return nil
	}
	vc, err := cache.GetValidatorsCount()
	if err != nil {
		return err
	}
	vc[len(account.Votes)-1] += value
	return cache.PutValidatorsCount(vc)
}

func (bc *Blockchain) processStateTX(cache *dao.Cached, t *transaction.StateTX) error {
	for _, desc := range t.Descriptors {
		switch desc.Type {
		case transaction.Account:
			if err := bc.processAccountStateDescriptor(desc, cache); err != nil {
				return err
			}
		case transaction.Validator:
			if err := processValidatorStateDescriptor(desc, cache); err != nil {
				return err
			}
		}
	}
	return nil
}

// processAccountStateDescriptor implements the vote reassignment: the
// account's balance is removed from the validators it voted for before,
// the vote multiplicity stake is moved and the balance is added to the new
// votes, creating validator entries as needed.
func (bc *Blockchain) processAccountStateDescriptor(descriptor *transaction.StateDescriptor, cache *dao.Cached) error {
	hash, err := util.Uint160DecodeBytesBE(descriptor.Key)
	if err != nil {
		return err
	}
	account, err := cache.GetAccountStateOrNew(hash)
	if err != nil {
		return err
	}

	if descriptor.Field == "Votes" {
		balance := account.GetBalance(bc.governingTokenID)
		// The validators count stake is moved below, only the validator
		// votes are released here.
		for _, vote := range account.Votes {
			validator, err := cache.GetValidatorStateOrNew(vote)
			if err != nil {
				return err
			}
			validator.Votes -= balance
			if validator.UnregisteredAndHasNoVotes() {
				err = cache.DeleteValidatorState(validator)
			} else {
				err = cache.PutValidatorState(validator)
			}
			if err != nil {
				return err
			}
		}

		votes := keys.PublicKeys{}
		if err := votes.DecodeBytes(descriptor.Value); err != nil {
			return err
		}
		votes = votes.Unique()
		if len(votes) > maxValidators {
			return errors.New("voting candidate limit exceeded")
		}
		if len(votes) != len(account.Votes) {
			vc, err := cache.GetValidatorsCount()
			if err != nil {
				return err
			}
			if len(account.Votes) > 0 {
				vc[len(account.Votes)-1] -= balance
			}
			if len(votes) > 0 {
				vc[len(votes)-1] += balance
			}
			if err = cache.PutValidatorsCount(vc); err != nil {
				return err
			}
		}
		account.Votes = votes
		for _, vote := range account.Votes {
			validator, err := cache.GetValidatorStateOrNew(vote)
			if err != nil {
				return err
			}
			validator.Votes += balance
			if err = cache.PutValidatorState(validator); err != nil {
				return err
			}
		}
		return cache.PutAccountState(account)
	}
	return nil
}

func processValidatorStateDescriptor(descriptor *transaction.StateDescriptor, cache *dao.Cached) error {
	publicKey := &keys.PublicKey{}
	if err := publicKey.DecodeBytes(descriptor.Key); err != nil {
		return err
	}
	validator, err := cache.GetValidatorStateOrNew(publicKey)
	if err != nil {
		return err
	}
	if descriptor.Field == "Registered" {
		if len(descriptor.Value) == 1 {
			validator.Registered = descriptor.Value[0] != 0
			if validator.UnregisteredAndHasNoVotes() {
				return cache.DeleteValidatorState(validator)
			}
			return cache.PutValidatorState(validator)
		}
		return errors.New("bad descriptor value")
	}
	return nil
}

func processEnrollmentTX(cache *dao.Cached, tx *transaction.EnrollmentTX) error {
	validatorState, err := cache.GetValidatorStateOrNew(&tx.PublicKey)
	if err != nil {
		return err
	}
	validatorState.Registered = true
	return cache.PutValidatorState(validatorState)
}

// onPersistCompleted finishes the block acceptance: the block is removed
// from the pending cache, its transactions leave the mempool and the rest
// of the pool is re-submitted for verification against the new state. The
// consensus service and the subscribers are notified synchronously.
func (bc *Blockchain) onPersistCompleted(b *block.Block, aers []*state.AppExecResult) {
	delete(bc.blockCache, b.Hash())

	for _, tx := range b.Transactions {
		bc.memPool.Remove(tx.Hash())
	}
	// Copy the pool contents (in the descending priority order) into the
	// outbound queue before clearing it, the re-verification self-send
	// re-reads everything from scratch.
	resend := bc.memPool.GetVerifiedTransactions()
	bc.memPool.RemoveStale(func(*transaction.Transaction) bool { return false })
	if len(resend) > 0 {
		bc.selfSend(reverifyEvent{txs: resend})
	}

	if bc.consensusHandler != nil {
		bc.consensusHandler.OnPersistCompleted(b)
	}
	for ch := range bc.blockSubs {
		ch <- b
	}
	for _, aer := range aers {
		for ch := range bc.execSubs {
			ch <- aer
		}
	}
}

// handleNewTransaction checks the given transaction against the current
// state and the mempool contents and puts it into the mempool if it's
// valid, relaying it further on success.
func (bc *Blockchain) handleNewTransaction(t *transaction.Transaction) RelayResult {
	if t.Type == transaction.MinerType {
		// Miner transactions are only valid inside blocks.
		return RelayInvalid
	}
	if bc.memPool.ContainsKey(t.Hash()) {
		return RelayAlreadyExists
	}
	if bc.dao.HasTransaction(t.Hash()) {
		return RelayAlreadyExists
	}
	if err := bc.VerifyTx(t, nil); err != nil {
		bc.log.Debug("transaction verification failed",
			zap.Stringer("hash", t.Hash()),
			zap.Error(err))
		return RelayInvalid
	}
	if bc.policyCheck != nil && !bc.policyCheck(t) {
		return RelayPolicyFail
	}
	switch err := bc.memPool.Add(t, bc); err {
	case nil:
	case mempool.ErrOOM:
		return RelayOutOfMemory
	case mempool.ErrDup:
		return RelayAlreadyExists
	default:
		return RelayInvalid
	}
	if bc.relayer != nil {
		bc.relayer.RelayDirectly(t)
	}
	return RelaySucceed
}

// handleNewConsensus verifies the given consensus payload, forwards it to
// the consensus service and relays it, remembering it in the relay cache to
// keep from doing that twice.
func (bc *Blockchain) handleNewConsensus(p *consensus.Payload) RelayResult {
	if bc.relayCache.Contains(p.Hash()) {
		return RelayAlreadyExists
	}
	if p.Height <= bc.BlockHeight() {
		return RelayExpired
	}
	if p.Height != bc.BlockHeight()+1 {
		return RelayUnableToVerify
	}
	if len(p.Witness.VerificationScript) == 0 {
		return RelayInvalid
	}
	bc.relayCache.Add(p.Hash(), p)
	if bc.consensusHandler != nil {
		bc.consensusHandler.OnConsensusPayload(p)
	}
	if bc.relayer != nil {
		bc.relayer.RelayDirectly(p)
	}
	return RelaySucceed
}

// handleImport applies strictly sequential blocks skipping known ones, it's
// used for fast bulk imports bypassing relaying.
func (bc *Blockchain) handleImport(blocks []*block.Block) error {
	for _, b := range blocks {
		if b.Index <= bc.BlockHeight() {
			continue
		}
		if b.Index != bc.BlockHeight()+1 {
			return fmt.Errorf("block %d is not the next block (height %d)", b.Index, bc.BlockHeight())
		}
		hLen := uint32(bc.headerListLen())
		if b.Index == hLen && bc.config.VerifyBlocks {
			if err := bc.verifyBlock(b); err != nil {
				return err
			}
		}
		if b.Index < hLen && !b.Hash().Equals(bc.headerHash(int(b.Index))) {
			return fmt.Errorf("block %d doesn't match the header chain", b.Index)
		}
		if err := bc.persistBlock(b); err != nil {
			return err
		}
	}
	return bc.saveHeaderHashList()
}

// headerListLen returns the length of the header hash list.
func (bc *Blockchain) headerListLen() int {
	bc.headerLock.RLock()
	defer bc.headerLock.RUnlock()
	return bc.headerList.Len()
}

// headerHash returns the header hash stored at the given height.
func (bc *Blockchain) headerHash(i int) util.Uint256 {
	bc.headerLock.RLock()
	defer bc.headerLock.RUnlock()
	return bc.headerList.Get(i)
}

// BlockHeight returns the height/index of the highest persisted block.
func (bc *Blockchain) BlockHeight() uint32 {
	return bc.blockHeight.Load()
}

// HeaderHeight returns the index/height of the highest header.
func (bc *Blockchain) HeaderHeight() uint32 {
	return uint32(bc.headerListLen() - 1)
}

// GetHeaderHash returns the hash of the header/block with the given index.
func (bc *Blockchain) GetHeaderHash(i int) util.Uint256 {
	return bc.headerHash(i)
}

// CurrentBlockHash returns the hash of the highest persisted block.
func (bc *Blockchain) CurrentBlockHash() util.Uint256 {
	return bc.headerHash(int(bc.BlockHeight()))
}

// CurrentHeaderHash returns the hash of the latest known header.
func (bc *Blockchain) CurrentHeaderHash() util.Uint256 {
	bc.headerLock.RLock()
	defer bc.headerLock.RUnlock()
	return bc.headerList.Last()
}

// GetBlock returns the block by the given hash.
func (bc *Blockchain) GetBlock(hash util.Uint256) (*block.Block, error) {
	b, _, err := bc.dao.GetBlock(hash)
	if err != nil {
		return nil, err
	}
	for i, h := range b.Transactions {
		if h.Trimmed {
			tx, _, err := bc.dao.GetTransaction(h.Hash())
			if err != nil {
				return nil, err
			}
			b.Transactions[i] = tx
		}
	}
	return b, nil
}

// GetHeader returns the block header by the given hash.
func (bc *Blockchain) GetHeader(hash util.Uint256) (*block.Header, error) {
	b, _, err := bc.dao.GetBlock(hash)
	if err != nil {
		return nil, err
	}
	return b.Header(), nil
}

// HasBlock returns true if the blockchain contains the given block hash.
func (bc *Blockchain) HasBlock(hash util.Uint256) bool {
	return bc.dao.HasBlock(hash)
}

// HasTransaction returns true if the blockchain contains the given
// transaction hash, looking into the mempool as well as the chain.
func (bc *Blockchain) HasTransaction(hash util.Uint256) bool {
	return bc.memPool.ContainsKey(hash) || bc.dao.HasTransaction(hash)
}

// GetTransaction returns a TX and its height by the given hash.
func (bc *Blockchain) GetTransaction(hash util.Uint256) (*transaction.Transaction, uint32, error) {
	if tx, ok := bc.memPool.TryGetValue(hash); ok {
		return tx, 0, nil // the height is not actually defined for memPool transaction.
	}
	return bc.dao.GetTransaction(hash)
}

// GetAccountState returns the account state from its script hash.
func (bc *Blockchain) GetAccountState(scriptHash util.Uint160) *state.Account {
	as, err := bc.dao.GetAccountState(scriptHash)
	if as == nil && err != storage.ErrKeyNotFound {
		bc.log.Error("can't get account state", zap.Stringer("hash", scriptHash), zap.Error(err))
	}
	return as
}

// GetAssetState returns the asset state from its assetID.
func (bc *Blockchain) GetAssetState(assetID util.Uint256) *state.Asset {
	asset, err := bc.dao.GetAssetState(assetID)
	if asset == nil && err != storage.ErrKeyNotFound {
		bc.log.Error("can't get asset state", zap.Stringer("asset", assetID), zap.Error(err))
	}
	return asset
}

// GetContractState returns the contract by its script hash.
func (bc *Blockchain) GetContractState(hash util.Uint160) *state.Contract {
	contract, err := bc.dao.GetContractState(hash)
	if contract == nil && err != storage.ErrKeyNotFound {
		bc.log.Error("can't get contract state", zap.Stringer("hash", hash), zap.Error(err))
	}
	return contract
}

// GetStorageItem returns an item from the contract storage.
func (bc *Blockchain) GetStorageItem(scripthash util.Uint160, key []byte) *state.StorageItem {
	return bc.dao.GetStorageItem(scripthash, key)
}

// GetUnspentCoinState returns the unspent coin state for the given tx hash.
func (bc *Blockchain) GetUnspentCoinState(hash util.Uint256) *state.UnspentCoin {
	ucs, err := bc.dao.GetUnspentCoinState(hash)
	if ucs == nil && err != storage.ErrKeyNotFound {
		bc.log.Error("can't get unspent coin state", zap.Stringer("hash", hash), zap.Error(err))
	}
	return ucs
}

// GetAppExecResult returns the application execution result by the given tx
// hash.
func (bc *Blockchain) GetAppExecResult(hash util.Uint256) (*state.AppExecResult, error) {
	return bc.dao.GetAppExecResult(hash)
}

// GetMemPool returns the memory pool of the blockchain.
func (bc *Blockchain) GetMemPool() *mempool.Pool {
	return &bc.memPool
}

// GetConfig returns the config of this Blockchain.
func (bc *Blockchain) GetConfig() config.ProtocolConfiguration {
	return bc.config
}

// GenesisBlock returns the genesis block of this chain.
func (bc *Blockchain) GenesisBlock() *block.Block {
	return bc.genesisBlock
}

// GoverningTokenID returns the governing token id.
func (bc *Blockchain) GoverningTokenID() util.Uint256 {
	return bc.governingTokenID
}

// UtilityTokenID returns the utility token id.
func (bc *Blockchain) UtilityTokenID() util.Uint256 {
	return bc.utilityTokenID
}

// getSysFeeAmountByHash returns the cumulative system fee of the block with
// the given hash.
func (bc *Blockchain) getSysFeeAmountByHash(hash util.Uint256) uint32 {
	_, sysfee, err := bc.dao.GetBlock(hash)
	if err != nil {
		bc.log.Fatal("missing block record", zap.Stringer("hash", hash), zap.Error(err))
	}
	return sysfee
}

// getSysFeeAmountByHeight returns the cumulative system fee of the block at
// the given height.
func (bc *Blockchain) getSysFeeAmountByHeight(height uint32) uint32 {
	return bc.getSysFeeAmountByHash(bc.headerHash(int(height)))
}

// CalculateClaimable calculates the amount of the utility token generated
// by the given governing token value between the startHeight (the height
// its transaction was persisted at) and the endHeight (the height it was
// spent at), including the system fee bonus of the blocks in between.
func (bc *Blockchain) CalculateClaimable(value util.Fixed8, startHeight, endHeight uint32) util.Fixed8 {
	var amount int64
	di := uint32(decrementInterval)
	gl := uint32(len(genAmount))

	ustart := startHeight / di
	if ustart < gl {
		istart := startHeight % di
		uend := endHeight / di
		iend := endHeight % di
		if uend >= gl {
			uend = gl - 1
			iend = di
		}
		if iend == 0 {
			uend--
			iend = di
		}
		for ustart < uend {
			amount += int64(di-istart) * int64(genAmount[ustart])
			ustart++
			istart = 0
		}
		amount += int64(iend-istart) * int64(genAmount[ustart])
	}

	if startHeight == 0 {
		startHeight++
	}
	if endHeight > startHeight {
		amount += int64(bc.getSysFeeAmountByHeight(endHeight-1)) - int64(bc.getSysFeeAmountByHeight(startHeight-1))
	}

	return util.Fixed8(int64(value) / 100000000 * amount)
}

// References maps the inputs of the given transaction to the outputs they
// spend. A nil map means at least one input could not be resolved.
func (bc *Blockchain) References(t *transaction.Transaction) map[transaction.Input]*transaction.Output {
	return bc.references(bc.dao, t)
}

func (bc *Blockchain) references(d dao.DAO, t *transaction.Transaction) map[transaction.Input]*transaction.Output {
	references := make(map[transaction.Input]*transaction.Output)

	for prevHash, inputs := range t.GroupInputsByPrevHash() {
		tx, _, err := d.GetTransaction(prevHash)
		if err != nil {
			return nil
		}
		for _, in := range inputs {
			if int(in.PrevIndex) >= len(tx.Outputs) {
				return nil
			}
			references[*in] = &tx.Outputs[in.PrevIndex]
		}
	}
	return references
}

// FeePerByte returns the network fee of the transaction divided by its size.
func (bc *Blockchain) FeePerByte(t *transaction.Transaction) util.Fixed8 {
	return bc.NetworkFee(t).Div(int64(t.Size()))
}

// NetworkFee returns the network fee of the transaction: the surplus of its
// utility token inputs over the outputs after the system fee.
func (bc *Blockchain) NetworkFee(t *transaction.Transaction) util.Fixed8 {
	// Claim and miner transactions are free by definition, their utility
	// token surplus is the whole point of them.
	if t.Type == transaction.ClaimType || t.Type == transaction.MinerType {
		return 0
	}

	inputAmount := util.Fixed8FromInt64(0)
	refs := bc.References(t)
	if refs == nil {
		return inputAmount
	}
	for _, txOutput := range refs {
		if txOutput.AssetID == bc.utilityTokenID {
			inputAmount = inputAmount.Add(txOutput.Amount)
		}
	}

	outputAmount := util.Fixed8FromInt64(0)
	for _, txOutput := range t.Outputs {
		if txOutput.AssetID == bc.utilityTokenID {
			outputAmount = outputAmount.Add(txOutput.Amount)
		}
	}

	return inputAmount.Sub(outputAmount).Sub(bc.SystemFee(t))
}

// SystemFee returns the system fee of the transaction.
func (bc *Blockchain) SystemFee(t *transaction.Transaction) util.Fixed8 {
	if t.Type == transaction.InvocationType {
		inv := t.Data.(*transaction.InvocationTX)
		if inv.Version >= 1 {
			return inv.Gas
		}
	}
	return util.Fixed8FromInt64(bc.config.SystemFee.TryGetValue(byte(t.Type)))
}

// verifyHeader verifies the given header against the current header chain
// tip.
func (bc *Blockchain) verifyHeader(h *block.Header) error {
	bc.headerLock.RLock()
	defer bc.headerLock.RUnlock()
	if bc.headerList.Len() == 0 {
		return errors.New("no headers to verify against")
	}
	prevHash := bc.headerList.Last()
	if !h.PrevHash.Equals(prevHash) {
		return errors.New("previous header hash doesn't match")
	}
	if int(h.Index) != bc.headerList.Len() {
		return errors.New("invalid header index")
	}
	prevHeader, err := bc.GetHeader(prevHash)
	if err != nil {
		return fmt.Errorf("previous header was not found: %w", err)
	}
	if prevHeader.Timestamp >= h.Timestamp {
		return errors.New("header is not newer than the previous one")
	}
	if len(h.Script.VerificationScript) == 0 {
		return errors.New("missing verification script")
	}
	return nil
}

// verifyBlock verifies the given block against its predecessor in the
// chain.
func (bc *Blockchain) verifyBlock(b *block.Block) error {
	prevHeader, err := bc.GetHeader(b.PrevHash)
	if err != nil {
		return fmt.Errorf("unable to get previous header: %w", err)
	}
	if prevHeader.Index+1 != b.Index {
		return errors.New("previous header index doesn't match")
	}
	if prevHeader.Timestamp >= b.Timestamp {
		return errors.New("block is not newer than the previous one")
	}
	return b.Verify()
}

// VerifyTx verifies whether a transaction is bonafide or not, the block
// parameter is the block the transaction arrived in and can be nil for
// free-standing (mempool) transactions.
func (bc *Blockchain) VerifyTx(t *transaction.Transaction, block *block.Block) error {
	if t.Size() > transaction.MaxTransactionSize {
		return fmt.Errorf("invalid transaction size = %d, need <= %d", t.Size(), transaction.MaxTransactionSize)
	}
	if transaction.HaveDuplicateInputs(t.Inputs) {
		return errors.New("invalid transaction's inputs")
	}
	if bc.dao.IsDoubleSpend(t) {
		return errors.New("invalid transaction caused by double spending")
	}
	if err := bc.verifyOutputs(t); err != nil {
		return err
	}
	if err := bc.verifyResults(t); err != nil {
		return err
	}

	if t.Type == transaction.ClaimType {
		claim := t.Data.(*transaction.ClaimTX)
		if transaction.HaveDuplicateInputs(claim.Claims) {
			return errors.New("duplicate claims")
		}
		if bc.dao.IsDoubleClaim(claim) {
			return errors.New("double claim")
		}
		if err := bc.verifyClaims(t, claim); err != nil {
			return err
		}
	}

	if block == nil {
		if ok := bc.memPool.Verify(t); !ok {
			return errors.New("invalid transaction due to conflicts with the memory pool")
		}
	}
	return nil
}

// verifyOutputs checks that the assets of the transaction outputs exist and
// are not expired.
func (bc *Blockchain) verifyOutputs(t *transaction.Transaction) error {
	for assetID, outputs := range t.GroupOutputByAssetID() {
		assetState := bc.GetAssetState(assetID)
		if assetState == nil {
			return fmt.Errorf("no asset state for %s", assetID.StringLE())
		}
		if assetState.Expiration < bc.BlockHeight()+1 && assetState.AssetType != transaction.GoverningToken &&
			assetState.AssetType != transaction.UtilityToken {
			return fmt.Errorf("asset %s expired", assetID.StringLE())
		}
		for _, out := range outputs {
			if int64(out.Amount)%precisionDivisor(assetState.Precision) != 0 {
				return fmt.Errorf("output is not compliant with %s asset precision", assetID.StringLE())
			}
		}
	}
	return nil
}

// precisionDivisor returns the divisor matching the asset precision,
// 10^(8-p).
func precisionDivisor(precision uint8) int64 {
	d := int64(1)
	for i := uint8(0); i < 8-precision; i++ {
		d *= 10
	}
	return d
}

// verifyResults checks that the per-asset input/output balance of the
// transaction matches its type: only Issue (and Register, for the asset it
// registers) can create assets, only Miner and Claim can create the utility
// token, nothing else creates tokens and the burnt utility token has to
// cover at least the system fee.
func (bc *Blockchain) verifyResults(t *transaction.Transaction) error {
	results := bc.GetTransactionResults(t)
	if results == nil {
		return errors.New("tx has no results")
	}
	var resultsDestroy []*transaction.Result
	var resultsIssue []*transaction.Result
	for _, re := range results {
		if re.Amount.GreaterThan(util.Fixed8(0)) {
			resultsDestroy = append(resultsDestroy, re)
		}

		if re.Amount.LessThan(util.Fixed8(0)) {
			resultsIssue = append(resultsIssue, re)
		}
	}
	if len(resultsDestroy) > 1 {
		return errors.New("tx has more than 1 destroy output")
	}
	if len(resultsDestroy) == 1 && resultsDestroy[0].AssetID != bc.utilityTokenID {
		return errors.New("tx destroys non-utility token")
	}
	sysfee := bc.SystemFee(t)
	if sysfee.GreaterThan(util.Fixed8(0)) {
		if len(resultsDestroy) == 0 {
			return fmt.Errorf("system requires to pay %s fee", sysfee.String())
		}
		if resultsDestroy[0].Amount.LessThan(sysfee) {
			return fmt.Errorf("system requires to pay %s fee, but paid %s", sysfee.String(), resultsDestroy[0].Amount.String())
		}
	}

	switch t.Type {
	case transaction.MinerType, transaction.ClaimType:
		for _, r := range resultsIssue {
			if r.AssetID != bc.utilityTokenID {
				return errors.New("miner or claim tx issues non-utility tokens")
			}
		}
	case transaction.IssueType:
		for _, r := range resultsIssue {
			if r.AssetID == bc.utilityTokenID {
				return errors.New("issue tx issues utility tokens")
			}
			asset, err := bc.dao.GetAssetState(r.AssetID)
			if asset == nil || err != nil {
				return errors.New("invalid asset in issue tx")
			}
			// Negative amount means unlimited issuance.
			if asset.Amount >= 0 && asset.Amount-asset.Available < -r.Amount {
				return errors.New("trying to issue more than available")
			}
		}
	case transaction.RegisterType:
		// Asset registration is its own issuance.
		for _, r := range resultsIssue {
			if r.AssetID != t.Hash() {
				return errors.New("register tx issues unregistered asset")
			}
		}
	default:
		if len(resultsIssue) > 0 {
			return errors.New("non issue/miner/claim tx issues tokens")
		}
	}
	return nil
}

// verifyClaims checks that the claimed utility token amount does not exceed
// the amount generated by the referenced spent coins.
func (bc *Blockchain) verifyClaims(t *transaction.Transaction, claim *transaction.ClaimTX) error {
	var claimable util.Fixed8
	for prevHash, claims := range transaction.GroupInputsByPrevHash(claim.Claims) {
		scs, err := bc.dao.GetSpentCoinState(prevHash)
		if err != nil {
			return errors.New("claim references an unspent coin")
		}
		prevTX, _, err := bc.dao.GetTransaction(prevHash)
		if err != nil {
			return fmt.Errorf("no transaction for claim: %w", err)
		}
		for _, c := range claims {
			spendHeight, ok := scs.Items[c.PrevIndex]
			if !ok {
				return errors.New("claim references a coin with no spend record")
			}
			if int(c.PrevIndex) >= len(prevTX.Outputs) {
				return errors.New("claim references a bad output index")
			}
			out := prevTX.Outputs[c.PrevIndex]
			if !out.AssetID.Equals(bc.governingTokenID) {
				return errors.New("claim references a non-governing output")
			}
			claimable += bc.CalculateClaimable(out.Amount, scs.TxHeight, spendHeight)
		}
	}

	var claimed util.Fixed8
	for _, out := range t.Outputs {
		if out.AssetID.Equals(bc.utilityTokenID) {
			claimed += out.Amount
		}
	}
	if claimed > claimable {
		return fmt.Errorf("claiming more than claimable: %s > %s", claimed.String(), claimable.String())
	}
	return nil
}

// GetTransactionResults returns the transaction results aggregated by
// assetID, the surplus of the inputs over the outputs. Returns nil if the
// inputs can not be resolved.
func (bc *Blockchain) GetTransactionResults(t *transaction.Transaction) []*transaction.Result {
	return bc.transactionResultsInternal(bc.dao, t)
}

func (bc *Blockchain) transactionResults(d dao.DAO, t *transaction.Transaction) ([]*transaction.Result, error) {
	results := bc.transactionResultsInternal(d, t)
	if results == nil {
		return nil, errors.New("tx has invalid inputs")
	}
	return results, nil
}

func (bc *Blockchain) transactionResultsInternal(d dao.DAO, t *transaction.Transaction) []*transaction.Result {
	results := make([]*transaction.Result, 0)
	tempResults := make(map[util.Uint256]util.Fixed8)

	references := bc.references(d, t)
	if references == nil {
		return nil
	}
	for _, output := range references {
		tempResults[output.AssetID] += output.Amount
	}
	for _, output := range t.Outputs {
		tempResults[output.AssetID] -= output.Amount
	}
	for assetID, amount := range tempResults {
		if amount != util.Fixed8(0) {
			results = append(results, &transaction.Result{
				AssetID: assetID,
				Amount:  amount,
			})
		}
	}

	return results
}

// GetValidators returns the current validator set derived from the
// registered validators and the votes cast for them, falling back to the
// standby validators of the configuration.
func (bc *Blockchain) GetValidators() (keys.PublicKeys, error) {
	standby, err := getValidators(bc.config)
	if err != nil {
		return nil, err
	}

	count, err := bc.validatorsCount(len(standby))
	if err != nil {
		return nil, err
	}

	registered := bc.dao.GetValidators()
	active := make([]*state.Validator, 0, len(registered))
	for _, v := range registered {
		if v.RegisteredAndHasVotes() {
			active = append(active, v)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Votes != active[j].Votes {
			return active[i].Votes > active[j].Votes
		}
		return active[i].PublicKey.Cmp(active[j].PublicKey) == -1
	})

	result := make(keys.PublicKeys, 0, count)
	for i := 0; i < len(active) && len(result) < count; i++ {
		result = append(result, active[i].PublicKey)
	}
	for i := 0; len(result) < count; i++ {
		if i >= len(standby) {
			return nil, errors.New("not enough validators")
		}
		if !result.Contains(standby[i]) {
			result = append(result, standby[i])
		}
	}
	sort.Sort(result)
	return result, nil
}

// validatorsCount derives the validator count from the vote multiplicity
// stakes: the count is the stake-weighted median of the per-account vote
// list lengths, never less than the number of standby validators and never
// more than maxValidators.
func (bc *Blockchain) validatorsCount(standbyCount int) (int, error) {
	vc, err := bc.dao.GetValidatorsCount()
	if err != nil {
		return 0, err
	}
	var total util.Fixed8
	for i := range vc {
		total += vc[i]
	}
	count := standbyCount
	if total > 0 {
		var acc util.Fixed8
		for i := range vc {
			acc += vc[i]
			if acc*2 >= total {
				count = i + 1
				break
			}
		}
	}
	if count < standbyCount {
		count = standbyCount
	}
	if count > maxValidators {
		count = maxValidators
	}
	return count, nil
}
