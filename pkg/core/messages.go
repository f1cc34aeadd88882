package core

import (
	"github.com/novachain/nova-go/pkg/consensus"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/core/transaction"
)

// bcEvent is a message processed by the blockchain event loop. Headers,
// blocks, consensus payloads and imports go through the high priority
// queue, transactions and subscription changes through the normal one; the
// stop signal has a channel of its own. The loop owns all non-mempool chain state, so no two handlers ever
// run concurrently.
type bcEvent interface{ isBcEvent() }

type headersEvent struct {
	headers []*block.Header
	err     chan error
}

type blockEvent struct {
	block *block.Block
	// result is nil for re-dispatched cached blocks.
	result chan RelayResult
}

type txEvent struct {
	tx     *transaction.Transaction
	result chan RelayResult
}

type consensusEvent struct {
	payload *consensus.Payload
	result  chan RelayResult
}

type importEvent struct {
	blocks []*block.Block
	err    chan error
}

// reverifyEvent is self-sent after a block persist to re-submit the
// transactions that survived it through the usual verification path.
type reverifyEvent struct {
	txs []*transaction.Transaction
}

type subBlockEvent struct {
	ch     chan<- *block.Block
	unsub  bool
	synced chan struct{}
}

type subExecEvent struct {
	ch     chan<- *state.AppExecResult
	unsub  bool
	synced chan struct{}
}

func (headersEvent) isBcEvent()   {}
func (blockEvent) isBcEvent()     {}
func (txEvent) isBcEvent()        {}
func (consensusEvent) isBcEvent() {}
func (importEvent) isBcEvent()    {}
func (reverifyEvent) isBcEvent()  {}
func (subBlockEvent) isBcEvent()  {}
func (subExecEvent) isBcEvent()   {}
