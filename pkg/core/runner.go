package core

import (
	"github.com/novachain/nova-go/pkg/consensus"
	"github.com/novachain/nova-go/pkg/core/block"
	"github.com/novachain/nova-go/pkg/core/dao"
	"github.com/novachain/nova-go/pkg/core/state"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/smartcontract/trigger"
	"github.com/novachain/nova-go/pkg/util"
)

// ScriptRunner abstracts the VM used to execute transaction scripts. It's a
// pure function from the ledger's point of view: it may only change the
// state through the DAO view given to it, and the ledger decides whether
// those changes are kept.
type ScriptRunner interface {
	// Run executes the given script with the given trigger in the context
	// of the given transaction against the given DAO view with the given
	// gas limit. Execution results are returned even when the script
	// faults.
	Run(t trigger.Type, script []byte, tx *transaction.Transaction, d dao.DAO, gas util.Fixed8) *state.AppExecResult
}

// Inventory is an item (block, transaction or consensus payload) that can be
// relayed to the rest of the network.
type Inventory interface {
	Hash() util.Uint256
}

// Relayer represents a local node that broadcasts inventories accepted by
// the ledger directly to the connected peers.
type Relayer interface {
	RelayDirectly(inv Inventory)
}

// HeaderTaskCompleter gets notified when a batch of headers has been
// processed so that it can request the next one.
type HeaderTaskCompleter interface {
	HeaderTaskCompleted()
}

// ConsensusHandler receives verified consensus payloads and persist
// notifications.
type ConsensusHandler interface {
	OnConsensusPayload(p *consensus.Payload)
	OnPersistCompleted(b *block.Block)
}
