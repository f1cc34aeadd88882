package state

import (
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/smartcontract/trigger"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/novachain/nova-go/pkg/vm/vmstate"
)

// NotificationEvent is a tuple of the scripthash that has emitted the Item as
// a notification and the serialized item itself.
type NotificationEvent struct {
	ScriptHash util.Uint160
	Item       []byte
}

// AppExecResult represents the result of the script execution, gathering
// together all resulting notifications.
type AppExecResult struct {
	TxHash      util.Uint256
	Trigger     trigger.Type
	VMState     vmstate.State
	GasConsumed util.Fixed8
	Stack       []byte
	Events      []NotificationEvent
}

// EncodeBinary implements the Serializable interface.
func (ne *NotificationEvent) EncodeBinary(w *io.BinWriter) {
	ne.ScriptHash.EncodeBinary(w)
	w.WriteVarBytes(ne.Item)
}

// DecodeBinary implements the Serializable interface.
func (ne *NotificationEvent) DecodeBinary(r *io.BinReader) {
	ne.ScriptHash.DecodeBinary(r)
	ne.Item = r.ReadVarBytes()
}

// EncodeBinary implements the Serializable interface.
func (aer *AppExecResult) EncodeBinary(w *io.BinWriter) {
	aer.TxHash.EncodeBinary(w)
	w.WriteB(byte(aer.Trigger))
	w.WriteB(byte(aer.VMState))
	aer.GasConsumed.EncodeBinary(w)
	w.WriteVarBytes(aer.Stack)
	w.WriteArray(aer.Events)
}

// DecodeBinary implements the Serializable interface.
func (aer *AppExecResult) DecodeBinary(r *io.BinReader) {
	aer.TxHash.DecodeBinary(r)
	aer.Trigger = trigger.Type(r.ReadB())
	aer.VMState = vmstate.State(r.ReadB())
	aer.GasConsumed.DecodeBinary(r)
	aer.Stack = r.ReadVarBytes()
	r.ReadArray(&aer.Events)
}
