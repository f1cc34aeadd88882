package transaction

import (
	"github.com/novachain/nova-go/pkg/io"
)

// MinerTX represents a miner transaction.
type MinerTX struct {
	// Random number to avoid hash collision.
	Nonce uint32
}

// DecodeBinary implements the Serializable interface.
func (tx *MinerTX) DecodeBinary(r *io.BinReader) {
	tx.Nonce = r.ReadU32LE()
}

// EncodeBinary implements the Serializable interface.
func (tx *MinerTX) EncodeBinary(w *io.BinWriter) {
	w.WriteU32LE(tx.Nonce)
}

// NewMinerTX creates Transaction of MinerType type.
func NewMinerTX(nonce uint32) *Transaction {
	return &Transaction{
		Type:    MinerType,
		Version: 0,
		Data:    &MinerTX{Nonce: nonce},
	}
}
