package consensus

import (
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/crypto/hash"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// Payload is a raw consensus message exchanged between the validators. The
// ledger only checks and relays it, interpreting the Data is up to the
// consensus service.
type Payload struct {
	// Version of the payload, currently 0.
	Version uint32

	// PrevHash is the hash of the previous block.
	PrevHash util.Uint256

	// Height is the height of the block this payload is trying to decide
	// upon.
	Height uint32

	// ValidatorIndex is the index of the sending validator in the current
	// validator list.
	ValidatorIndex uint16

	Timestamp uint32

	// Data is the serialized consensus message.
	Data []byte

	// Witness is an invocation/verification script pair signed by the
	// sending validator.
	Witness transaction.Witness

	hash util.Uint256
}

// EncodeBinaryUnsigned writes the payload without the witness into the given
// writer.
func (p *Payload) EncodeBinaryUnsigned(w *io.BinWriter) {
	w.WriteU32LE(p.Version)
	p.PrevHash.EncodeBinary(w)
	w.WriteU32LE(p.Height)
	w.WriteU16LE(p.ValidatorIndex)
	w.WriteU32LE(p.Timestamp)
	w.WriteVarBytes(p.Data)
}

// EncodeBinary implements the Serializable interface.
func (p *Payload) EncodeBinary(w *io.BinWriter) {
	p.EncodeBinaryUnsigned(w)
	w.WriteB(1)
	p.Witness.EncodeBinary(w)
}

// DecodeBinaryUnsigned reads the payload without the witness from the given
// reader.
func (p *Payload) DecodeBinaryUnsigned(r *io.BinReader) {
	p.Version = r.ReadU32LE()
	p.PrevHash.DecodeBinary(r)
	p.Height = r.ReadU32LE()
	p.ValidatorIndex = r.ReadU16LE()
	p.Timestamp = r.ReadU32LE()
	p.Data = r.ReadVarBytes()
}

// DecodeBinary implements the Serializable interface.
func (p *Payload) DecodeBinary(r *io.BinReader) {
	p.DecodeBinaryUnsigned(r)

	var padding = r.ReadB()
	if r.Err == nil && padding != 1 {
		r.Err = errInvalidPadding
		return
	}

	p.Witness.DecodeBinary(r)
	if r.Err == nil {
		p.createHash()
	}
}

// Hash returns the hash of the consensus payload.
func (p *Payload) Hash() util.Uint256 {
	if p.hash.Equals(util.Uint256{}) {
		p.createHash()
	}
	return p.hash
}

// GetSignedPart returns the serialized unsigned part of the payload, used
// for witness checks.
func (p *Payload) GetSignedPart() []byte {
	buf := io.NewBufBinWriter()
	p.EncodeBinaryUnsigned(buf.BinWriter)
	if buf.Err != nil {
		return nil
	}
	return buf.Bytes()
}

// createHash creates the hash of the consensus payload.
func (p *Payload) createHash() {
	b := p.GetSignedPart()
	if b == nil {
		panic("failed to serialize consensus payload")
	}
	p.hash = hash.DoubleSha256(b)
}
