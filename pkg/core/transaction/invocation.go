package transaction

import (
	"errors"

	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// InvocationTX represents an invocation transaction and is used to
// deploy smart contracts to the Nova blockchain or invoke them.
type InvocationTX struct {
	// Script output of the smart contract.
	Script []byte

	// Gas cost of the smart contract.
	Gas util.Fixed8

	// Version of the main transaction, it's needed because Gas is only
	// serialized since version 1.
	Version uint8
}

// NewInvocationTX returns a new invocation transaction.
func NewInvocationTX(script []byte, gas util.Fixed8) *Transaction {
	return &Transaction{
		Type:    InvocationType,
		Version: 1,
		Data: &InvocationTX{
			Script:  script,
			Gas:     gas,
			Version: 1,
		},
		Attributes: []Attribute{},
		Inputs:     []Input{},
		Outputs:    []Output{},
		Scripts:    []Witness{},
	}
}

// DecodeBinary implements the Serializable interface.
func (tx *InvocationTX) DecodeBinary(br *io.BinReader) {
	tx.Script = br.ReadVarBytes()
	if br.Err == nil && len(tx.Script) == 0 {
		br.Err = errors.New("no script")
		return
	}
	if tx.Version >= 1 {
		tx.Gas.DecodeBinary(br)
		if br.Err == nil && tx.Gas.LessThan(0) {
			br.Err = errors.New("negative gas")
			return
		}
	} else {
		tx.Gas = util.Fixed8FromInt64(0)
	}
}

// EncodeBinary implements the Serializable interface.
func (tx *InvocationTX) EncodeBinary(bw *io.BinWriter) {
	bw.WriteVarBytes(tx.Script)
	if tx.Version >= 1 {
		tx.Gas.EncodeBinary(bw)
	}
}
