package transaction

import (
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// Output represents a transaction output.
type Output struct {
	// The asset identifier. This is the transaction hash of a
	// registration transaction.
	AssetID util.Uint256

	// Value of the output.
	Amount util.Fixed8

	// The address of the recipient.
	ScriptHash util.Uint160
}

// NewOutput returns a new transaction output.
func NewOutput(assetID util.Uint256, amount util.Fixed8, scriptHash util.Uint160) Output {
	return Output{
		AssetID:    assetID,
		Amount:     amount,
		ScriptHash: scriptHash,
	}
}

// DecodeBinary implements the Serializable interface.
func (out *Output) DecodeBinary(br *io.BinReader) {
	out.AssetID.DecodeBinary(br)
	out.Amount.DecodeBinary(br)
	out.ScriptHash.DecodeBinary(br)
}

// EncodeBinary implements the Serializable interface.
func (out *Output) EncodeBinary(bw *io.BinWriter) {
	out.AssetID.EncodeBinary(bw)
	out.Amount.EncodeBinary(bw)
	out.ScriptHash.EncodeBinary(bw)
}
