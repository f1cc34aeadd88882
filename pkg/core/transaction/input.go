package transaction

import (
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// Input represents a transaction input.
type Input struct {
	// The hash of the previous transaction.
	PrevHash util.Uint256 `json:"txid"`

	// The index of the previous transaction.
	PrevIndex uint16 `json:"vout"`
}

// DecodeBinary implements the Serializable interface.
func (in *Input) DecodeBinary(br *io.BinReader) {
	in.PrevHash.DecodeBinary(br)
	in.PrevIndex = br.ReadU16LE()
}

// EncodeBinary implements the Serializable interface.
func (in *Input) EncodeBinary(bw *io.BinWriter) {
	in.PrevHash.EncodeBinary(bw)
	bw.WriteU16LE(in.PrevIndex)
}

// GroupInputsByPrevHash groups all inputs by their previous hash.
func GroupInputsByPrevHash(ins []Input) map[util.Uint256][]*Input {
	m := make(map[util.Uint256][]*Input)
	for i := range ins {
		hash := ins[i].PrevHash
		m[hash] = append(m[hash], &ins[i])
	}
	return m
}

// HaveDuplicateInputs checks the given slice of inputs for duplicates.
func HaveDuplicateInputs(ins []Input) bool {
	m := make(map[Input]bool, len(ins))
	for i := range ins {
		if m[ins[i]] {
			return true
		}
		m[ins[i]] = true
	}
	return false
}

// InputIntersection returns the intersection of two slices of inputs.
func InputIntersection(a []Input, b []Input) []Input {
	m := make(map[Input]bool, len(a))
	for i := range a {
		m[a[i]] = true
	}

	var res []Input
	for i := range b {
		if m[b[i]] {
			res = append(res, b[i])
		}
	}
	return res
}
