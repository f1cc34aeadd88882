package state

import (
	"sort"

	"github.com/novachain/nova-go/pkg/io"
)

// SpentCoin represents the state of a spent coin of the governing token. It
// maps the indices of the spent outputs of a transaction to the height of the
// block that spent them, which is the data needed to calculate the utility
// token bonus.
type SpentCoin struct {
	TxHeight uint32

	// A mapping between the index of the output and the height it was
	// spent at.
	Items map[uint16]uint32
}

// NewSpentCoin returns a new SpentCoin object for a transaction confirmed at
// the given height.
func NewSpentCoin(height uint32) *SpentCoin {
	return &SpentCoin{
		TxHeight: height,
		Items:    make(map[uint16]uint32),
	}
}

// EncodeBinary encodes SpentCoin to the given BinWriter.
func (s *SpentCoin) EncodeBinary(bw *io.BinWriter) {
	bw.WriteU32LE(s.TxHeight)

	indices := make([]int, 0, len(s.Items))
	for k := range s.Items {
		indices = append(indices, int(k))
	}
	sort.Ints(indices)

	bw.WriteVarUint(uint64(len(s.Items)))
	for _, k := range indices {
		bw.WriteU16LE(uint16(k))
		bw.WriteU32LE(s.Items[uint16(k)])
	}
}

// DecodeBinary decodes SpentCoin from the given BinReader.
func (s *SpentCoin) DecodeBinary(br *io.BinReader) {
	s.TxHeight = br.ReadU32LE()

	s.Items = make(map[uint16]uint32)
	lenItems := br.ReadVarUint()
	for i := 0; i < int(lenItems); i++ {
		key := br.ReadU16LE()
		value := br.ReadU32LE()
		s.Items[key] = value
	}
}
