package state

import (
	"errors"

	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// MaxValidatorsVoted is the upper bound of the number of validators that an
// account can cast its vote for in one transaction.
const MaxValidatorsVoted = 1024

// ErrTooManyEntries is returned when a serialized ValidatorsCount has more
// entries than MaxValidatorsVoted.
var ErrTooManyEntries = errors.New("too many entries")

// ValidatorsCount holds the per-index voter stake: entry i is the total
// governing token stake of the accounts that vote for exactly i+1 validators.
type ValidatorsCount [MaxValidatorsVoted]util.Fixed8

// EncodeBinary encodes ValidatorsCount to the given BinWriter. Only non-zero
// entries are stored, as index-value pairs in the ascending index order.
func (vc *ValidatorsCount) EncodeBinary(w *io.BinWriter) {
	var n uint64
	for i := range vc {
		if vc[i] != 0 {
			n++
		}
	}

	w.WriteVarUint(n)
	for i := range vc {
		if vc[i] != 0 {
			w.WriteU16LE(uint16(i))
			vc[i].EncodeBinary(w)
		}
	}
}

// DecodeBinary decodes ValidatorsCount from the given BinReader.
func (vc *ValidatorsCount) DecodeBinary(r *io.BinReader) {
	for i := range vc {
		vc[i] = 0
	}
	n := r.ReadVarUint()
	if n > MaxValidatorsVoted {
		r.Err = ErrTooManyEntries
		return
	}
	for i := uint64(0); i < n; i++ {
		index := r.ReadU16LE()
		if index >= MaxValidatorsVoted {
			r.Err = ErrTooManyEntries
			return
		}
		vc[index].DecodeBinary(r)
	}
}
