package state

import (
	"github.com/novachain/nova-go/pkg/io"
)

// UnspentCoin tracks the spend/claim flags of every output of a transaction,
// parallel to its output list. On the wire it's a var-length byte array with
// one flag byte per output.
type UnspentCoin struct {
	States []Coin
}

// NewUnspentCoin returns a new unspent coin state with n confirmed outputs.
func NewUnspentCoin(n int) *UnspentCoin {
	u := &UnspentCoin{
		States: make([]Coin, n),
	}
	for i := range u.States {
		u.States[i] = CoinConfirmed
	}
	return u
}

// IsSpent returns whether the output with the given index was spent already.
// Indices outside of the output range are reported as spent, they can never
// be used.
func (s *UnspentCoin) IsSpent(index int) bool {
	return index >= len(s.States) || s.States[index]&CoinSpent != 0
}

// IsClaimed returns whether the utility token bonus of the output with the
// given index was claimed already. Out of range indices are reported as
// claimed.
func (s *UnspentCoin) IsClaimed(index int) bool {
	return index >= len(s.States) || s.States[index]&CoinClaimed != 0
}

// EncodeBinary encodes UnspentCoin to the given BinWriter.
func (s *UnspentCoin) EncodeBinary(bw *io.BinWriter) {
	states := make([]byte, len(s.States))
	for i := range s.States {
		states[i] = byte(s.States[i])
	}
	bw.WriteVarBytes(states)
}

// DecodeBinary decodes UnspentCoin from the given BinReader.
func (s *UnspentCoin) DecodeBinary(br *io.BinReader) {
	states := br.ReadVarBytes()
	s.States = make([]Coin, len(states))
	for i := range states {
		s.States[i] = Coin(states[i])
	}
}
