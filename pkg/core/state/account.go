package state

import (
	"sort"

	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
)

// Account represents the state of a Nova account.
type Account struct {
	Version    uint8
	ScriptHash util.Uint160
	IsFrozen   bool
	Votes      keys.PublicKeys
	Balances   map[util.Uint256]util.Fixed8
}

// NewAccount returns a new Account object.
func NewAccount(scriptHash util.Uint160) *Account {
	return &Account{
		Version:    0,
		ScriptHash: scriptHash,
		IsFrozen:   false,
		Votes:      keys.PublicKeys{},
		Balances:   make(map[util.Uint256]util.Fixed8),
	}
}

// DecodeBinary decodes Account from the given BinReader.
func (s *Account) DecodeBinary(br *io.BinReader) {
	s.Version = br.ReadB()
	s.ScriptHash.DecodeBinary(br)
	s.IsFrozen = br.ReadBool()
	br.ReadArray(&s.Votes)

	s.Balances = make(map[util.Uint256]util.Fixed8)
	lenBalances := br.ReadVarUint()
	for i := 0; i < int(lenBalances); i++ {
		key := util.Uint256{}
		key.DecodeBinary(br)
		var val util.Fixed8
		val.DecodeBinary(br)
		s.Balances[key] = val
	}
}

// EncodeBinary encodes Account to the given BinWriter.
func (s *Account) EncodeBinary(bw *io.BinWriter) {
	bw.WriteB(s.Version)
	s.ScriptHash.EncodeBinary(bw)
	bw.WriteBool(s.IsFrozen)
	bw.WriteArray(s.Votes)

	balances := s.nonZeroBalances()
	bw.WriteVarUint(uint64(len(balances)))
	for _, key := range balances {
		key.EncodeBinary(bw)
		s.Balances[key].EncodeBinary(bw)
	}
}

// nonZeroBalances returns the asset IDs of the non-zero balances for the
// account in a deterministic order.
func (s *Account) nonZeroBalances() []util.Uint256 {
	assets := make([]util.Uint256, 0, len(s.Balances))
	for k, v := range s.Balances {
		if v > 0 {
			assets = append(assets, k)
		}
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CompareTo(assets[j]) == -1
	})
	return assets
}

// GetBalance returns the balance for the given asset, zero if there is none.
func (s *Account) GetBalance(assetID util.Uint256) util.Fixed8 {
	return s.Balances[assetID]
}
