package state

import (
	"testing"

	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeAccountState(t *testing.T) {
	var (
		n        = 10
		balances = make(map[util.Uint256]util.Fixed8)
		votes    = make(keys.PublicKeys, n)
	)
	for i := 0; i < n; i++ {
		asset := util.Uint256{byte(i + 1)}
		balances[asset] = util.Fixed8(int64(i + 10))
		k, err := keys.NewPrivateKey()
		assert.Nil(t, err)
		votes[i] = k.PublicKey()
	}

	a := &Account{
		Version:    0,
		ScriptHash: util.Uint160{1, 2, 3},
		IsFrozen:   true,
		Votes:      votes,
		Balances:   balances,
	}

	buf := io.NewBufBinWriter()
	a.EncodeBinary(buf.BinWriter)
	require.NoError(t, buf.Err)

	aDecode := &Account{}
	r := io.NewBinReaderFromBuf(buf.Bytes())
	aDecode.DecodeBinary(r)
	require.NoError(t, r.Err)

	assert.Equal(t, a.Version, aDecode.Version)
	assert.Equal(t, a.ScriptHash, aDecode.ScriptHash)
	assert.Equal(t, a.IsFrozen, aDecode.IsFrozen)

	for i, vote := range a.Votes {
		assert.Equal(t, vote.X, aDecode.Votes[i].X)
	}
	assert.Equal(t, a.Balances, aDecode.Balances)
}

func TestAccountZeroBalancesAreNotStored(t *testing.T) {
	a := NewAccount(util.Uint160{7})
	a.Balances[util.Uint256{1}] = util.Fixed8(0)
	a.Balances[util.Uint256{2}] = util.Fixed8(42)

	buf := io.NewBufBinWriter()
	a.EncodeBinary(buf.BinWriter)
	require.NoError(t, buf.Err)

	aDecode := &Account{}
	r := io.NewBinReaderFromBuf(buf.Bytes())
	aDecode.DecodeBinary(r)
	require.NoError(t, r.Err)

	_, ok := aDecode.Balances[util.Uint256{1}]
	assert.False(t, ok)
	assert.Equal(t, util.Fixed8(42), aDecode.GetBalance(util.Uint256{2}))
	// Absent assets have zero balance.
	assert.Equal(t, util.Fixed8(0), aDecode.GetBalance(util.Uint256{9}))
}
