package state

import (
	"testing"

	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorRoundtrip(t *testing.T) {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)
	v := &Validator{
		PublicKey:  k.PublicKey(),
		Registered: true,
		Votes:      util.Fixed8FromInt64(100),
	}

	buf := io.NewBufBinWriter()
	v.EncodeBinary(buf.BinWriter)
	require.NoError(t, buf.Err)

	decoded := &Validator{}
	r := io.NewBinReaderFromBuf(buf.Bytes())
	decoded.DecodeBinary(r)
	require.NoError(t, r.Err)
	assert.True(t, v.PublicKey.Equal(decoded.PublicKey))
	assert.Equal(t, v.Registered, decoded.Registered)
	assert.Equal(t, v.Votes, decoded.Votes)
}

func TestValidatorLifecyclePredicates(t *testing.T) {
	k, err := keys.NewPrivateKey()
	require.NoError(t, err)

	v := &Validator{PublicKey: k.PublicKey()}
	assert.True(t, v.UnregisteredAndHasNoVotes())
	assert.False(t, v.RegisteredAndHasVotes())

	v.Registered = true
	assert.False(t, v.UnregisteredAndHasNoVotes())
	assert.False(t, v.RegisteredAndHasVotes())

	v.Votes = util.Fixed8FromInt64(1)
	assert.True(t, v.RegisteredAndHasVotes())

	v.Registered = false
	assert.False(t, v.UnregisteredAndHasNoVotes())
}

func TestValidatorsCountRoundtrip(t *testing.T) {
	vc := &ValidatorsCount{}
	vc[0] = util.Fixed8FromInt64(10)
	vc[1] = util.Fixed8FromInt64(20)
	vc[512] = util.Fixed8FromInt64(30)

	buf := io.NewBufBinWriter()
	vc.EncodeBinary(buf.BinWriter)
	require.NoError(t, buf.Err)

	decoded := &ValidatorsCount{}
	r := io.NewBinReaderFromBuf(buf.Bytes())
	decoded.DecodeBinary(r)
	require.NoError(t, r.Err)
	assert.Equal(t, vc, decoded)
}
