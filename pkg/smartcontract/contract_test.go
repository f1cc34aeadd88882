package smartcontract

import (
	"testing"

	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/vm/opcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMultiSigRedeemScript(t *testing.T) {
	val1, err := keys.NewPublicKeyFromString("02b3622bf4017bdfe317c58aed5f4c753f206b7db896046fa7d774bbc4bf7f8dc2")
	require.NoError(t, err)
	val2, err := keys.NewPublicKeyFromString("02103a7f7dd016558597f7960d27c516a4394fd968b9e65155eb4b013e4040406e")
	require.NoError(t, err)
	val3, err := keys.NewPublicKeyFromString("03d90c07df63e690ce77912e10ab51acc944b66860237b608c4f8f8309e71ee699")
	require.NoError(t, err)

	validators := keys.PublicKeys{val1, val2, val3}

	out, err := CreateMultiSigRedeemScript(3, validators)
	require.NoError(t, err)

	assert.Equal(t, opcode.PUSH3, opcode.Opcode(out[0]))
	assert.Equal(t, opcode.CHECKMULTISIG, opcode.Opcode(out[len(out)-1]))
	assert.Equal(t, opcode.PUSH3, opcode.Opcode(out[len(out)-2]))

	// 3 keys of 33 bytes with a length prefix each, plus m, n and the
	// check op.
	assert.Equal(t, 3+3*34, len(out))

	// The keys are sorted inside.
	var prev *keys.PublicKey
	for i := 1; i < len(out)-2; i += 34 {
		assert.Equal(t, byte(33), out[i])
		cur := &keys.PublicKey{}
		require.NoError(t, cur.DecodeBytes(out[i+1:i+34]))
		if prev != nil {
			assert.True(t, prev.Cmp(cur) <= 0)
		}
		prev = cur
	}
}

func TestCreateMultiSigRedeemScriptErrors(t *testing.T) {
	_, err := CreateMultiSigRedeemScript(0, keys.PublicKeys{})
	require.Error(t, err)

	key, err := keys.NewPrivateKey()
	require.NoError(t, err)
	_, err = CreateMultiSigRedeemScript(2, keys.PublicKeys{key.PublicKey()})
	require.Error(t, err)
}

func TestCreateSignatureRedeemScript(t *testing.T) {
	key, err := keys.NewPrivateKey()
	require.NoError(t, err)

	script, err := CreateSignatureRedeemScript(key.PublicKey())
	require.NoError(t, err)
	assert.Equal(t, 35, len(script))
	assert.Equal(t, byte(33), script[0])
	assert.Equal(t, opcode.CHECKSIG, opcode.Opcode(script[len(script)-1]))
}
