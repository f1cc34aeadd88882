package keys

import (
	"encoding/hex"
	"sort"
	"testing"

	"github.com/novachain/nova-go/pkg/crypto/hash"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeInfinity(t *testing.T) {
	key := &PublicKey{}
	buf := io.NewBufBinWriter()
	key.EncodeBinary(buf.BinWriter)
	require.NoError(t, buf.Err)
	b := buf.Bytes()
	require.Equal(t, 1, len(b))

	keyDecode := &PublicKey{}
	require.NoError(t, keyDecode.DecodeBytes(b))
	require.Equal(t, []byte{0x00}, keyDecode.Bytes())
}

func TestEncodeDecodePublicKey(t *testing.T) {
	for i := 0; i < 4; i++ {
		k, err := NewPrivateKey()
		require.NoError(t, err)
		p := k.PublicKey()
		buf := io.NewBufBinWriter()
		p.EncodeBinary(buf.BinWriter)
		require.NoError(t, buf.Err)
		b := buf.Bytes()

		pDecode := &PublicKey{}
		require.NoError(t, pDecode.DecodeBytes(b))
		require.Equal(t, p.X, pDecode.X)
		require.Equal(t, p.Y, pDecode.Y)
		require.True(t, p.Equal(pDecode))
	}
}

func TestDecodeFromString(t *testing.T) {
	str := "03b209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c"
	pubKey, err := NewPublicKeyFromString(str)
	require.NoError(t, err)
	require.Equal(t, str, hex.EncodeToString(pubKey.Bytes()))
}

func TestPubkeyToAddress(t *testing.T) {
	pubKey, err := NewPublicKeyFromString("031ee4e73a17d8f76dc02532e2620bcb12425b33c0c9f9694cc2caa8226b68cad4")
	require.NoError(t, err)
	actual := pubKey.Address()
	// The address is base58-check encoded and starts with the 0x17
	// version prefix which maps to 'A'.
	require.Equal(t, byte('A'), actual[0])

	script := pubKey.GetVerificationScript()
	require.Equal(t, 35, len(script))
	require.Equal(t, byte(33), script[0])
	require.Equal(t, hash.Hash160(script), pubKey.GetScriptHash())
}

func TestSortPublicKeys(t *testing.T) {
	pubs := make(PublicKeys, 0, 4)
	for i := 0; i < 4; i++ {
		k, err := NewPrivateKey()
		require.NoError(t, err)
		pubs = append(pubs, k.PublicKey())
	}
	sort.Sort(pubs)
	for i := 1; i < len(pubs); i++ {
		require.True(t, pubs[i-1].Cmp(pubs[i]) <= 0)
	}
	require.True(t, pubs.Contains(pubs[0]))
	require.Equal(t, len(pubs), len(pubs.Unique()))
}

func TestPublicKeysBytesRoundtrip(t *testing.T) {
	pubs := make(PublicKeys, 0, 3)
	for i := 0; i < 3; i++ {
		k, err := NewPrivateKey()
		require.NoError(t, err)
		pubs = append(pubs, k.PublicKey())
	}
	data := pubs.Bytes()
	require.NotNil(t, data)

	var decoded PublicKeys
	require.NoError(t, decoded.DecodeBytes(data))
	require.Equal(t, len(pubs), len(decoded))
	for i := range pubs {
		require.True(t, pubs[i].Equal(decoded[i]))
	}
}

func TestMarshallJSON(t *testing.T) {
	str := "03b209fd4f53a7170ea4444e0cb0a6bb6a53c2bd016926989cf85f9b0fba17a70c"
	pubKey, err := NewPublicKeyFromString(str)
	require.NoError(t, err)

	bytes, err := pubKey.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"`+str+`"`, string(bytes))

	pubKey2 := &PublicKey{}
	require.NoError(t, pubKey2.UnmarshalJSON(bytes))
	require.True(t, pubKey.Equal(pubKey2))
}
