package util

import (
	"encoding/json"
	"testing"

	"github.com/novachain/nova-go/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint256UnmarshalJSON(t *testing.T) {
	str := "f037308fa0ab18155bccfc08485468c112409ea5064595699e98c545f245f32d"
	expected, err := Uint256DecodeStringLE(str)
	assert.NoError(t, err)

	// UnmarshalJSON decodes hex-strings
	var u1, u2 Uint256

	assert.NoError(t, u1.UnmarshalJSON([]byte(`"`+str+`"`)))
	assert.True(t, expected.Equals(u1))

	s, err := expected.MarshalJSON()
	assert.NoError(t, err)

	// UnmarshalJSON decodes hex-strings prefixed by 0x
	assert.NoError(t, u2.UnmarshalJSON(s))
	assert.True(t, expected.Equals(u2))

	// UnmarshalJSON does not accepts numbers
	assert.Error(t, u2.UnmarshalJSON([]byte("123")))

	// Marshalling defaults to the LE representation prefixed with 0x.
	out, err := json.Marshal(expected)
	assert.NoError(t, err)
	assert.Equal(t, `"0x`+str+`"`, string(out))
}

func TestUint256DecodeString(t *testing.T) {
	hexStr := "f037308fa0ab18155bccfc08485468c112409ea5064595699e98c545f245f32d"
	val, err := Uint256DecodeStringLE(hexStr)
	assert.NoError(t, err)
	assert.Equal(t, hexStr, val.StringLE())

	_, err = Uint256DecodeStringLE(hexStr[1:])
	assert.Error(t, err)

	_, err = Uint256DecodeStringLE(hexStr[:len(hexStr)-2] + "zz")
	assert.Error(t, err)
}

func TestUint256DecodeBytes(t *testing.T) {
	b := make([]byte, Uint256Size)
	for i := range b {
		b[i] = byte(i)
	}
	val, err := Uint256DecodeBytesBE(b)
	assert.NoError(t, err)
	assert.Equal(t, b, val.BytesBE())
	assert.Equal(t, ArrayReverse(b), val.BytesLE())

	_, err = Uint256DecodeBytesBE(b[:10])
	assert.Error(t, err)
}

func TestUint256Equals(t *testing.T) {
	a := "f037308fa0ab18155bccfc08485468c112409ea5064595699e98c545f245f32d"
	b := "e287c5b29a1b66092be6803c59c765308ac20287e1b4977fd399da5fc8f66ab5"

	ua, err := Uint256DecodeStringLE(a)
	require.NoError(t, err)
	ub, err := Uint256DecodeStringLE(b)
	require.NoError(t, err)
	assert.False(t, ua.Equals(ub), "%s and %s cannot be equal", ua, ub)
	assert.True(t, ua.Equals(ua), "%s and %s must be equal", ua, ua)

	assert.NotEqual(t, 0, ua.CompareTo(ub))
	assert.Equal(t, 0, ua.CompareTo(ua))
}

func TestUint256Serializable(t *testing.T) {
	a := Uint256{1, 2, 3, 4, 5}

	w := io.NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	require.NoError(t, w.Err)

	var b Uint256
	r := io.NewBinReaderFromBuf(w.Bytes())
	b.DecodeBinary(r)
	require.NoError(t, r.Err)
	assert.Equal(t, a, b)
	assert.Equal(t, a, a.Reverse().Reverse())
}
