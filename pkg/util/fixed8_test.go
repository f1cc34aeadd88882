package util

import (
	"testing"

	"github.com/novachain/nova-go/pkg/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed8FromInt64(t *testing.T) {
	values := []int64{9000, 100000000, 5, 10945, -42}

	for _, val := range values {
		assert.Equal(t, Fixed8(val*decimals), Fixed8FromInt64(val))
		assert.Equal(t, val, Fixed8FromInt64(val).IntegralValue())
		assert.Equal(t, int32(0), Fixed8FromInt64(val).FractionalValue())
	}
}

func TestFixed8Add(t *testing.T) {
	a := Fixed8FromInt64(1)
	b := Fixed8FromInt64(2)

	c := a.Add(b)
	expected := int64(3)
	assert.Equal(t, expected, c.IntegralValue())
}

func TestFixed8Sub(t *testing.T) {
	a := Fixed8FromInt64(42)
	b := Fixed8FromInt64(34)

	c := a.Sub(b)
	assert.Equal(t, int64(8), c.IntegralValue())
	assert.Equal(t, int32(0), c.FractionalValue())
}

func TestFixed8FromFloat(t *testing.T) {
	inputs := []float64{12.98, 23.87654333, 100.654322, 456789.12345665, -3.14159265}

	for _, val := range inputs {
		assert.Equal(t, Fixed8(val*decimals), Fixed8FromFloat(val))
		assert.Equal(t, val, Fixed8FromFloat(val).FloatValue())
	}
}

func TestFixed8FromString(t *testing.T) {
	// Fixed8FromString works correctly with integers.
	ivalues := []string{"9000", "100000000", "5", "10945", "20.45", "0.00000001", "-42"}
	for _, val := range ivalues {
		n, err := Fixed8FromString(val)
		assert.Nil(t, err)
		assert.Equal(t, val, n.String())
	}

	// Fixed8FromString parses number with maximal precision.
	val := "123456789.12345678"
	n, err := Fixed8FromString(val)
	assert.Nil(t, err)
	assert.Equal(t, Fixed8(12345678912345678), n)

	// Fixed8FromString parses number with missing decimal digits.
	val = "901.2341"
	n, err = Fixed8FromString(val)
	assert.Nil(t, err)
	assert.Equal(t, Fixed8(90123410000), n)

	// Fixed8FromString rejects a value with too many decimal digits.
	val = "100.123456789"
	_, err = Fixed8FromString(val)
	assert.Error(t, err)
}

func TestFixed8UnmarshalJSON(t *testing.T) {
	var testCases = []float64{
		123.45,
		-123.45,
	}

	for _, fl := range testCases {
		str := "123.45"
		if fl < 0 {
			str = "-" + str
		}
		expected := Fixed8FromFloat(fl)

		// UnmarshalJSON should decode floats.
		var u1 Fixed8
		s, _ := expected.MarshalJSON()
		assert.Nil(t, u1.UnmarshalJSON(s))
		assert.Equal(t, expected, u1)

		// UnmarshalJSON should decode strings.
		var u2 Fixed8
		assert.Nil(t, u2.UnmarshalJSON([]byte(`"`+str+`"`)))
		assert.Equal(t, expected, u2)
	}
}

func TestFixed8Serializable(t *testing.T) {
	a := Fixed8(0x0102030405060708)

	w := io.NewBufBinWriter()
	a.EncodeBinary(w.BinWriter)
	require.NoError(t, w.Err)

	var b Fixed8
	r := io.NewBinReaderFromBuf(w.Bytes())
	b.DecodeBinary(r)
	require.NoError(t, r.Err)
	assert.Equal(t, a, b)
}

func TestFixed8CompareTo(t *testing.T) {
	assert.True(t, Fixed8FromInt64(1).CompareTo(Fixed8FromInt64(2)) < 0)
	assert.True(t, Fixed8FromInt64(2).CompareTo(Fixed8FromInt64(1)) > 0)
	assert.Equal(t, 0, Fixed8FromInt64(7).CompareTo(Fixed8FromInt64(7)))
	assert.True(t, Fixed8FromInt64(1).LessThan(Fixed8FromInt64(2)))
	assert.True(t, Fixed8FromInt64(2).GreaterThan(Fixed8FromInt64(1)))
	assert.True(t, Fixed8FromInt64(2).Equal(Fixed8FromInt64(2)))
}
