package address

import (
	"errors"

	"github.com/mr-tron/base58"
	"github.com/novachain/nova-go/pkg/crypto/hash"
	"github.com/novachain/nova-go/pkg/util"
)

// Prefix is the byte used to prepend to addresses when encoding them, it can
// be changed and defaults to 23 (0x17), the standard Nova prefix.
var Prefix = byte(0x17)

// Uint160ToString returns the "Nova address" from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	// Don't forget to prepend the address version.
	b := append([]byte{Prefix}, u.BytesBE()...)
	return base58CheckEncode(b)
}

// StringToUint160 attempts to decode the given Nova address string
// into a Uint160.
func StringToUint160(s string) (u util.Uint160, err error) {
	b, err := base58CheckDecode(s)
	if err != nil {
		return u, err
	}
	if b[0] != Prefix {
		return u, errors.New("wrong address prefix")
	}
	return util.Uint160DecodeBytesBE(b[1:21])
}

// base58CheckEncode encodes b into a base-58 check encoded string.
func base58CheckEncode(b []byte) string {
	b = append(b, hash.Checksum(b)...)
	return base58.Encode(b)
}

// base58CheckDecode decodes the given string.
func base58CheckDecode(s string) (b []byte, err error) {
	b, err = base58.Decode(s)
	if err != nil {
		return nil, err
	}

	if len(b) < 25 {
		return nil, errors.New("invalid base-58 check string: missing checksum")
	}

	sum := hash.Checksum(b[:len(b)-4])
	for i := range sum {
		if sum[i] != b[len(b)-4+i] {
			return nil, errors.New("invalid base-58 check string: invalid checksum")
		}
	}

	// Strip the 4 byte long hash.
	b = b[:len(b)-4]
	return b, nil
}
