package smartcontract

import (
	"fmt"
	"sort"

	"github.com/novachain/nova-go/pkg/crypto/keys"
	"github.com/novachain/nova-go/pkg/io"
	"github.com/novachain/nova-go/pkg/vm/emit"
	"github.com/novachain/nova-go/pkg/vm/opcode"
)

// CreateMultiSigRedeemScript creates an "m out of n" type verification script
// where n is the length of publicKeys.
func CreateMultiSigRedeemScript(m int, publicKeys keys.PublicKeys) ([]byte, error) {
	if m < 1 {
		return nil, fmt.Errorf("param m cannot be smaller than 1, got %d", m)
	}
	if m > len(publicKeys) {
		return nil, fmt.Errorf("length of the signatures (%d) is higher then the number of public keys", m)
	}
	if m > 1024 {
		return nil, fmt.Errorf("public key count %d exceeds maximum of length 1024", m)
	}

	buf := io.NewBufBinWriter()
	emit.Int(buf.BinWriter, int64(m))
	sort.Sort(publicKeys)
	for _, pubKey := range publicKeys {
		emit.Bytes(buf.BinWriter, pubKey.Bytes())
	}
	emit.Int(buf.BinWriter, int64(len(publicKeys)))
	emit.Opcode(buf.BinWriter, opcode.CHECKMULTISIG)

	return buf.Bytes(), nil
}

// CreateSignatureRedeemScript creates a check signature script runnable by
// the VM.
func CreateSignatureRedeemScript(key *keys.PublicKey) ([]byte, error) {
	buf := io.NewBufBinWriter()
	emit.Bytes(buf.BinWriter, key.Bytes())
	emit.Opcode(buf.BinWriter, opcode.CHECKSIG)
	return buf.Bytes(), nil
}
