package transaction

import (
	"github.com/novachain/nova-go/pkg/io"
)

// IssueTX represents an issue transaction.
// This TX has no special attributes.
type IssueTX struct{}

// DecodeBinary implements the Serializable interface.
func (tx *IssueTX) DecodeBinary(r *io.BinReader) {
}

// EncodeBinary implements the Serializable interface.
func (tx *IssueTX) EncodeBinary(w *io.BinWriter) {
}
