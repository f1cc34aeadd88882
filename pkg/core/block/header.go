package block

import (
	"fmt"

	"github.com/novachain/nova-go/pkg/io"
)

// Header holds the head info of a block.
type Header struct {
	// Base of the block.
	Base
}

// DecodeBinary implements the Serializable interface.
func (h *Header) DecodeBinary(r *io.BinReader) {
	h.Base.DecodeBinary(r)

	padding := r.ReadB()
	if r.Err == nil && padding != 0 {
		r.Err = fmt.Errorf("format error: padding must equal 0 got %d", padding)
	}
}

// EncodeBinary implements the Serializable interface.
func (h *Header) EncodeBinary(w *io.BinWriter) {
	h.Base.EncodeBinary(w)
	w.WriteB(0)
}
