package transaction

import (
	"github.com/novachain/nova-go/pkg/io"
)

// TXer is an interface that can act as the underlying data of a transaction.
type TXer interface {
	io.Serializable
}
