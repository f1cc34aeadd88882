package mempool

import (
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/util"
)

// Feer is an interface that abstracts the implementation of the fee
// calculation.
type Feer interface {
	NetworkFee(t *transaction.Transaction) util.Fixed8
	FeePerByte(t *transaction.Transaction) util.Fixed8
	SystemFee(t *transaction.Transaction) util.Fixed8
}
