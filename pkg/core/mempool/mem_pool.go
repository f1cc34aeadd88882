package mempool

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/novachain/nova-go/pkg/core/transaction"
	"github.com/novachain/nova-go/pkg/util"
)

var (
	// ErrConflict is returned when the transaction being added is
	// incompatible with the contents of the memory pool (using the same
	// inputs as some other transaction in the pool).
	ErrConflict = errors.New("conflicts with the memory pool")
	// ErrDup is returned when the transaction being added is already
	// present in the memory pool.
	ErrDup = errors.New("already in the memory pool")
	// ErrOOM is returned when the transaction just doesn't fit in the
	// memory pool because of its capacity constraints.
	ErrOOM = errors.New("out of memory")
)

// item represents a transaction in the the Memory pool.
type item struct {
	txn        *transaction.Transaction
	timeStamp  time.Time
	perByteFee util.Fixed8
	netFee     util.Fixed8
}

// items is a slice of an item.
type items []*item

// Pool stores the unconfirmed transactions.
type Pool struct {
	lock         sync.RWMutex
	verifiedMap  map[util.Uint256]*item
	verifiedTxes items

	capacity int
}

func (p items) Len() int           { return len(p) }
func (p items) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p items) Less(i, j int) bool { return p[i].CompareTo(p[j]) < 0 }

// CompareTo returns the difference between two items.
// difference < 0 implies p < otherP.
// difference = 0 implies p = otherP.
// difference > 0 implies p > otherP.
func (p *item) CompareTo(otherP *item) int {
	if otherP == nil {
		return 1
	}

	// Fees sorted ascending, by fee per byte first.
	if ret := p.perByteFee.CompareTo(otherP.perByteFee); ret != 0 {
		return ret
	}

	if ret := p.netFee.CompareTo(otherP.netFee); ret != 0 {
		return ret
	}

	// The final tiebreaker is the hash of the transaction interpreted as
	// a big-endian 256-bit integer, ascending.
	thisHash := uint256.NewInt(0).SetBytes32(p.txn.Hash().BytesBE())
	otherHash := uint256.NewInt(0).SetBytes32(otherP.txn.Hash().BytesBE())
	return thisHash.Cmp(otherHash)
}

// Count returns the total number of uncofirmed transactions.
func (mp *Pool) Count() int {
	mp.lock.RLock()
	defer mp.lock.RUnlock()
	return len(mp.verifiedTxes)
}

// ContainsKey checks if a transaction hash is in the Pool.
func (mp *Pool) ContainsKey(hash util.Uint256) bool {
	mp.lock.RLock()
	defer mp.lock.RUnlock()

	return mp.containsKey(hash)
}

// containsKey is an internal unlocked version of ContainsKey.
func (mp *Pool) containsKey(hash util.Uint256) bool {
	if _, ok := mp.verifiedMap[hash]; ok {
		return true
	}

	return false
}

// Add tries to add the given transaction to the Pool.
func (mp *Pool) Add(t *transaction.Transaction, fee Feer) error {
	pItem := &item{
		txn:        t,
		timeStamp:  time.Now().UTC(),
		perByteFee: fee.FeePerByte(t),
		netFee:     fee.NetworkFee(t),
	}
	mp.lock.Lock()
	if !mp.verify(t) {
		mp.lock.Unlock()
		return ErrConflict
	}
	if mp.containsKey(t.Hash()) {
		mp.lock.Unlock()
		return ErrDup
	}

	mp.verifiedMap[t.Hash()] = pItem
	// Insert into a sorted position.
	n := sort.Search(len(mp.verifiedTxes), func(n int) bool {
		return pItem.CompareTo(mp.verifiedTxes[n]) < 0
	})
	mp.verifiedTxes = append(mp.verifiedTxes, pItem)
	if n != len(mp.verifiedTxes)-1 {
		copy(mp.verifiedTxes[n+1:], mp.verifiedTxes[n:])
		mp.verifiedTxes[n] = pItem
	}
	mp.removeOverCapacity()
	// There can be a case when the item is already popped out of the pool
	// by the cap being reached, the loser is the transaction with the
	// minimum priority.
	_, ok := mp.verifiedMap[t.Hash()]
	updateMempoolMetrics(len(mp.verifiedTxes))
	mp.lock.Unlock()
	if !ok {
		return ErrOOM
	}

	return nil
}

// Remove removes an item from the mempool if it exists there (and does
// nothing if it doesn't).
func (mp *Pool) Remove(hash util.Uint256) {
	mp.lock.Lock()
	if _, ok := mp.verifiedMap[hash]; ok {
		var num int
		delete(mp.verifiedMap, hash)
		for num = range mp.verifiedTxes {
			if hash.Equals(mp.verifiedTxes[num].txn.Hash()) {
				break
			}
		}
		if num < len(mp.verifiedTxes)-1 {
			mp.verifiedTxes = append(mp.verifiedTxes[:num], mp.verifiedTxes[num+1:]...)
		} else if num == len(mp.verifiedTxes)-1 {
			mp.verifiedTxes = mp.verifiedTxes[:num]
		}
	}
	updateMempoolMetrics(len(mp.verifiedTxes))
	mp.lock.Unlock()
}

// removeOverCapacity removes transactions with the lowest priority until the
// the pool is within its capacity. It's supposed to be called from Add with
// the mutex locked.
func (mp *Pool) removeOverCapacity() {
	for len(mp.verifiedTxes) > mp.capacity {
		minItem := mp.verifiedTxes[0]
		delete(mp.verifiedMap, minItem.txn.Hash())
		mp.verifiedTxes = append(mp.verifiedTxes[:0], mp.verifiedTxes[1:]...)
	}
}

// NewMemPool returns a new Pool struct.
func NewMemPool(capacity int) Pool {
	return Pool{
		verifiedMap:  make(map[util.Uint256]*item),
		verifiedTxes: make(items, 0, capacity),
		capacity:     capacity,
	}
}

// TryGetValue returns a transaction if it exists in the memory pool.
func (mp *Pool) TryGetValue(hash util.Uint256) (*transaction.Transaction, bool) {
	mp.lock.RLock()
	defer mp.lock.RUnlock()
	if pItem, ok := mp.verifiedMap[hash]; ok {
		return pItem.txn, ok
	}

	return nil, false
}

// GetVerifiedTransactions returns a copy of the current pool contents in the
// descending priority order (the most prioritized transaction first).
func (mp *Pool) GetVerifiedTransactions() []*transaction.Transaction {
	mp.lock.RLock()
	defer mp.lock.RUnlock()

	var t = make([]*transaction.Transaction, len(mp.verifiedTxes))
	for i := range mp.verifiedTxes {
		t[len(mp.verifiedTxes)-1-i] = mp.verifiedTxes[i].txn
	}

	return t
}

// RemoveStale filters the verified transactions through the given function,
// keeping only the ones for which it returns true. It's used to quickly drop
// a part of the mempool that is now invalid after a block acceptance.
func (mp *Pool) RemoveStale(isOK func(*transaction.Transaction) bool) {
	mp.lock.Lock()
	// We can reuse already allocated slice though we'll truncate it.
	newVerifiedTxes := mp.verifiedTxes[:0]
	for _, itm := range mp.verifiedTxes {
		if isOK(itm.txn) {
			newVerifiedTxes = append(newVerifiedTxes, itm)
		} else {
			delete(mp.verifiedMap, itm.txn.Hash())
		}
	}
	mp.verifiedTxes = newVerifiedTxes
	mp.lock.Unlock()
}

// verify checks if the inputs of a transaction tx are already used in any
// other transaction in the memory pool. If yes, the transaction tx is not a
// valid transaction and the function returns false. It's supposed to be
// called with the mutex locked.
func (mp *Pool) verify(tx *transaction.Transaction) bool {
	inputs := make([]transaction.Input, 0, len(tx.Inputs))
	for _, item := range mp.verifiedMap {
		if tx.Hash().Equals(item.txn.Hash()) {
			continue
		}
		inputs = append(inputs, item.txn.Inputs...)
	}

	if i := transaction.InputIntersection(inputs, tx.Inputs); len(i) > 0 {
		return false
	}
	return true
}

// Verify checks if the inputs of a transaction tx conflict with any other
// transaction in the memory pool.
func (mp *Pool) Verify(tx *transaction.Transaction) bool {
	mp.lock.RLock()
	defer mp.lock.RUnlock()
	return mp.verify(tx)
}
