package storage

// MemCachedStore is a wrapper around a persistent store that buffers all the
// changes being made to them in memory, to be later flushed in one batch with
// Persist. Wrapping one MemCachedStore into another provides a nested
// transactional view: the inner layer flushes into the outer one, not into
// the real backend.
type MemCachedStore struct {
	MemoryStore

	// Persistent Store.
	ps Store
}

// KeyValue represents a key-value pair.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// NewMemCachedStore creates a new MemCachedStore object.
func NewMemCachedStore(lower Store) *MemCachedStore {
	return &MemCachedStore{
		MemoryStore: *NewMemoryStore(),
		ps:          lower,
	}
}

// Get implements the Store interface.
func (s *MemCachedStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	k := string(key)
	if val, ok := s.mem[k]; ok {
		return val, nil
	}
	if _, ok := s.del[k]; ok {
		return nil, ErrKeyNotFound
	}
	return s.ps.Get(key)
}

// Seek implements the Store interface. It calls f for the buffered entries
// first and then for the lower layer's entries that are neither buffered nor
// deleted; each of the two runs is in ascending key order, but the two runs
// are not merged into one.
func (s *MemCachedStore) Seek(key []byte, f func(k, v []byte)) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	s.MemoryStore.seek(key, f)
	s.ps.Seek(key, func(k, v []byte) {
		elem := string(k)
		// If it's in mem, we already called f() for it in MemoryStore.Seek().
		_, present := s.mem[elem]
		if !present {
			// If it's in del, we shouldn't be calling f() anyway.
			_, present = s.del[elem]
		}
		if !present {
			f(k, v)
		}
	})
}

// underlyingMemory unwraps the MemoryStore of a memory-backed Store, it
// returns nil for any real database backend.
func underlyingMemory(st Store) *MemoryStore {
	switch t := st.(type) {
	case *MemoryStore:
		return t
	case *MemCachedStore:
		return &t.MemoryStore
	}
	return nil
}

// Persist flushes the accumulated changeset (both puts and deletions) into
// the lower layer in one batch, returning the number of changes flushed.
// Memory-backed lower layers are written to directly, database backends go
// through their batch interface so that the flush is atomic.
func (s *MemCachedStore) Persist() (int, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	changes := len(s.mem) + len(s.del)
	if changes == 0 {
		return 0, nil
	}

	if lower := underlyingMemory(s.ps); lower != nil {
		lower.mut.Lock()
		for k, v := range s.mem {
			put(lower, k, v)
		}
		for k := range s.del {
			drop(lower, k)
		}
		lower.mut.Unlock()
	} else {
		batch := s.ps.Batch()
		for k, v := range s.mem {
			batch.Put([]byte(k), v)
		}
		for k := range s.del {
			batch.Delete([]byte(k))
		}
		if err := s.ps.PutBatch(batch); err != nil {
			return 0, err
		}
	}

	s.mem = make(map[string][]byte)
	s.del = make(map[string]bool)
	return changes, nil
}

// Close implements the Store interface, closing both layers. Dropping the
// memory layer never fails, so the result is that of the lower layer.
func (s *MemCachedStore) Close() error {
	_ = s.MemoryStore.Close()
	return s.ps.Close()
}
