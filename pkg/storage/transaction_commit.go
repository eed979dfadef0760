package storage

// Commit merges the active layer into the layer below it and removes it.
// Tombstones propagate like real values. Returns false, leaving the store
// untouched, when no transaction is open.
func (s *LayeredStore) Commit() bool {
	if !s.InTransaction() {
		return false
	}

	n := len(s.layers)
	top, below := s.layers[n-1], s.layers[n-2]
	for key, entry := range top {
		below[key] = entry
	}

	s.pop()
	return true
}

// Rollback discards the active layer. Returns false, leaving the store
// untouched, when no transaction is open.
func (s *LayeredStore) Rollback() bool {
	if !s.InTransaction() {
		return false
	}

	// Nothing below was touched while the layer was open, so dropping it is enough
	s.pop()
	return true
}

// pop removes the active layer. Callers guarantee a layer above the base exists.
func (s *LayeredStore) pop() {
	n := len(s.layers)
	s.layers[n-1] = nil
	s.layers = s.layers[:n-1]
}
