package storage

// Begin opens a nested transaction by pushing an empty layer
func (s *LayeredStore) Begin() {
	s.layers = append(s.layers, make(layer))
}

// Depth returns the number of open transactions
func (s *LayeredStore) Depth() int {
	return len(s.layers) - 1
}

// InTransaction reports whether at least one transaction is open
func (s *LayeredStore) InTransaction() bool {
	return len(s.layers) > 1
}
