package storage

// NewLayeredStore creates a store holding only the empty base layer
func NewLayeredStore() *LayeredStore {
	return &LayeredStore{
		layers: []layer{make(layer)},
	}
}

// top returns the active layer
func (s *LayeredStore) top() layer {
	return s.layers[len(s.layers)-1]
}

// Set writes value for key into the active layer
func (s *LayeredStore) Set(key, value string) {
	s.top()[key] = Real(value)
}

// Get returns the effective value of key.
// ok is false if the key was never set or the deciding layer holds a tombstone.
func (s *LayeredStore) Get(key string) (value string, ok bool) {
	entry, found := s.resolve(key)
	if !found {
		return "", false
	}
	return entry.Value()
}

// Unset writes a tombstone for key into the active layer.
// The tombstone is written even if no layer mentions the key.
func (s *LayeredStore) Unset(key string) {
	s.top()[key] = Deleted()
}

// resolve scans the layers from the top down and returns the first entry for key
func (s *LayeredStore) resolve(key string) (Entry, bool) {
	for i := len(s.layers) - 1; i >= 0; i-- {
		if entry, ok := s.layers[i][key]; ok {
			return entry, true
		}
	}
	return Entry{}, false
}
