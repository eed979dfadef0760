package storage

// layer holds the key overrides of one transaction scope (or the base scope)
type layer map[string]Entry

// LayeredStore is an in-memory key-value store with nested transactions.
//
// State is a stack of layers. Index 0 is the base layer and is never removed;
// the last layer is the active scope. Writes go to the active scope only and
// reads resolve top-down, stopping at the first layer that mentions the key.
//
// LayeredStore is not safe for concurrent use. A session drives it from a
// single goroutine.
type LayeredStore struct {
	layers []layer
}

// Statistics describes the current shape of the layer stack
type Statistics struct {
	Depth       int // Open transactions (layers above the base)
	Layers      int // Total layers, base included
	Entries     int // Entries across all layers, tombstones included
	Tombstones  int // Tombstone entries across all layers
	VisibleKeys int // Keys whose effective value exists
}
