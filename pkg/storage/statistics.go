package storage

// Stats returns the current shape of the layer stack.
// VisibleKeys resolves every known key, so the call is linear in the entry count.
func (s *LayeredStore) Stats() Statistics {
	stats := Statistics{
		Depth:  s.Depth(),
		Layers: len(s.layers),
	}

	for _, l := range s.layers {
		stats.Entries += len(l)
		for _, entry := range l {
			if entry.IsDeleted() {
				stats.Tombstones++
			}
		}
	}

	for key := range s.allKeys() {
		if _, ok := s.Get(key); ok {
			stats.VisibleKeys++
		}
	}

	return stats
}
