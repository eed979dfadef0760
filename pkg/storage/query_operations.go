package storage

import "sort"

// allKeys returns every key mentioned by any layer, visible or not.
// It is rebuilt on each call; there is no cached index.
func (s *LayeredStore) allKeys() map[string]struct{} {
	keys := make(map[string]struct{})
	for _, l := range s.layers {
		for key := range l {
			keys[key] = struct{}{}
		}
	}
	return keys
}

// CountByValue returns the number of keys whose effective value equals value
func (s *LayeredStore) CountByValue(value string) int {
	count := 0
	for key := range s.allKeys() {
		if v, ok := s.Get(key); ok && v == value {
			count++
		}
	}
	return count
}

// FindByValue returns the keys whose effective value equals value,
// in ascending lexicographic order. The result is never nil.
func (s *LayeredStore) FindByValue(value string) []string {
	found := make([]string, 0)
	for key := range s.allKeys() {
		if v, ok := s.Get(key); ok && v == value {
			found = append(found, key)
		}
	}
	sort.Strings(found)
	return found
}

// Snapshot returns the effective view of the store: every visible key and its value
func (s *LayeredStore) Snapshot() map[string]string {
	view := make(map[string]string)
	for key := range s.allKeys() {
		if v, ok := s.Get(key); ok {
			view[key] = v
		}
	}
	return view
}
