package storage

import "testing"

func TestLayeredStore_Stats(t *testing.T) {
	s := NewLayeredStore()

	stats := s.Stats()
	if stats != (Statistics{Layers: 1}) {
		t.Errorf("empty store stats = %+v", stats)
	}

	s.Set("a", "1")
	s.Set("b", "2")
	s.Begin()
	s.Unset("a")
	s.Unset("ghost")
	s.Set("c", "3")

	stats = s.Stats()
	want := Statistics{
		Depth:       1,
		Layers:      2,
		Entries:     5,
		Tombstones:  2,
		VisibleKeys: 2,
	}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}
