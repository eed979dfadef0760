package storage

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// mustGet fails the test unless key resolves to want
func mustGet(t *testing.T, s *LayeredStore, key, want string) {
	t.Helper()
	got, ok := s.Get(key)
	if !ok {
		t.Fatalf("Get(%q) = absent, want %q", key, want)
	}
	if got != want {
		t.Fatalf("Get(%q) = %q, want %q", key, got, want)
	}
}

// mustBeAbsent fails the test if key resolves to a value
func mustBeAbsent(t *testing.T, s *LayeredStore, key string) {
	t.Helper()
	if got, ok := s.Get(key); ok {
		t.Fatalf("Get(%q) = %q, want absent", key, got)
	}
}

// assertSnapshot compares the effective view of the store against want
func assertSnapshot(t *testing.T, s *LayeredStore, want map[string]string) {
	t.Helper()
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}
}
