package storage

import "testing"

// TestTransaction_BeginCommit tests basic transaction begin and commit
func TestTransaction_BeginCommit(t *testing.T) {
	s := NewLayeredStore()

	s.Begin()
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	s.Set("a", "10")

	if !s.Commit() {
		t.Fatal("Commit() = false, want true")
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() after commit = %d, want 0", s.Depth())
	}
	mustGet(t, s, "a", "10")
}

// TestTransaction_Rollback tests that rollback discards the active layer
func TestTransaction_Rollback(t *testing.T) {
	s := NewLayeredStore()
	s.Set("a", "10")

	s.Begin()
	s.Set("a", "20")
	s.Set("b", "20")
	mustGet(t, s, "a", "20")

	if !s.Rollback() {
		t.Fatal("Rollback() = false, want true")
	}
	mustGet(t, s, "a", "10")
	mustBeAbsent(t, s, "b")
}

// TestTransaction_NoTransaction tests commit and rollback at the base layer
func TestTransaction_NoTransaction(t *testing.T) {
	s := NewLayeredStore()
	s.Set("a", "10")
	s.Unset("b")

	if s.Rollback() {
		t.Error("Rollback() at base = true, want false")
	}
	if s.Commit() {
		t.Error("Commit() at base = true, want false")
	}

	if len(s.layers) != 1 {
		t.Fatalf("base layer popped: %d layers", len(s.layers))
	}
	assertSnapshot(t, s, map[string]string{"a": "10"})
}

// TestTransaction_Nested tests the innermost rollback keeps outer writes
func TestTransaction_Nested(t *testing.T) {
	s := NewLayeredStore()

	s.Begin()
	s.Set("k", "a")
	s.Begin()
	s.Set("k", "b")
	mustGet(t, s, "k", "b")

	if !s.Rollback() {
		t.Fatal("inner Rollback() = false")
	}
	mustGet(t, s, "k", "a")

	if !s.Rollback() {
		t.Fatal("outer Rollback() = false")
	}
	mustBeAbsent(t, s, "k")

	if s.Rollback() {
		t.Error("third Rollback() should report no transaction")
	}
}

// TestTransaction_NestedCommit tests commits cascade one layer at a time
func TestTransaction_NestedCommit(t *testing.T) {
	s := NewLayeredStore()
	s.Set("a", "0")

	s.Begin()
	s.Set("a", "1")
	s.Begin()
	s.Set("a", "2")
	s.Set("b", "2")

	if !s.Commit() {
		t.Fatal("inner Commit() = false")
	}
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	assertSnapshot(t, s, map[string]string{"a": "2", "b": "2"})

	// Rolling back the outer transaction drops what the inner one committed into it
	if !s.Rollback() {
		t.Fatal("outer Rollback() = false")
	}
	assertSnapshot(t, s, map[string]string{"a": "0"})
}

// TestTransaction_CommitPropagatesTombstones tests deletes survive commit
func TestTransaction_CommitPropagatesTombstones(t *testing.T) {
	s := NewLayeredStore()
	s.Set("a", "10")
	s.Set("keep", "x")

	s.Begin()
	s.Begin()
	s.Unset("a")
	s.Commit()

	// Tombstone now lives in layer 1 and still shadows the base
	if entry, ok := s.layers[1]["a"]; !ok || !entry.IsDeleted() {
		t.Fatalf("layer 1 entry for a = %v, %v, want tombstone", entry, ok)
	}
	mustBeAbsent(t, s, "a")

	s.Commit()
	mustBeAbsent(t, s, "a")
	if entry := s.layers[0]["a"]; !entry.IsDeleted() {
		t.Errorf("base entry for a = %v, want tombstone", entry)
	}
	mustGet(t, s, "keep", "x")
}

// TestTransaction_CommitLeavesUntouchedEntries tests lower-only keys survive commit
func TestTransaction_CommitLeavesUntouchedEntries(t *testing.T) {
	s := NewLayeredStore()
	s.Set("a", "1")
	s.Set("b", "2")

	s.Begin()
	s.Set("b", "3")
	s.Commit()

	assertSnapshot(t, s, map[string]string{"a": "1", "b": "3"})
}

// TestTransaction_BeginRollbackRestoresState tests begin+rollback is a no-op on the view
func TestTransaction_BeginRollbackRestoresState(t *testing.T) {
	s := NewLayeredStore()
	s.Set("a", "1")
	s.Set("b", "2")
	s.Unset("c")
	before := s.Snapshot()

	s.Begin()
	s.Set("a", "changed")
	s.Unset("b")
	s.Set("d", "new")
	s.Rollback()

	assertSnapshot(t, s, before)
}
