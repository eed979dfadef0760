package storage

import "strconv"

// EntryKind tags what a layer entry holds
type EntryKind uint8

const (
	// KindReal marks an entry carrying a string value
	KindReal EntryKind = iota
	// KindDeleted marks a tombstone: the key is explicitly absent as of this layer
	KindDeleted
)

// String returns the string representation of an entry kind
func (k EntryKind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Entry is a single key override inside a layer.
// The zero Entry is Real("").
type Entry struct {
	Kind  EntryKind
	value string
}

// Real creates an entry holding value
func Real(value string) Entry {
	return Entry{Kind: KindReal, value: value}
}

// Deleted creates a tombstone entry
func Deleted() Entry {
	return Entry{Kind: KindDeleted}
}

// IsDeleted reports whether the entry is a tombstone
func (e Entry) IsDeleted() bool {
	return e.Kind == KindDeleted
}

// Value returns the entry's string value. ok is false for tombstones.
func (e Entry) Value() (string, bool) {
	if e.Kind == KindDeleted {
		return "", false
	}
	return e.value, true
}

// String renders the entry for logs and debugging
func (e Entry) String() string {
	if e.Kind == KindDeleted {
		return "<deleted>"
	}
	return strconv.Quote(e.value)
}
