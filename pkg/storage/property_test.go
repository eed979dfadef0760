package storage

import (
	"maps"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var (
	propertyKeys   = []string{"a", "b", "c", "d"}
	propertyValues = []string{"10", "20", ""}
)

// referenceModel keeps one full copy of the effective view per open scope.
// It is the oracle LayeredStore is checked against.
type referenceModel struct {
	scopes []map[string]string
}

func newReferenceModel() *referenceModel {
	return &referenceModel{scopes: []map[string]string{{}}}
}

func (m *referenceModel) view() map[string]string {
	return m.scopes[len(m.scopes)-1]
}

// applyOp decodes code into one store operation and applies it to both the
// store and the model. It returns false if their boolean results disagree.
func applyOp(s *LayeredStore, m *referenceModel, code int) bool {
	key := propertyKeys[(code/8)%len(propertyKeys)]
	value := propertyValues[(code/32)%len(propertyValues)]

	switch code % 8 {
	case 0, 1:
		s.Set(key, value)
		m.view()[key] = value
	case 2:
		s.Unset(key)
		delete(m.view(), key)
	case 3, 4:
		s.Begin()
		m.scopes = append(m.scopes, maps.Clone(m.view()))
	case 5:
		want := len(m.scopes) > 1
		if want {
			m.scopes = m.scopes[:len(m.scopes)-1]
		}
		return s.Rollback() == want
	case 6:
		want := len(m.scopes) > 1
		if want {
			n := len(m.scopes)
			m.scopes[n-2] = m.scopes[n-1]
			m.scopes = m.scopes[:n-1]
		}
		return s.Commit() == want
	case 7:
		// Reads never mutate
		before := s.Stats()
		s.Get(key)
		s.CountByValue(value)
		s.FindByValue(value)
		return s.Stats() == before
	}
	return true
}

func matchesModel(s *LayeredStore, m *referenceModel) bool {
	if s.Depth() != len(m.scopes)-1 {
		return false
	}
	return maps.Equal(s.Snapshot(), m.view())
}

// TestLayeredStoreInvariants uses property-based testing to verify store invariants
// These properties should ALWAYS hold true for any sequence of operations
func TestLayeredStoreInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	opCodes := gen.SliceOf(gen.IntRange(0, 1023))

	// Property 1: store agrees with a naive copy-on-begin model after every step
	properties.Property("effective view matches reference model", prop.ForAll(
		func(codes []int) bool {
			s := NewLayeredStore()
			m := newReferenceModel()
			for _, code := range codes {
				if !applyOp(s, m, code) || !matchesModel(s, m) {
					return false
				}
			}
			return true
		},
		opCodes,
	))

	// Property 2: count always equals the size of find
	properties.Property("CountByValue equals len(FindByValue)", prop.ForAll(
		func(codes []int) bool {
			s := NewLayeredStore()
			m := newReferenceModel()
			for _, code := range codes {
				applyOp(s, m, code)
				for _, v := range propertyValues {
					if s.CountByValue(v) != len(s.FindByValue(v)) {
						return false
					}
				}
			}
			return true
		},
		opCodes,
	))

	// Property 3: find results are strictly ascending
	properties.Property("FindByValue is strictly ascending", prop.ForAll(
		func(codes []int) bool {
			s := NewLayeredStore()
			m := newReferenceModel()
			for _, code := range codes {
				applyOp(s, m, code)
			}
			for _, v := range propertyValues {
				keys := s.FindByValue(v)
				if !sort.StringsAreSorted(keys) {
					return false
				}
				for i := 1; i < len(keys); i++ {
					if keys[i-1] == keys[i] {
						return false
					}
				}
			}
			return true
		},
		opCodes,
	))

	// Property 4: begin followed by rollback restores the exact view
	properties.Property("begin then rollback is invisible", prop.ForAll(
		func(setup, inner []int) bool {
			s := NewLayeredStore()
			m := newReferenceModel()
			for _, code := range setup {
				applyOp(s, m, code)
			}
			before := s.Snapshot()
			depth := s.Depth()

			s.Begin()
			scratch := newReferenceModel()
			for _, code := range inner {
				// Only writes, so the layer opened above stays on top
				if code%8 <= 2 {
					applyOp(s, scratch, code)
				}
			}
			if !s.Rollback() {
				return false
			}
			return s.Depth() == depth && maps.Equal(before, s.Snapshot())
		},
		opCodes,
		opCodes,
	))

	// Property 5: set inside a committed transaction equals a direct set
	properties.Property("begin, set, commit equals set", prop.ForAll(
		func(setup []int, keyIdx, valueIdx int) bool {
			key := propertyKeys[keyIdx]
			value := propertyValues[valueIdx]

			direct, wrapped := NewLayeredStore(), NewLayeredStore()
			dm, wm := newReferenceModel(), newReferenceModel()
			for _, code := range setup {
				applyOp(direct, dm, code)
				applyOp(wrapped, wm, code)
			}

			direct.Set(key, value)

			wrapped.Begin()
			wrapped.Set(key, value)
			if !wrapped.Commit() {
				return false
			}

			return direct.Depth() == wrapped.Depth() &&
				maps.Equal(direct.Snapshot(), wrapped.Snapshot())
		},
		opCodes,
		gen.IntRange(0, len(propertyKeys)-1),
		gen.IntRange(0, len(propertyValues)-1),
	))

	// Property 6: unset hides the key whatever the lower layers hold
	properties.Property("unset always hides the key", prop.ForAll(
		func(setup []int, keyIdx int) bool {
			s := NewLayeredStore()
			m := newReferenceModel()
			for _, code := range setup {
				applyOp(s, m, code)
			}
			key := propertyKeys[keyIdx]
			s.Unset(key)
			_, ok := s.Get(key)
			return !ok
		},
		opCodes,
		gen.IntRange(0, len(propertyKeys)-1),
	))

	// Property 7: commit and rollback at the base change nothing
	properties.Property("no transaction leaves state untouched", prop.ForAll(
		func(codes []int) bool {
			s := NewLayeredStore()
			m := newReferenceModel()
			for _, code := range codes {
				applyOp(s, m, code)
			}
			for s.InTransaction() {
				s.Commit()
			}
			before := s.Snapshot()
			if s.Rollback() || s.Commit() {
				return false
			}
			return maps.Equal(before, s.Snapshot())
		},
		opCodes,
	))

	properties.TestingRun(t)
}
