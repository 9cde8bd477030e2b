package refbench

import (
	"cmp"
	"sort"
)

// Compare performs a three-way lexicographic comparison of two sequences.
//
// The contract:
//   - Elements are compared pairwise from index 0.
//   - The first differing index decides the result; no element past it is read.
//   - If one sequence is a strict prefix of the other, the shorter is less.
//   - Equal length and pairwise-equal elements means equal.
//
// The result is -1, 0, or +1. Comparison is a total, pure function: it never
// mutates either input and has no failure mode. Mismatched lengths are a
// well-defined case, not an error.
func Compare[E cmp.Ordered](a, b []E) int {
	return CompareFunc(a, b, cmp.Compare[E])
}

// CompareFunc is Compare with element ordering delegated to the caller.
//
// compare(x, y) must return a negative value when x < y, zero when x == y,
// and a positive value when x > y. This function only composes sequence-level
// ordering on top of it; it never defines element ordering itself.
//
// compare is invoked exactly once per shared-prefix index up to and including
// the first differing position, and never beyond it.
func CompareFunc[E any](a, b []E, compare func(x, y E) int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compare(a[i], b[i]); c != 0 {
			return sign(c)
		}
	}
	// Shared prefix is identical: shorter is less.
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b have equal length and pairwise-equal elements.
func Equal[E cmp.Ordered](a, b []E) bool { return Compare(a, b) == 0 }

// Less reports whether a orders strictly before b.
func Less[E cmp.Ordered](a, b []E) bool { return Compare(a, b) < 0 }

// LessEqual reports whether a orders before b or equals it.
func LessEqual[E cmp.Ordered](a, b []E) bool { return Compare(a, b) <= 0 }

// Greater reports whether a orders strictly after b.
func Greater[E cmp.Ordered](a, b []E) bool { return Compare(a, b) > 0 }

// GreaterEqual reports whether a orders after b or equals it.
func GreaterEqual[E cmp.Ordered](a, b []E) bool { return Compare(a, b) >= 0 }

// Pair is a key/value element for comparing associative collections.
// Pairs order by key first, then by value.
type Pair[K, V cmp.Ordered] struct {
	Key   K
	Value V
}

// ComparePair is the three-way ordering of two pairs: key first, then value.
func ComparePair[K, V cmp.Ordered](a, b Pair[K, V]) int {
	if c := cmp.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}

// ComparePairs lexicographically compares two pair sequences using ComparePair
// for the elements. Combined with SortedPairs this yields the ordering of two
// key-ordered maps: entries compared in key order, key before value.
func ComparePairs[K, V cmp.Ordered](a, b []Pair[K, V]) int {
	return CompareFunc(a, b, ComparePair[K, V])
}

// SortedPairs flattens a map into its key-ordered pair sequence.
// The result is a fresh slice; the map is not touched beyond iteration.
func SortedPairs[K, V cmp.Ordered](m map[K]V) []Pair[K, V] {
	pairs := make([]Pair[K, V], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair[K, V]{Key: k, Value: v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		return ComparePair(pairs[i], pairs[j]) < 0
	})
	return pairs
}

// sign clamps a comparator result to -1, 0, +1 so CompareFunc callers can
// rely on the canonical values regardless of what the element comparator
// returns.
func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}
