package refbench

import (
	"cmp"
	"testing"
)

// LawConfig bounds the corpus-wide law assertions.
type LawConfig struct {
	// Maximum number of sequences examined from a corpus (quadratic and
	// cubic law checks get expensive past this).
	MaxSequences int

	// Maximum prefix depth examined by the prefix law.
	MaxPrefixDepth int
}

// DefaultLawConfig returns bounds that keep the cubic transitivity sweep
// comfortably inside ordinary test budgets.
func DefaultLawConfig() LawConfig {
	return LawConfig{
		MaxSequences:   32,
		MaxPrefixDepth: 16,
	}
}

// AssertTotalOrder verifies that Compare is a total order over the corpus.
//
// Laws checked:
//   - Reflexivity: Compare(A, A) == 0 for every A.
//   - Antisymmetry: Compare(A, B) == -Compare(B, A) for every pair.
//   - Trichotomy: exactly one of A < B, A == B, B < A holds.
//   - Transitivity: A < B and B < C implies A < C, over every triple.
func AssertTotalOrder[E cmp.Ordered](t *testing.T, corpus [][]E, cfg LawConfig) {
	t.Helper()

	if len(corpus) > cfg.MaxSequences {
		corpus = corpus[:cfg.MaxSequences]
	}

	for i, a := range corpus {
		if got := Compare(a, a); got != 0 {
			t.Errorf("Reflexivity violated: Compare(corpus[%d], corpus[%d]) = %d, want 0", i, i, got)
		}
	}

	for i, a := range corpus {
		for j, b := range corpus {
			ab := Compare(a, b)
			ba := Compare(b, a)
			if ab != -ba {
				t.Errorf("Antisymmetry violated: Compare(corpus[%d], corpus[%d]) = %d but reverse = %d",
					i, j, ab, ba)
			}
		}
	}

	for i, a := range corpus {
		for j, b := range corpus {
			for k, c := range corpus {
				if Compare(a, b) < 0 && Compare(b, c) < 0 && Compare(a, c) >= 0 {
					t.Errorf("Transitivity violated: corpus[%d] < corpus[%d] < corpus[%d] "+
						"but Compare(corpus[%d], corpus[%d]) = %d",
						i, j, k, i, k, Compare(a, c))
				}
			}
		}
	}

	t.Logf("✓ Total order: %d sequences, %d pairs, %d triples checked",
		len(corpus), len(corpus)*len(corpus), len(corpus)*len(corpus)*len(corpus))
}

// AssertPrefixLaw verifies that every strict prefix of a sequence orders
// strictly before it, down to the empty sequence.
func AssertPrefixLaw[E cmp.Ordered](t *testing.T, corpus [][]E, cfg LawConfig) {
	t.Helper()

	checked := 0
	for i, a := range corpus {
		depth := len(a)
		if depth > cfg.MaxPrefixDepth {
			depth = cfg.MaxPrefixDepth
		}
		for n := 0; n < depth; n++ {
			if got := Compare(a[:n], a); got != -1 {
				t.Errorf("Prefix law violated: Compare(corpus[%d][:%d], corpus[%d]) = %d, want -1",
					i, n, i, got)
			}
			checked++
		}
	}

	t.Logf("✓ Prefix law: %d strict prefixes checked across %d sequences", checked, len(corpus))
}

// AssertDerivedOperators verifies that Equal, Less, LessEqual, Greater and
// GreaterEqual are consistent with the three-way Compare for the given pair.
// They are defined as combinations of it and must never disagree.
func AssertDerivedOperators[E cmp.Ordered](t *testing.T, a, b []E) {
	t.Helper()

	c := Compare(a, b)
	checks := []struct {
		name string
		got  bool
		want bool
	}{
		{"Equal", Equal(a, b), c == 0},
		{"Less", Less(a, b), c < 0},
		{"LessEqual", LessEqual(a, b), c <= 0},
		{"Greater", Greater(a, b), c > 0},
		{"GreaterEqual", GreaterEqual(a, b), c >= 0},
	}
	for _, ch := range checks {
		if ch.got != ch.want {
			t.Errorf("Derived operator %s(%v, %v) = %v, inconsistent with Compare = %d",
				ch.name, a, b, ch.got, c)
		}
	}
}

// AssertCellCounts verifies the strong and weak counts observed through a
// strong handle. Only meaningful when no other goroutine is mutating the
// cell's handles.
func AssertCellCounts[T any](t *testing.T, s *Strong[T], wantStrong, wantWeak int64) {
	t.Helper()

	if got := s.StrongCount(); got != wantStrong {
		t.Errorf("Strong count = %d, want %d", got, wantStrong)
	}
	if got := s.WeakCount(); got != wantWeak {
		t.Errorf("Weak count = %d, want %d", got, wantWeak)
	}
	t.Logf("✓ Counts: strong=%d weak=%d", wantStrong, wantWeak)
}

// AssertExpired verifies a weak handle observes a dead cell: Expired is true
// and Promote yields the empty result.
func AssertExpired[T any](t *testing.T, w *Weak[T]) {
	t.Helper()

	if !w.Expired() {
		t.Errorf("Expired() = false, want true")
	}
	if _, ok := w.Promote(); ok {
		t.Errorf("Promote() succeeded on a dead cell; want empty result")
	}
	t.Logf("✓ Expired: promotion denied, expiry observed")
}

// AssertLive verifies a weak handle can still reach its cell: Promote
// succeeds and the promoted handle is immediately dropped.
func AssertLive[T any](t *testing.T, w *Weak[T]) {
	t.Helper()

	s, ok := w.Promote()
	if !ok {
		t.Fatalf("Promote() returned empty on a live cell")
	}
	s.Drop()
	t.Logf("✓ Live: promotion succeeded")
}
