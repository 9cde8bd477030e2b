package refbench

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCompare_ThreeWay(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want int
	}{
		{"equal", []int{1, 2, 3}, []int{1, 2, 3}, 0},
		{"first difference decides", []int{1, 2, 3}, []int{1, 2, 4}, -1},
		{"first difference decides reversed", []int{1, 2, 4}, []int{1, 2, 3}, 1},
		{"early difference outweighs later elements", []int{1, 3, 0}, []int{1, 2, 9}, 1},
		{"strict prefix is less", []int{1, 2}, []int{1, 2, 3}, -1},
		{"longer with equal prefix is greater", []int{1, 2, 3}, []int{1, 2}, 1},
		{"empty vs empty", []int{}, []int{}, 0},
		{"empty is less than non-empty", []int{}, []int{1}, -1},
		{"non-empty is greater than empty", []int{1}, []int{}, 1},
		{"nil behaves as empty", nil, []int{}, 0},
		{"single element ordering", []int{5}, []int{7}, -1},
		{"duplicates allowed", []int{2, 2, 2}, []int{2, 2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Compare(tt.a, tt.b))
			require.Equal(t, -tt.want, Compare(tt.b, tt.a))
			AssertDerivedOperators(t, tt.a, tt.b)
		})
	}
}

func TestCompare_Strings(t *testing.T) {
	require.Equal(t, -1, Compare([]string{"apple", "banana"}, []string{"apple", "cherry"}))
	require.Equal(t, 0, Compare([]string{"a", "b"}, []string{"a", "b"}))
	require.Equal(t, 1, Compare([]string{"b"}, []string{"a", "z", "z"}))
}

// The comparator must never read past the first differing index. A counting
// element comparator pins down exactly how many elements are inspected.
func TestCompareFunc_StopsAtFirstDifference(t *testing.T) {
	a := []int{1, 2, 3, 9, 9, 9}
	b := []int{1, 2, 4, 0, 0, 0}

	calls := 0
	got := CompareFunc(a, b, func(x, y int) int {
		calls++
		return x - y
	})

	require.Equal(t, -1, got)
	require.Equal(t, 3, calls, "elements past the first difference were inspected")
}

func TestCompareFunc_EqualPrefixComparesSharedLengthOnly(t *testing.T) {
	a := []int{1, 2}
	b := []int{1, 2, 3, 4}

	calls := 0
	got := CompareFunc(a, b, func(x, y int) int {
		calls++
		return x - y
	})

	require.Equal(t, -1, got)
	require.Equal(t, 2, calls)
}

func TestCompareFunc_ClampsComparatorResult(t *testing.T) {
	// A raw subtraction comparator returns arbitrary magnitudes; CompareFunc
	// must canonicalize to -1/0/+1.
	got := CompareFunc([]int{100}, []int{1}, func(x, y int) int { return x - y })
	require.Equal(t, 1, got)
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	a := []int{3, 1, 2}
	b := []int{3, 1, 1}
	aCopy := append([]int(nil), a...)
	bCopy := append([]int(nil), b...)

	_ = Compare(a, b)
	_ = Compare(b, a)

	require.Empty(t, cmp.Diff(aCopy, a))
	require.Empty(t, cmp.Diff(bCopy, b))
}

func TestCompare_Laws(t *testing.T) {
	corpus := [][]int{
		nil,
		{},
		{0},
		{1},
		{1, 2},
		{1, 2, 3},
		{1, 2, 4},
		{1, 3},
		{2},
		{2, 2, 2},
		{-1, 5},
		{-1},
	}

	cfg := DefaultLawConfig()
	AssertTotalOrder(t, corpus, cfg)
	AssertPrefixLaw(t, corpus, cfg)
}

func TestComparePair_KeyThenValue(t *testing.T) {
	require.Equal(t, -1, ComparePair(Pair[string, int]{"a", 9}, Pair[string, int]{"b", 0}))
	require.Equal(t, -1, ComparePair(Pair[string, int]{"a", 1}, Pair[string, int]{"a", 2}))
	require.Equal(t, 0, ComparePair(Pair[string, int]{"a", 1}, Pair[string, int]{"a", 1}))
	require.Equal(t, 1, ComparePair(Pair[string, int]{"b", 0}, Pair[string, int]{"a", 9}))
}

func TestSortedPairs_KeyOrdered(t *testing.T) {
	m := map[string]int{"cherry": 3, "apple": 1, "banana": 2}

	got := SortedPairs(m)
	want := []Pair[string, int]{
		{Key: "apple", Value: 1},
		{Key: "banana", Value: 2},
		{Key: "cherry", Value: 3},
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestComparePairs_MapOrdering(t *testing.T) {
	// Key-ordered entry sequences give associative collections the same
	// lexicographic semantics as plain sequences.
	m1 := map[string]int{"a": 1, "b": 2}
	m2 := map[string]int{"a": 1, "b": 3}
	m3 := map[string]int{"a": 1, "b": 2, "c": 0}

	require.Equal(t, 0, ComparePairs(SortedPairs(m1), SortedPairs(m1)))
	require.Equal(t, -1, ComparePairs(SortedPairs(m1), SortedPairs(m2)), "value difference at equal key")
	require.Equal(t, -1, ComparePairs(SortedPairs(m1), SortedPairs(m3)), "prefix map is less")
	require.Equal(t, 1, ComparePairs(SortedPairs(m2), SortedPairs(m3)), "entry difference decides before length")
}

func BenchmarkCompare(b *testing.B) {
	a := make([]int, 1024)
	c := make([]int, 1024)
	for i := range a {
		a[i] = i
		c[i] = i
	}
	c[1023] = -1 // difference at the last index: worst case scan

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if Compare(a, c) != 1 {
			b.Fatal("unexpected ordering")
		}
	}
}
