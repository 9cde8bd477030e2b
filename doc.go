// Package refbench provides ownership and ordering primitives with
// verifiable laws: lexicographic comparison over sequences, and
// reference-counted shared ownership with safe weak observation.
//
// # Overview
//
// refbench packages two contracts that most codebases re-derive informally
// and get subtly wrong at the edges:
//
//   - ordering: when are two sequences equal, and which comes first?
//   - ownership: who destroys a shared value, when, and exactly how often?
//
// Both contracts come with assertion helpers so tests state the laws
// directly instead of sampling behaviors, and a stress harness that holds
// the ownership laws under real goroutine contention.
//
// # Components
//
// The package concerns, one per file:
//
//   - compare.go    - Lexicographic sequence, pair, and map ordering
//   - cell.go       - Arena-backed reference-counted cells (Strong/Weak)
//   - alias.go      - Views: handles onto sub-parts of an owned value
//   - unique.go     - Move-only exclusive ownership tokens
//   - stack.go      - Checked/unchecked LIFO access over a slice
//   - assertions.go - Test helpers for the ordering and ownership laws
//   - stress.go     - Concurrency stress harness for ownership churn
//
// # Ordering
//
// Compare is a pure, total, three-way lexicographic comparison:
//
//	refbench.Compare([]int{1, 2, 3}, []int{1, 2, 4}) // -1: index 2 decides
//	refbench.Compare([]int{1, 2}, []int{1, 2, 3})    // -1: strict prefix
//	refbench.Compare([]int{}, []int{})               //  0: empty == empty
//
// The first differing index decides the result and nothing past it is read.
// Equal, Less, LessEqual, Greater and GreaterEqual are combinations of
// Compare with no logic of their own. Element ordering is always the
// element type's business: CompareFunc composes sequence ordering over any
// caller-supplied element comparator.
//
// # Ownership
//
// An Arena owns cells; handles are index-plus-generation tokens into it.
// Dereference-after-death is not a latent memory error here: promotion
// yields an explicit empty result, and stale handles fail loudly:
//
//	arena := refbench.NewArena[Conn]()
//	s := arena.Alloc(conn, func(c Conn) { c.Shutdown() })
//
//	s2 := s.Clone()     // strong count 2
//	w := s.Downgrade()  // weak count 1, lifetime unaffected
//
//	s.Drop()            // strong count 1
//	s2.Drop()           // strong count 0: Shutdown runs here, exactly once
//
//	if _, ok := w.Promote(); !ok {
//	    // cell is dead; the only way to learn that safely
//	}
//
// The laws, which the assertion helpers state verbatim:
//
//   - The value is finalized exactly once, at the strong count's 1→0
//     transition, synchronously on the dropping goroutine.
//   - Weak handles never extend a lifetime and never end one.
//   - Promote is a single atomic check-and-increment. There is no window
//     in which it can observe a live cell yet hand back a dying value.
//   - Expired is advisory; Promote is the guarantee.
//   - The control slot outlives the value until the last weak handle drops,
//     then the generation bumps and the slot is reused.
//
// # Exclusive Ownership
//
// Unique is the move-only counterpart for values with exactly one owner:
//
//	u := refbench.NewUnique(f, func(f *os.File) { f.Close() })
//	defer u.Close() // release on every exit path
//
//	v := u.Move()   // ownership transferred; u is now empty
//
// There is no copy operation in the interface. Move consumes the source,
// Release disarms the finalizer and hands the value out, and Close is a
// no-op on an emptied token so deferred cleanup composes with both.
//
// # Testing
//
// State the laws in tests rather than example-by-example:
//
//	func TestOrdering(t *testing.T) {
//	    corpus := [][]int{{}, {1}, {1, 2}, {1, 2, 3}, {2}}
//	    refbench.AssertTotalOrder(t, corpus, refbench.DefaultLawConfig())
//	    refbench.AssertPrefixLaw(t, corpus, refbench.DefaultLawConfig())
//	}
//
// And hold the ownership laws under contention:
//
//	var finalized atomic.Int64
//	op := refbench.ChurnOp(arena, newValue, 3, &finalized)
//	results, err := refbench.RunStress(ctx, op, refbench.DefaultStressConfig())
//
// # Philosophy
//
// Traditional resource code answers: "does this leak?"
// refbench answers: "which law would have to break for it to leak?"
//
// Destruction happens exactly once or the counts are wrong; the counts are
// wrong or the atomics are wrong. Making the laws explicit turns memory
// discipline from a code-review judgment call into a checked property.
//
// # See Also
//
//   - examples/ownership - narrated walkthrough of the cell lifecycle
//   - examples/ordering  - narrated walkthrough of sequence comparison
package refbench
