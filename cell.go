package refbench

import (
	"sync"

	"go.uber.org/atomic"
)

// Arena owns the storage and bookkeeping for reference-counted cells.
//
// Each cell lives in a slot holding the value, a strong count, a weak count,
// and a generation number. Handles (Strong, Weak, View) wrap a slot index
// plus the generation they were issued for; they carry no direct pointer to
// the value. Slot lifecycle:
//
//   - Live:      strong >= 1. The value is reachable through strong handles.
//   - Dead:      strong == 0, weak > 0. The value has been finalized exactly
//     once, but the slot survives so weak handles can observe expiry.
//   - Collected: strong == 0 and weak == 0. The generation is bumped and the
//     slot returns to the free list for reuse.
//
// Count mutations are lock-free atomics; the arena mutex guards only slot
// growth and free-list reclaim. An Arena must not be copied after first use.
//
// The zero value is ready to use.
type Arena[T any] struct {
	mu    sync.RWMutex
	slots []*slot[T]
	free  []int32

	allocs   atomic.Int64 // lifetime allocations, for diagnostics
	reclaims atomic.Int64 // lifetime slot reclaims, for diagnostics
}

// slot is the control block plus value storage for one cell.
type slot[T any] struct {
	strong atomic.Int64
	weak   atomic.Int64
	gen    atomic.Uint64

	value    T
	finalize func(T)
}

// Strong is an owning handle: while at least one strong handle exists, the
// value stays alive. Strong handles are tokens, not values: duplicate
// ownership with Clone, end it with Drop. Copying the struct does not copy
// ownership, and dropping a struct copy corrupts nothing: Drop consumes the
// receiver, so only one binding per Clone may ever drop.
type Strong[T any] struct {
	arena *Arena[T]
	idx   int32
	gen   uint64
}

// Weak is a non-owning observer handle. It never keeps the value alive and
// never destroys it. Promote it to a Strong before touching the value.
type Weak[T any] struct {
	arena *Arena[T]
	idx   int32
	gen   uint64
}

// NewArena returns an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Alloc places value into a fresh cell and returns the first strong handle.
// The new cell starts with strong count 1 and no weak observers.
//
// Internally the strong handles collectively hold one weak reference on the
// slot. It is released only after the final Drop has finished finalizing, so
// no weak-side collection can reclaim or reuse the slot while the finalizer
// is still reading it.
//
// finalize, if non-nil, runs exactly once with the value at the moment the
// strong count transitions from 1 to 0, synchronously, on whichever
// goroutine performs that final Drop. It is never deferred and never re-run.
func (a *Arena[T]) Alloc(value T, finalize func(T)) Strong[T] {
	a.mu.Lock()
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, &slot[T]{})
		idx = int32(len(a.slots) - 1)
	}
	sl := a.slots[idx]
	sl.value = value
	sl.finalize = finalize
	sl.strong.Store(1)
	sl.weak.Store(1) // the implicit reference held by the strong handles
	a.mu.Unlock()

	a.allocs.Inc()
	return Strong[T]{arena: a, idx: idx, gen: sl.gen.Load()}
}

// AllocSelf is the two-phase factory for values that hold a weak reference
// to their own cell. It allocates the cell first, then calls install with
// the value in place and a freshly minted self-weak. Because the weak is
// only handed out after a strong handle exists, promoting it during the
// value's own construction is unreachable.
//
// The installed weak belongs to the value: arrange for it to be dropped when
// the value is finalized (typically inside finalize), or the cell's control
// slot is pinned forever.
func AllocSelf[T any](a *Arena[T], value T, finalize func(T), install func(v *T, self Weak[T])) Strong[T] {
	s := a.Alloc(value, finalize)
	install(s.Get(), s.Downgrade())
	return s
}

// Len returns the number of slots currently held by the arena, live or free.
func (a *Arena[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.slots)
}

// Allocs returns the lifetime allocation count. Diagnostic only.
func (a *Arena[T]) Allocs() int64 { return a.allocs.Load() }

// Reclaims returns the lifetime slot-reclaim count. Diagnostic only.
func (a *Arena[T]) Reclaims() int64 { return a.reclaims.Load() }

// slotAt resolves a handle's slot, panicking loudly on misuse: a released
// handle (nil arena) or a stale generation (handle outlived its cell's
// collection). These are contract violations, not recoverable errors.
func slotAt[T any](a *Arena[T], idx int32, gen uint64, kind string) *slot[T] {
	if a == nil {
		panic("refbench: use of released " + kind + " handle")
	}
	a.mu.RLock()
	sl := a.slots[idx]
	a.mu.RUnlock()
	if sl.gen.Load() != gen {
		panic("refbench: stale " + kind + " handle: cell already collected and slot reused")
	}
	return sl
}

// reclaim returns a slot to the free list, bumping its generation so any
// leftover stale handle fails loudly instead of aliasing the next occupant.
// Exactly one dropper reaches here per cell: whichever Drop takes the weak
// count to zero, and that count includes the implicit reference released
// only after finalization.
func (a *Arena[T]) reclaim(idx int32, gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sl := a.slots[idx]
	sl.gen.Store(gen + 1)
	a.free = append(a.free, idx)
	a.reclaims.Inc()
}

// Get returns a pointer to the owned value. The pointer is valid for as long
// as this handle (or any other strong handle to the cell) is live. The value
// itself is not synchronized: concurrent access through multiple strong
// handles is the caller's business.
func (s *Strong[T]) Get() *T {
	sl := slotAt(s.arena, s.idx, s.gen, "strong")
	return &sl.value
}

// Clone duplicates ownership: the strong count is incremented atomically and
// a new independent handle to the same cell is returned. Safe to call
// concurrently with Clone, Drop, and Promote on other handles to the cell.
func (s *Strong[T]) Clone() Strong[T] {
	sl := slotAt(s.arena, s.idx, s.gen, "strong")
	if sl.strong.Inc() <= 1 {
		panic("refbench: Clone on a dead cell")
	}
	return Strong[T]{arena: s.arena, idx: s.idx, gen: s.gen}
}

// Downgrade mints a weak observer handle, incrementing the weak count.
// The value's lifetime is unaffected.
func (s *Strong[T]) Downgrade() Weak[T] {
	sl := slotAt(s.arena, s.idx, s.gen, "strong")
	sl.weak.Inc()
	return Weak[T]{arena: s.arena, idx: s.idx, gen: s.gen}
}

// StrongCount returns the current strong count. Advisory: in the presence of
// concurrent handles the value may be stale the moment it is returned.
func (s *Strong[T]) StrongCount() int64 {
	return slotAt(s.arena, s.idx, s.gen, "strong").strong.Load()
}

// WeakCount returns the number of weak observer handles. Advisory, like
// StrongCount. The implicit reference the strong handles hold is excluded.
func (s *Strong[T]) WeakCount() int64 {
	return slotAt(s.arena, s.idx, s.gen, "strong").weak.Load() - 1
}

// Drop ends this handle's ownership and consumes the handle; any later use
// panics. When the strong count reaches zero the value is finalized exactly
// once, synchronously on this goroutine, and the slot is collected once the
// weak count is also zero.
func (s *Strong[T]) Drop() {
	sl := slotAt(s.arena, s.idx, s.gen, "strong")
	arena, idx, gen := s.arena, s.idx, s.gen
	s.arena = nil

	n := sl.strong.Dec()
	switch {
	case n < 0:
		panic("refbench: strong count underflow")
	case n > 0:
		return
	}

	// Last owner: finalize the value now, on this goroutine.
	fin := sl.finalize
	v := sl.value
	var zero T
	sl.value = zero
	sl.finalize = nil
	if fin != nil {
		fin(v)
	}

	// Release the implicit weak reference. Until this decrement no weak
	// Drop can take the count to zero, so the slot cannot be reclaimed or
	// reused while the finalize section above is still touching it.
	if sl.weak.Dec() == 0 {
		arena.reclaim(idx, gen)
	}
}

// Promote atomically converts the weak handle into a new strong handle if
// the cell is still live. The check and the increment are a single
// compare-and-swap: there is no window in which Promote can observe a live
// cell and return a handle to a value that concurrent Drops have begun
// destroying. The weak handle itself remains valid either way.
//
// The second result is false, and the first is the zero handle, when the
// cell is already dead.
func (w *Weak[T]) Promote() (Strong[T], bool) {
	sl := slotAt(w.arena, w.idx, w.gen, "weak")
	for {
		n := sl.strong.Load()
		if n == 0 {
			return Strong[T]{}, false
		}
		if sl.strong.CompareAndSwap(n, n+1) {
			return Strong[T]{arena: w.arena, idx: w.idx, gen: w.gen}, true
		}
	}
}

// Expired reports whether the cell's value has been destroyed. This is a
// hint only: with concurrent strong handles the answer can be stale
// immediately. Callers that need the value must use Promote instead.
func (w *Weak[T]) Expired() bool {
	return slotAt(w.arena, w.idx, w.gen, "weak").strong.Load() == 0
}

// Clone duplicates the observer: weak count is incremented and a new
// independent weak handle is returned.
func (w *Weak[T]) Clone() Weak[T] {
	sl := slotAt(w.arena, w.idx, w.gen, "weak")
	sl.weak.Inc()
	return Weak[T]{arena: w.arena, idx: w.idx, gen: w.gen}
}

// Drop ends observation and consumes the handle. When the weak count,
// including the implicit reference held by the strong handles, reaches zero
// the cell is already finalized and the slot is collected.
func (w *Weak[T]) Drop() {
	sl := slotAt(w.arena, w.idx, w.gen, "weak")
	arena, idx, gen := w.arena, w.idx, w.gen
	w.arena = nil

	n := sl.weak.Dec()
	if n < 0 {
		panic("refbench: weak count underflow")
	}
	if n == 0 {
		arena.reclaim(idx, gen)
	}
}
