package refbench

// Unique is a move-only owner of a single value: exclusive ownership with no
// copy operation in the interface. Transfer is expressed by consuming the
// source binding (Move), and release on every exit path is a one-line defer:
//
//	u := refbench.NewUnique(openThing(), closeThing)
//	defer u.Close()
//
// Close runs the finalizer exactly once; Move and Release disarm it on the
// source so ownership ends up in exactly one place. Reading through an
// emptied token (after Move, Release, or Close) panics loudly.
type Unique[T any] struct {
	value    *T
	finalize func(T)
}

// NewUnique takes ownership of value. finalize, if non-nil, runs once when
// the token is closed.
func NewUnique[T any](value T, finalize func(T)) Unique[T] {
	return Unique[T]{value: &value, finalize: finalize}
}

// Valid reports whether the token still owns a value.
func (u *Unique[T]) Valid() bool { return u.value != nil }

// Get returns a pointer to the owned value. Panics on an emptied token.
func (u *Unique[T]) Get() *T {
	if u.value == nil {
		panic("refbench: use of empty unique token")
	}
	return u.value
}

// Move transfers ownership to a new token and empties the receiver. The
// finalizer moves with the value; the source can no longer close it.
func (u *Unique[T]) Move() Unique[T] {
	if u.value == nil {
		panic("refbench: Move from empty unique token")
	}
	next := Unique[T]{value: u.value, finalize: u.finalize}
	u.value = nil
	u.finalize = nil
	return next
}

// Release hands the value out and disarms the finalizer: the caller now
// owns cleanup. The token is emptied.
func (u *Unique[T]) Release() T {
	if u.value == nil {
		panic("refbench: Release from empty unique token")
	}
	v := *u.value
	u.value = nil
	u.finalize = nil
	return v
}

// Close runs the finalizer with the owned value and empties the token.
// Close on an empty token (already closed, moved from, or released) is a
// no-op, so a deferred Close composes with Move and Release on other paths.
func (u *Unique[T]) Close() {
	if u.value == nil {
		return
	}
	v := *u.value
	fin := u.finalize
	u.value = nil
	u.finalize = nil
	if fin != nil {
		fin(v)
	}
}
