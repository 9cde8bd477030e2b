package refbench

// View is an aliasing handle: it reports a value of type U while sharing the
// lifetime and counts of a cell owning some other type. Cloning and dropping
// a View clones and drops the underlying ownership; the projected pointer
// stays valid exactly as long as the owner's cell is live.
//
// The standard use is observing a sub-part of a larger owned object without
// giving the part its own lifetime.
type View[U any] struct {
	ptr    *U
	anchor anchor
}

// anchor erases the owner's element type from a View. It is a strong handle
// in disguise: clone duplicates ownership, drop ends it.
type anchor interface {
	clone() anchor
	drop()
}

type strongAnchor[T any] struct {
	s Strong[T]
}

func (a *strongAnchor[T]) clone() anchor {
	return &strongAnchor[T]{s: a.s.Clone()}
}

func (a *strongAnchor[T]) drop() {
	a.s.Drop()
}

// Alias builds a View onto a part of s's owned value. project receives the
// owned value and returns the pointer the view exposes; it is called once,
// immediately. The view holds its own ownership (a clone of s), so s may be
// dropped independently afterwards.
func Alias[T, U any](s *Strong[T], project func(*T) *U) View[U] {
	owner := s.Clone()
	ptr := project(owner.Get())
	return View[U]{
		ptr:    ptr,
		anchor: &strongAnchor[T]{s: owner},
	}
}

// Get returns the projected pointer. Panics if the view has been dropped.
func (v *View[U]) Get() *U {
	if v.anchor == nil {
		panic("refbench: use of released view handle")
	}
	return v.ptr
}

// Clone duplicates the view, incrementing the owning cell's strong count.
func (v *View[U]) Clone() View[U] {
	if v.anchor == nil {
		panic("refbench: Clone of released view handle")
	}
	return View[U]{ptr: v.ptr, anchor: v.anchor.clone()}
}

// Drop releases the view's share of ownership and consumes the view.
func (v *View[U]) Drop() {
	if v.anchor == nil {
		panic("refbench: double Drop of view handle")
	}
	v.anchor.drop()
	v.anchor = nil
	v.ptr = nil
}
