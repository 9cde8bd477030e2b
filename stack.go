package refbench

import "cmp"

// Stack is a LIFO container over a slice. The zero value is an empty stack.
//
// Two access styles are exposed on purpose. The checked style (Pop, Peek)
// returns an ok flag and is the primary API. The Must style (MustPop,
// MustPeek) panics on an empty stack, the unchecked convenience for code
// that has already established non-emptiness. There is no silent
// undefined-behavior path: misuse of Must on an empty stack fails loudly
// and immediately.
type Stack[T any] struct {
	items []T
}

// NewStack returns a stack seeded bottom-to-top with items.
func NewStack[T any](items ...T) *Stack[T] {
	s := &Stack[T]{items: make([]T, len(items))}
	copy(s.items, items)
	return s
}

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top element. ok is false on an empty stack,
// in which case the stack is unchanged.
func (s *Stack[T]) Pop() (v T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return v, false
	}
	v = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return v, true
}

// Peek returns the top element without removing it. ok is false on an
// empty stack.
func (s *Stack[T]) Peek() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	return s.items[len(s.items)-1], true
}

// MustPop is Pop that panics on an empty stack.
func (s *Stack[T]) MustPop() T {
	v, ok := s.Pop()
	if !ok {
		panic("refbench: MustPop on empty stack")
	}
	return v
}

// MustPeek is Peek that panics on an empty stack.
func (s *Stack[T]) MustPeek() T {
	v, ok := s.Peek()
	if !ok {
		panic("refbench: MustPeek on empty stack")
	}
	return v
}

// Len returns the number of stacked elements.
func (s *Stack[T]) Len() int { return len(s.items) }

// Empty reports whether the stack holds no elements.
func (s *Stack[T]) Empty() bool { return len(s.items) == 0 }

// Items returns a bottom-to-top copy of the elements. Mutating the result
// does not affect the stack.
func (s *Stack[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// CompareStacks lexicographically compares two stacks over their
// bottom-to-top element sequences: the ordering of the underlying
// containers, not of the pop order.
func CompareStacks[E cmp.Ordered](a, b *Stack[E]) int {
	return Compare(a.items, b.items)
}
