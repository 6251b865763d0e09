// Package stack provides a LIFO container for iterative graph walks.
package stack

// Stack holds items in last-in, first-out order.
type Stack[T any] interface {
	// Empty returns true if there are no items left.
	Empty() bool
	// Size returns the number of items on the stack.
	Size() int
	// Push places the items on the stack in the order given, so the last one is popped first.
	Push(items ...T)
	// Pop removes and returns the top item. The second return value is false if the stack was empty.
	Pop() (T, bool)
}

// New creates a stack holding the initial items.
func New[T any](initial ...T) Stack[T] {
	s := &stack[T]{}
	s.Push(initial...)
	return s
}

type stack[T any] struct {
	items []T
}

func (s *stack[T]) Empty() bool {
	return len(s.items) == 0
}

func (s *stack[T]) Size() int {
	return len(s.items)
}

func (s *stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

func (s *stack[T]) Pop() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	last := len(s.items) - 1
	top := s.items[last]
	s.items = s.items[:last]
	return top, true
}
