package set

import (
	"iter"
	"slices"
)

// Set provides an insertion ordered set on top of a map[T]int that points
// into a slice of values. Iteration order is stable, which keeps dispatch
// order deterministic from frame to frame.
type Set[T comparable] struct {
	index  map[T]int
	values []T
}

func (s *Set[T]) Insert(value T) bool {
	if s.index == nil {
		s.index = make(map[T]int)
	}

	// check if the value exists
	if _, exists := s.index[value]; exists {
		return false
	}

	s.index[value] = len(s.values)
	s.values = append(s.values, value)
	return true
}

func (s *Set[T]) Remove(value T) bool {
	idx, exists := s.index[value]
	if !exists {
		return false
	}

	delete(s.index, value)
	s.values = slices.Delete(s.values, idx, idx+1)

	// shift the index of all values behind the removed one
	for i := idx; i < len(s.values); i++ {
		s.index[s.values[i]] = i
	}

	return true
}

func (s *Set[T]) Has(value T) bool {
	_, exists := s.index[value]
	return exists
}

// Values iterates over a snapshot of the values, the set can be
// modified while iterating.
func (s *Set[T]) Values() iter.Seq[T] {
	return slices.Values(slices.Clone(s.values))
}

func (s *Set[T]) Slice() []T {
	return slices.Clone(s.values)
}

func (s *Set[T]) Len() int {
	return len(s.values)
}

func (s *Set[T]) Clear() {
	clear(s.index)
	s.values = s.values[:0]
}
