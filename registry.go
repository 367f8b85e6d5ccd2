package curl

import "slices"

// orderedSet is an insertion-ordered collection without duplicates.
// Later elements draw on top of earlier ones.
//
// orderedSet is not safe for concurrent use; Renderer guards it.
type orderedSet[T comparable] struct {
	items []T
}

// add moves v to the end, removing any existing occurrence first.
func (s *orderedSet[T]) add(v T) {
	s.remove(v)
	s.items = append(s.items, v)
}

// remove deletes every occurrence of v. It reports whether anything was removed.
func (s *orderedSet[T]) remove(v T) bool {
	n := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(e T) bool { return e == v })
	return len(s.items) != n
}

// contains reports whether v is present.
func (s *orderedSet[T]) contains(v T) bool {
	return slices.Contains(s.items, v)
}

// len returns the number of elements.
func (s *orderedSet[T]) len() int {
	return len(s.items)
}

// snapshot returns a copy of the elements in order.
func (s *orderedSet[T]) snapshot() []T {
	return slices.Clone(s.items)
}

// each calls fn for every element in order, stopping at the first error.
func (s *orderedSet[T]) each(fn func(i int, v T) error) error {
	for i, v := range s.items {
		if err := fn(i, v); err != nil {
			return err
		}
	}
	return nil
}
