package shared

import (
	"github.com/google/btree"
)

const setDegree = 8

// Set is an ordered collection of handles keyed by resource identity.
// Resource types need no ordering of their own. The set owns a copy of
// every handle it holds and releases it on Delete or Clear.
//
// Like Handle, a Set is not safe for concurrent use.
type Set[T any] struct {
	tree *btree.BTreeG[*Handle[T]]
}

// NewSet creates an empty set.
func NewSet[T any]() *Set[T] {
	return &Set[T]{tree: btree.NewG(setDegree, Less[T])}
}

// Insert adds a copy of h. It returns false, without copying, when h is
// Empty or its resource is already present.
func (s *Set[T]) Insert(h *Handle[T]) bool {
	if h.Empty() || s.tree.Has(h) {
		return false
	}
	s.tree.ReplaceOrInsert(h.Copy())
	return true
}

// Has reports whether h's resource is in the set.
func (s *Set[T]) Has(h *Handle[T]) bool {
	return s.tree.Has(h)
}

// Delete removes h's resource and releases the set's copy.
func (s *Set[T]) Delete(h *Handle[T]) bool {
	held, ok := s.tree.Delete(h)
	if !ok {
		return false
	}
	held.Release()
	return true
}

// Len returns the number of distinct resources in the set.
func (s *Set[T]) Len() int {
	return s.tree.Len()
}

// Ascend calls fn for every handle in address order until fn returns false.
// fn must not release or rebind the handles it is given.
func (s *Set[T]) Ascend(fn func(h *Handle[T]) bool) {
	s.tree.Ascend(fn)
}

// Clear releases every held handle and empties the set.
func (s *Set[T]) Clear() {
	held := make([]*Handle[T], 0, s.tree.Len())
	s.tree.Ascend(func(h *Handle[T]) bool {
		held = append(held, h)
		return true
	})
	s.tree.Clear(false)
	for _, h := range held {
		h.Release()
	}
}
