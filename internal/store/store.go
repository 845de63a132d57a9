// Package store provides an append-only arena addressed by typed indices.
// Entries are never removed, so an ID handed out by a Store stays valid for
// the Store's whole lifetime.
package store

// ID addresses an entry of a Store[T].
type ID[T any] uint32

// Store is an append-only collection of T.
type Store[T any] struct {
	items []T
}

// Insert appends v and returns its ID.
func (s *Store[T]) Insert(v T) ID[T] {
	s.items = append(s.items, v)
	return ID[T](len(s.items) - 1)
}

// Get returns the entry for id. It panics if id did not come from s.
func (s *Store[T]) Get(id ID[T]) T {
	return s.items[id]
}

// Contains reports whether id addresses an entry of s.
func (s *Store[T]) Contains(id ID[T]) bool {
	return int(id) < len(s.items)
}

// Len returns the number of entries.
func (s *Store[T]) Len() int {
	return len(s.items)
}

// Values returns a copy of all entries in insertion order.
func (s *Store[T]) Values() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
