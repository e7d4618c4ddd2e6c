package ecs

import (
	"iter"

	"github.com/argus-labs/gamma/pkg/assert"
)

const sparseTombstone = -1

// SparseSet stores every component of type T. It keeps three arrays: sparse maps an entity index
// to a dense row, and entities/components are parallel dense arrays holding the full handle and the
// value for each row. Insert, lookup and remove are O(1) and iteration walks contiguous memory.
//
// The structure satisfies, after every operation:
//   - sparse[i] == r implies entities[r].index == i
//   - sparse[entities[r].index] == r for every row r
//   - len(entities) == len(components)
//
// Lookups compare the full handle, so a value stored for one generation is never returned for
// another.
type SparseSet[T any] struct {
	sparse     []int    // Entity index -> dense row, or sparseTombstone
	entities   []Entity // Dense handles, parallel to components
	components []T      // Dense component values
}

var _ Storage = (*SparseSet[struct{}])(nil)

// NewSparseSet creates an empty sparse set.
func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{
		sparse:     make([]int, 0),
		entities:   make([]Entity, 0),
		components: make([]T, 0),
	}
}

// row returns the dense row stored for a slot index regardless of generation.
func (s *SparseSet[T]) row(index uint32) (int, bool) {
	if int(index) >= len(s.sparse) {
		return 0, false
	}
	r := s.sparse[index]
	if r == sparseTombstone {
		return 0, false
	}
	return r, true
}

// lookup returns the dense row of the entity iff it is stored under this exact generation.
func (s *SparseSet[T]) lookup(e Entity) (int, bool) {
	r, ok := s.row(e.index)
	if !ok || s.entities[r] != e {
		return 0, false
	}
	return r, true
}

// Insert stores the value for the entity. If the slot already holds a value, even one stored for a
// different generation, the old value is released and replaced and the row is re-stamped with the
// entity's generation. Re-inserting the value that is already stored (the same pointer, or an
// equal comparable value) doesn't release it.
func (s *SparseSet[T]) Insert(e Entity, value T) {
	if r, ok := s.row(e.index); ok {
		if !sameComponent(&s.components[r], value) {
			release(&s.components[r])
		}
		s.components[r] = value
		s.entities[r] = e
		return
	}

	if int(e.index) >= len(s.sparse) {
		// Grow by doubling or to index+1, whichever is larger.
		oldLen := len(s.sparse)
		newLen := max(oldLen*2, int(e.index)+1)

		sparse := make([]int, newLen)
		copy(sparse, s.sparse)
		for i := oldLen; i < newLen; i++ {
			sparse[i] = sparseTombstone
		}
		s.sparse = sparse
	}

	s.sparse[e.index] = len(s.entities)
	s.entities = append(s.entities, e)
	s.components = append(s.components, value)
}

// Get returns a copy of the entity's value.
func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	if r, ok := s.lookup(e); ok {
		return s.components[r], true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the entity's stored value. The pointer is invalidated by the next
// insert or remove on this set.
func (s *SparseSet[T]) GetMut(e Entity) (*T, bool) {
	if r, ok := s.lookup(e); ok {
		return &s.components[r], true
	}
	return nil, false
}

// Contains reports whether a value is stored for the entity under its exact generation.
func (s *SparseSet[T]) Contains(e Entity) bool {
	_, ok := s.lookup(e)
	return ok
}

// Remove releases and removes the entity's value. It returns false, without touching the set, if
// nothing is stored for the entity under its exact generation.
func (s *SparseSet[T]) Remove(e Entity) bool {
	r, ok := s.lookup(e)
	if !ok {
		return false
	}

	release(&s.components[r])

	// Swap the row to remove with the last row, then truncate.
	last := len(s.entities) - 1
	if r != last {
		s.entities[r] = s.entities[last]
		s.components[r] = s.components[last]
		s.sparse[s.entities[r].index] = r
	}

	var zero T
	s.components[last] = zero // Don't keep the removed value reachable through the backing array
	s.entities = s.entities[:last]
	s.components = s.components[:last]
	s.sparse[e.index] = sparseTombstone

	assert.That(len(s.entities) == len(s.components), "sparse set dense arrays out of sync")
	return true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	return len(s.entities)
}

// All yields every (entity, value) pair in dense order. Dense order is insertion order until a
// remove swaps rows. Mutating the set while iterating does not panic but may skip or repeat rows.
func (s *SparseSet[T]) All() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for r := 0; r < len(s.entities); r++ {
			if !yield(s.entities[r], s.components[r]) {
				return
			}
		}
	}
}

// Entities yields the stored entities in dense order.
func (s *SparseSet[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for r := 0; r < len(s.entities); r++ {
			if !yield(s.entities[r]) {
				return
			}
		}
	}
}

// AllMut is All with pointers to the stored values.
func (s *SparseSet[T]) AllMut() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		for r := 0; r < len(s.entities); r++ {
			if !yield(s.entities[r], &s.components[r]) {
				return
			}
		}
	}
}

// -------------------------------------------------------------------------------------------------
// Storage
// -------------------------------------------------------------------------------------------------

// ClearEntity removes the entity's value if one is stored.
func (s *SparseSet[T]) ClearEntity(e Entity) {
	s.Remove(e)
}

// ComponentType returns the identity of T.
func (s *SparseSet[T]) ComponentType() ComponentType {
	return TypeOf[T]()
}

// Clear releases and removes every stored value.
func (s *SparseSet[T]) Clear() {
	for r := range s.components {
		release(&s.components[r])
	}
	for _, e := range s.entities {
		s.sparse[e.index] = sparseTombstone
	}
	clear(s.components)
	s.entities = s.entities[:0]
	s.components = s.components[:0]
}
