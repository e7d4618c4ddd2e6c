package ecs

import "iter"

// Backend owns entity bookkeeping and component storage for a World. It exposes the
// type-independent half of the ECS contract; the typed half (add, get, remove, query) is
// implemented once on top of Storage/InitStorage so every backend gets the same aliveness gating.
//
// Entity metadata and storages must stay consistent: after DestroyEntity returns nil, no storage
// may hold a component for that entity.
type Backend interface {
	// CreateEntity allocates a live entity, reusing a free slot when one is available.
	CreateEntity() Entity
	// DestroyEntity clears every component of the entity and frees its slot. Returns
	// ErrEntityNotFound if the entity isn't alive.
	DestroyEntity(e Entity) error
	// IsAlive reports whether the handle refers to a live entity with a matching generation.
	IsAlive(e Entity) bool
	// Len returns the number of live entities.
	Len() int
	// Entities yields every live entity.
	Entities() iter.Seq[Entity]
	// Storage returns the storage registered for ct, or nil if the type was never used.
	Storage(ct ComponentType) Storage
	// InitStorage returns the storage registered for ct, registering the result of init if the
	// type has no storage yet. The storage built by init must be stored and returned unchanged.
	InitStorage(ct ComponentType, init func() Storage) Storage
	// Clear releases every component and destroys every entity. Generations are kept so handles
	// issued before Clear stay stale.
	Clear()
}

// storageOf returns the sparse set of T, or nil if T has no storage yet.
func storageOf[T any](b Backend) *SparseSet[T] {
	s := b.Storage(TypeOf[T]())
	if s == nil {
		return nil
	}
	return downcast[T](s)
}

// initStorageOf returns the sparse set of T, creating it on first use.
func initStorageOf[T any](b Backend) *SparseSet[T] {
	s := b.InitStorage(TypeOf[T](), func() Storage { return NewSparseSet[T]() })
	return downcast[T](s)
}

// addComponent inserts or replaces the entity's T.
func addComponent[T any](b Backend, e Entity, component T) error {
	if !b.IsAlive(e) {
		return entityNotFound(e)
	}
	initStorageOf[T](b).Insert(e, component)
	return nil
}

// getComponent returns a pointer to the entity's T. Dead entities and unused types report false.
func getComponent[T any](b Backend, e Entity) (*T, bool) {
	if !b.IsAlive(e) {
		return nil, false
	}
	s := storageOf[T](b)
	if s == nil {
		return nil, false
	}
	return s.GetMut(e)
}

// removeComponent removes the entity's T. Removing a component the entity doesn't have is a no-op.
func removeComponent[T any](b Backend, e Entity) error {
	if !b.IsAlive(e) {
		return entityNotFound(e)
	}
	if s := storageOf[T](b); s != nil {
		s.Remove(e)
	}
	return nil
}
