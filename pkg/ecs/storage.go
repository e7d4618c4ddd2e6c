package ecs

import "github.com/argus-labs/gamma/pkg/assert"

// Storage is the type-erased view of a component storage. It exposes only what can be done
// without knowing the component type, which is what entity destruction and world shutdown need.
// Typed access goes through a downcast to *SparseSet[T].
type Storage interface {
	// ClearEntity removes the entity's component, if any.
	ClearEntity(e Entity)
	// ComponentType returns the type of the components held by the storage.
	ComponentType() ComponentType
	// Clear removes every component.
	Clear()
}

// registry maps component types to their storage. A storage is created on first use of its type
// and is never removed. Storages are kept in creation order so whole-registry sweeps are
// deterministic.
type registry struct {
	catalog map[ComponentType]int // Component type -> index in stores
	stores  []Storage             // Storages in creation order
}

// newRegistry creates an empty registry.
func newRegistry() registry {
	return registry{
		catalog: make(map[ComponentType]int),
		stores:  make([]Storage, 0),
	}
}

// get returns the storage registered for ct, or nil.
func (r *registry) get(ct ComponentType) Storage {
	i, ok := r.catalog[ct]
	if !ok {
		return nil
	}
	return r.stores[i]
}

// getOrInit returns the storage registered for ct, creating it with init if it doesn't exist. The
// second return value reports whether the storage was created by this call.
func (r *registry) getOrInit(ct ComponentType, init func() Storage) (Storage, bool) {
	if s := r.get(ct); s != nil {
		return s, false
	}

	s := init()
	assert.That(s != nil, "storage init for %s returned nil", ct)
	assert.That(s.ComponentType() == ct, "storage init for %s built a %s storage", ct, s.ComponentType())

	r.catalog[ct] = len(r.stores)
	r.stores = append(r.stores, s)
	assert.That(len(r.catalog) == len(r.stores), "registry catalog doesn't match number of storages")
	return s, true
}

// clearEntity removes the entity's components from every storage.
func (r *registry) clearEntity(e Entity) {
	for _, s := range r.stores {
		s.ClearEntity(e)
	}
}

// clear removes every component from every storage.
func (r *registry) clear() {
	for _, s := range r.stores {
		s.Clear()
	}
}

// len returns the number of registered component types.
func (r *registry) len() int {
	return len(r.stores)
}

// downcast recovers the concrete storage of T. Storages are keyed by TypeOf[T] and built by
// NewSparseSet[T], so a mismatch means the registry is corrupt.
func downcast[T any](s Storage) *SparseSet[T] {
	set, ok := s.(*SparseSet[T])
	assert.That(ok, "storage for %s has unexpected type %T", TypeOf[T](), s)
	return set
}
