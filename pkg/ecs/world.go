package ecs

import (
	"iter"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// World is the entry point of the ECS. It owns every entity and component through its Backend.
//
// A World is single-writer: mutating operations (Spawn, Destroy, AddComponent, Remove, Close and
// writes through GetMut/QueryMut pointers) must not run concurrently with any other operation.
// Read-only operations may run concurrently with each other.
type World struct {
	backend Backend
	logger  zerolog.Logger
}

// NewWorld creates an empty world. Options are resolved in order: built-in defaults, environment
// variables (ECS_LOG_LEVEL, ECS_LOG_FORMAT, ECS_ENTITY_CAPACITY), then the non-zero fields of opts.
func NewWorld(opts WorldOptions) (*World, error) {
	cfg, err := loadWorldConfig()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load world config")
	}

	options := newDefaultWorldOptions()
	cfg.applyToOptions(&options)
	options.apply(opts)
	if err := options.validate(); err != nil {
		return nil, eris.Wrap(err, "invalid world options")
	}

	logger := newLogger(options)

	backend := options.Backend
	if backend == nil {
		backend = NewSparseSetBackend(logger, options.EntityCapacity)
	}

	return &World{
		backend: backend,
		logger:  logger,
	}, nil
}

// Spawn creates an entity and returns a builder to attach its components.
func (w *World) Spawn() *EntityBuilder {
	return &EntityBuilder{
		world:  w,
		entity: w.backend.CreateEntity(),
	}
}

// Destroy removes the entity and all of its components. Returns ErrEntityNotFound if the entity
// isn't alive, including when it was already destroyed.
func (w *World) Destroy(e Entity) error {
	return w.backend.DestroyEntity(e)
}

// IsAlive reports whether the entity exists.
func (w *World) IsAlive(e Entity) bool {
	return w.backend.IsAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.backend.Len()
}

// Entities yields every live entity.
func (w *World) Entities() iter.Seq[Entity] {
	return w.backend.Entities()
}

// Close releases every component and destroys every entity. Handles issued before Close are
// stale afterwards. The world stays usable.
func (w *World) Close() {
	n := w.backend.Len()
	w.backend.Clear()
	w.logger.Debug().Int("entities", n).Msg("world closed")
}

// -------------------------------------------------------------------------------------------------
// Component operations
// -------------------------------------------------------------------------------------------------

// AddComponent attaches the component to the entity, replacing (and releasing) any previous value
// of the same type. Returns ErrEntityNotFound if the entity isn't alive.
func AddComponent[T any](w *World, e Entity, component T) error {
	return addComponent(w.backend, e, component)
}

// Get returns a copy of the entity's component. Returns false if the entity isn't alive or doesn't
// have the component.
func Get[T any](w *World, e Entity) (T, bool) {
	c, ok := getComponent[T](w.backend, e)
	if !ok {
		var zero T
		return zero, false
	}
	return *c, true
}

// GetMut returns a pointer to the entity's component. The pointer is valid until the next
// mutating operation on the world.
func GetMut[T any](w *World, e Entity) (*T, bool) {
	return getComponent[T](w.backend, e)
}

// Has reports whether the entity is alive and has the component.
func Has[T any](w *World, e Entity) bool {
	_, ok := getComponent[T](w.backend, e)
	return ok
}

// Remove detaches and releases the entity's component. Removing a component the entity doesn't
// have is a no-op. Returns ErrEntityNotFound if the entity isn't alive.
func Remove[T any](w *World, e Entity) error {
	return removeComponent[T](w.backend, e)
}

// Count returns the number of entities with the component.
func Count[T any](w *World) int {
	s := storageOf[T](w.backend)
	if s == nil {
		return 0
	}
	return s.Len()
}
