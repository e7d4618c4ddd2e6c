package ecs

// EntityBuilder attaches components to a freshly spawned entity.
//
//	e := world.Spawn().
//		With(ecs.Value(Position{X: 1, Y: 2})).
//		With(ecs.Value(Velocity{DX: 1})).
//		Build()
type EntityBuilder struct {
	world  *World
	entity Entity
}

// ComponentValue is a component bound to its static type, created with Value.
type ComponentValue interface {
	addTo(w *World, e Entity) error
	componentType() ComponentType
}

type componentValue[T any] struct {
	value T
}

// Value wraps a component for EntityBuilder.With. The component is stored under T.
func Value[T any](component T) ComponentValue {
	return componentValue[T]{value: component}
}

func (c componentValue[T]) addTo(w *World, e Entity) error {
	return AddComponent(w, e, c.value)
}

func (c componentValue[T]) componentType() ComponentType {
	return TypeOf[T]()
}

// With adds a component to the entity. The entity is alive from the moment Spawn returns, so the
// add can't fail unless the backend is broken; such failures are logged and otherwise ignored to
// keep the builder chainable.
func (b *EntityBuilder) With(c ComponentValue) *EntityBuilder {
	if c == nil {
		b.world.logger.Error().Object("entity", b.entity).Msg("nil component passed to entity builder")
		return b
	}
	if err := c.addTo(b.world, b.entity); err != nil {
		b.world.logger.Error().Err(err).
			Object("entity", b.entity).
			Stringer("component", c.componentType()).
			Msg("failed to add component to spawned entity")
	}
	return b
}

// Build returns the entity.
func (b *EntityBuilder) Build() Entity {
	return b.entity
}
