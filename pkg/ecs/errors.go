package ecs

import "github.com/rotisserie/eris"

var (
	// ErrEntityNotFound is returned by mutating operations whose target entity is not alive, either
	// because it was destroyed, the handle is stale, or it never existed.
	ErrEntityNotFound = eris.New("entity does not exist")

	// ErrComponentNotFound is reserved for operations that require a component to be present. None
	// of the current operations return it; reads report absence with a boolean instead.
	ErrComponentNotFound = eris.New("component does not exist")
)

func entityNotFound(e Entity) error {
	return eris.Wrapf(ErrEntityNotFound, "%s", e)
}
