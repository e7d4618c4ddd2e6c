// Package ecs implements a sparse-set entity component system.
//
// Entities are generational handles. Components are plain Go values keyed by their type; each
// component type lives in its own sparse set. All state is owned by a World, which delegates to a
// swappable Backend. A World is not safe for concurrent mutation.
package ecs

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Entity is a handle to an entity. It pairs a dense slot index with the generation of the slot at
// the time the entity was created, so a handle kept past its entity's destruction never matches a
// later occupant of the same slot. Entities are plain values and own no world state.
type Entity struct {
	index      uint32
	generation uint32
}

// EntityFromParts builds a handle from a raw index and generation. Normal entity creation goes
// through World.Spawn; this exists for tests and for callers that store packed IDs externally.
func EntityFromParts(index, generation uint32) Entity {
	return Entity{index: index, generation: generation}
}

// EntityFromID is the inverse of Entity.ID.
func EntityFromID(id uint64) Entity {
	return Entity{index: uint32(id), generation: uint32(id >> 32)} //nolint:gosec // truncation is intended
}

// ID packs the handle into a single 64-bit key: generation in the high half, index in the low.
func (e Entity) ID() uint64 {
	return uint64(e.generation)<<32 | uint64(e.index)
}

// Index returns the slot index of the entity.
func (e Entity) Index() uint32 {
	return e.index
}

// Generation returns the generation of the slot the handle was issued for.
func (e Entity) Generation() uint32 {
	return e.generation
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d, gen: %d)", e.index, e.generation)
}

// MarshalZerologObject lets entities be logged with zerolog's Object field.
func (e Entity) MarshalZerologObject(ev *zerolog.Event) {
	ev.Uint32("index", e.index).Uint32("generation", e.generation)
}

var _ zerolog.LogObjectMarshaler = Entity{}
