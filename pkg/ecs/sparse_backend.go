package ecs

import (
	"iter"
	"math"
	"math/bits"

	"github.com/argus-labs/gamma/pkg/assert"
	"github.com/kelindar/bitmap"
	"github.com/rs/zerolog"
)

// maxSlots is the number of entity slots a backend can allocate. Slot indices are uint32.
const maxSlots = math.MaxUint32

// SparseSetBackend is a Backend that keeps one sparse set per component type. Adding and removing
// components is O(1) and never moves other components of the same entity.
//
// Slots are recycled through a LIFO free list. A slot's generation is bumped when the slot is
// reused, not when it is freed. A slot whose generation has reached math.MaxUint32 is retired on
// destruction instead of freed, so generations never wrap and stale handles can't alias.
type SparseSetBackend struct {
	generations []uint32      // Slot index -> current generation
	alive       bitmap.Bitmap // Set bit = slot holds a live entity
	free        []uint32      // Free slot indices, reused from the back
	retired     int           // Number of slots retired after exhausting their generations
	storages    registry      // Component storages
	logger      zerolog.Logger
}

var _ Backend = (*SparseSetBackend)(nil)

// NewSparseSetBackend creates an empty backend with room for capacity entities before the
// metadata needs to grow.
func NewSparseSetBackend(logger zerolog.Logger, capacity int) *SparseSetBackend {
	return &SparseSetBackend{
		generations: make([]uint32, 0, max(capacity, 0)),
		alive:       bitmap.Bitmap{},
		free:        make([]uint32, 0),
		retired:     0,
		storages:    newRegistry(),
		logger:      logger,
	}
}

// CreateEntity allocates a live entity. Free slots are reused first with their generation
// incremented; fresh slots start at generation 0.
func (b *SparseSetBackend) CreateEntity() Entity {
	var e Entity
	if n := len(b.free); n > 0 {
		index := b.free[n-1]
		b.free = b.free[:n-1]

		// Retired slots never reach the free list, so this can't wrap.
		b.generations[index]++
		e = Entity{index: index, generation: b.generations[index]}
	} else {
		assert.That(uint64(len(b.generations)) < maxSlots, "entity slots exhausted")
		index := uint32(len(b.generations)) //nolint:gosec // bounded by maxSlots
		b.generations = append(b.generations, 0)
		e = Entity{index: index, generation: 0}
	}

	b.alive.Set(e.index)
	b.logger.Debug().Object("entity", e).Msg("entity created")
	return e
}

// DestroyEntity clears the entity from every storage, marks its slot dead and frees it.
func (b *SparseSetBackend) DestroyEntity(e Entity) error {
	if !b.IsAlive(e) {
		return entityNotFound(e)
	}

	b.storages.clearEntity(e)
	b.alive.Remove(e.index)

	if e.generation == math.MaxUint32 {
		b.retired++
		b.logger.Warn().Object("entity", e).Msg("entity slot exhausted its generations and is retired")
		return nil
	}

	b.free = append(b.free, e.index)
	b.logger.Debug().Object("entity", e).Msg("entity destroyed")
	return nil
}

// IsAlive is the single aliveness check: the slot exists, is live, and has the handle's generation.
func (b *SparseSetBackend) IsAlive(e Entity) bool {
	if int(e.index) >= len(b.generations) {
		return false
	}
	return b.alive.Contains(e.index) && b.generations[e.index] == e.generation
}

// Len returns the number of live entities.
func (b *SparseSetBackend) Len() int {
	return b.alive.Count()
}

// Entities yields live entities in ascending slot order. The bitmap is walked one 64-bit block at
// a time, so breaking out of the loop returns immediately.
func (b *SparseSetBackend) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for blk := 0; blk < len(b.alive); blk++ {
			for word := b.alive[blk]; word != 0; word &= word - 1 {
				index := uint32(blk<<6 + bits.TrailingZeros64(word)) //nolint:gosec // bounded by maxSlots
				if !yield(Entity{index: index, generation: b.generations[index]}) {
					return
				}
			}
		}
	}
}

// Storage returns the storage registered for ct, or nil.
func (b *SparseSetBackend) Storage(ct ComponentType) Storage {
	return b.storages.get(ct)
}

// InitStorage returns the storage registered for ct, creating it with init on first use.
func (b *SparseSetBackend) InitStorage(ct ComponentType, init func() Storage) Storage {
	s, created := b.storages.getOrInit(ct, init)
	if created {
		b.logger.Debug().Stringer("component", ct).Int("storages", b.storages.len()).Msg("component storage created")
	}
	return s
}

// Clear releases every component and frees every live slot.
func (b *SparseSetBackend) Clear() {
	b.storages.clear()
	b.alive.Range(func(index uint32) {
		if b.generations[index] == math.MaxUint32 {
			b.retired++
			return
		}
		b.free = append(b.free, index)
	})
	b.alive.Clear()
}

// Retired returns the number of slots retired after exhausting their generations.
func (b *SparseSetBackend) Retired() int {
	return b.retired
}
