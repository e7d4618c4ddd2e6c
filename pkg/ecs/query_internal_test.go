package ecs

import (
	"maps"
	"testing"

	"github.com/argus-labs/gamma/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_UnregisteredType(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	w.Spawn().With(Value(testutils.Position{})).Build()

	n := 0
	for range Query[testutils.Velocity](w) {
		n++
	}
	for range QueryMut[testutils.Velocity](w) {
		n++
	}
	for range Query2[testutils.Position, testutils.Velocity](w) {
		n++
	}
	for range Query2Mut[testutils.Velocity, testutils.Position](w) {
		n++
	}
	for range Query3[testutils.Position, testutils.Velocity, testutils.Health](w) {
		n++
	}
	assert.Zero(t, n)
}

func TestQuery_YieldsEveryComponent(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	want := make(map[Entity]int)
	for i := range 20 {
		e := w.Spawn().With(Value(testutils.Health{Value: i})).Build()
		want[e] = i
	}
	w.Spawn().With(Value(testutils.Position{})).Build()

	got := make(map[Entity]int)
	for e, h := range Query[testutils.Health](w) {
		got[e] = h.Value
	}
	assert.Equal(t, want, got)
}

func TestQuery2_Intersection(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	want := make(map[Entity]Pair[testutils.Position, testutils.Velocity])
	for i := range 30 {
		b := w.Spawn()
		pos := testutils.Position{X: float32(i)}
		vel := testutils.Velocity{DX: float32(-i)}
		hasPos, hasVel := i%2 == 0, i%3 == 0
		if hasPos {
			b.With(Value(pos))
		}
		if hasVel {
			b.With(Value(vel))
		}
		e := b.Build()
		if hasPos && hasVel {
			want[e] = Pair[testutils.Position, testutils.Velocity]{First: pos, Second: vel}
		}
	}

	got := maps.Collect(Query2[testutils.Position, testutils.Velocity](w))
	assert.Equal(t, want, got)

	// Argument order doesn't change the result set.
	swapped := maps.Collect(Query2[testutils.Velocity, testutils.Position](w))
	assert.Len(t, swapped, len(want))
	for e, pair := range swapped {
		assert.Equal(t, want[e].First, pair.Second)
		assert.Equal(t, want[e].Second, pair.First)
	}
}

func TestQuery2_DrivesFromSmallerSet(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	for range 10 {
		w.Spawn().With(Value(testutils.Position{})).Build()
	}
	e := w.Spawn().With(Value(testutils.Position{})).With(Value(testutils.Velocity{DX: 1})).Build()

	sa := storageOf[testutils.Position](w.backend)
	sb := storageOf[testutils.Velocity](w.backend)
	require.NotNil(t, sa)
	require.NotNil(t, sb)
	assert.Same(t, sb, smallest(sa, sb))
	assert.Same(t, sb, smallest(sb, sa))
	assert.Same(t, sa, smallest(sa, sa), "ties keep the first set")

	got := maps.Collect(Query2[testutils.Position, testutils.Velocity](w))
	require.Len(t, got, 1)
	assert.Contains(t, got, e)
}

func TestQuery2Mut(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	moving := w.Spawn().With(Value(testutils.Position{X: 1, Y: 1})).With(Value(testutils.Velocity{DX: 2, DY: 3})).Build()
	still := w.Spawn().With(Value(testutils.Position{X: 1, Y: 1})).Build()

	for _, pv := range Query2Mut[testutils.Position, testutils.Velocity](w) {
		pv.First.X += pv.Second.DX
		pv.First.Y += pv.Second.DY
	}

	p, _ := Get[testutils.Position](w, moving)
	assert.Equal(t, testutils.Position{X: 3, Y: 4}, p)
	p, _ = Get[testutils.Position](w, still)
	assert.Equal(t, testutils.Position{X: 1, Y: 1}, p)
}

func TestQuery2Mut_SameTypeAliases(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	w.Spawn().With(Value(testutils.Health{Value: 1})).Build()

	for _, pair := range Query2Mut[testutils.Health, testutils.Health](w) {
		assert.Same(t, pair.First, pair.Second)
	}
}

func TestQuery3(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	all := w.Spawn().
		With(Value(testutils.Position{X: 1})).
		With(Value(testutils.Velocity{DX: 2})).
		With(Value(testutils.Health{Value: 3})).
		Build()
	w.Spawn().With(Value(testutils.Position{})).With(Value(testutils.Velocity{})).Build()
	w.Spawn().With(Value(testutils.Velocity{})).With(Value(testutils.Health{})).Build()
	w.Spawn().With(Value(testutils.Health{})).Build()

	got := maps.Collect(Query3[testutils.Position, testutils.Velocity, testutils.Health](w))
	assert.Equal(t, map[Entity]Triple[testutils.Position, testutils.Velocity, testutils.Health]{
		all: {
			First:  testutils.Position{X: 1},
			Second: testutils.Velocity{DX: 2},
			Third:  testutils.Health{Value: 3},
		},
	}, got)
}

func TestQuery_EarlyBreak(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	for range 5 {
		w.Spawn().With(Value(testutils.Position{})).With(Value(testutils.Velocity{})).With(Value(testutils.Health{})).Build()
	}

	visited := 0
	for range Query[testutils.Position](w) {
		visited++
		if visited == 2 {
			break
		}
	}
	assert.Equal(t, 2, visited)

	visited = 0
	for range Query2[testutils.Position, testutils.Velocity](w) {
		visited++
		break
	}
	assert.Equal(t, 1, visited)

	visited = 0
	for range Query3[testutils.Position, testutils.Velocity, testutils.Health](w) {
		visited++
		break
	}
	assert.Equal(t, 1, visited)
}

func TestQuery_IsLazy(t *testing.T) {
	t.Parallel()

	w := newTestWorld(t)
	q := Query[testutils.Health](w)
	q2 := Query2[testutils.Health, testutils.Position](w)

	// Storages are resolved when iteration starts, so components added after the query was built
	// are visible.
	e := w.Spawn().With(Value(testutils.Health{Value: 4})).With(Value(testutils.Position{})).Build()

	got := maps.Collect(q)
	assert.Equal(t, map[Entity]testutils.Health{e: {Value: 4}}, got)
	assert.Len(t, maps.Collect(q2), 1)
}
