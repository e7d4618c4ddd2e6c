package testutils

import "sync/atomic"

// -------------------------------------------------------------------------------------------------
// Components
// -------------------------------------------------------------------------------------------------

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Value int
}

type Name string

// Tracked counts its live copies through a shared counter. The counter is incremented when the
// component is created with NewTracked and decremented when the world releases it, so a balanced
// world leaves the counter at zero.
type Tracked struct {
	ID      int
	counter *atomic.Int64
}

func NewTracked(counter *atomic.Int64, id int) Tracked {
	counter.Add(1)
	return Tracked{ID: id, counter: counter}
}

func (t Tracked) Release() {
	t.counter.Add(-1)
}
