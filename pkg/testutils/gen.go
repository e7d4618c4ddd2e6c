package testutils

import "github.com/argus-labs/gamma/pkg/assert"

// Gen enumerates every combination of the bounded choices a test body draws from it. Drive it with
//
//	for g := NewGen(); !g.Done(); {
//		n := g.Intn(3)
//		...
//	}
//
// Each pass through the body sees the next combination in lexicographic order, where later draws
// vary fastest. The body must be deterministic given the values it draws.
//
// See: <https://matklad.github.io/2021/11/07/generate-all-the-things.html>
type Gen struct {
	started bool
	choices []choice
	pos     int
}

type choice struct {
	value int
	bound int
}

// NewGen creates a new exhaustive generator.
func NewGen() *Gen {
	return &Gen{}
}

// Done advances to the next combination and reports whether all of them have been visited.
func (g *Gen) Done() bool {
	if !g.started {
		g.started = true
		return false
	}
	for i := len(g.choices) - 1; i >= 0; i-- {
		if g.choices[i].value < g.choices[i].bound {
			g.choices[i].value++
			g.choices = g.choices[:i+1]
			g.pos = 0
			return false
		}
	}
	return true
}

// Intn returns an int in range [0, bound] (inclusive).
func (g *Gen) Intn(bound int) int {
	assert.That(bound >= 0, "exhaustigen: negative bound %d", bound)
	if g.pos == len(g.choices) {
		g.choices = append(g.choices, choice{})
	}
	c := &g.choices[g.pos]
	c.bound = bound
	g.pos++
	return c.value
}

// Bool returns an exhaustive boolean value.
func (g *Gen) Bool() bool {
	return g.Intn(1) == 1
}

// Pick returns an element from a non-empty slice.
func Pick[T any](g *Gen, slice []T) T {
	assert.That(len(slice) > 0, "exhaustigen: empty slice")
	return slice[g.Intn(len(slice)-1)]
}
