package ecs

import "iter"

// Queries are lazy: storages are resolved when iteration starts and read row by row. A query is not
// a snapshot; collect it (e.g. with maps.Collect) if you need the results to outlive later
// mutations. Any mutating world operation performed while a query is being iterated invalidates
// the iteration. Results come in no particular order.

// Pair holds the components of a two-component query.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairMut holds pointers to the components of a two-component query.
type PairMut[A, B any] struct {
	First  *A
	Second *B
}

// Triple holds the components of a three-component query.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Query yields every entity with a T together with a copy of its T. A type that was never added
// yields nothing. The result is not a snapshot: each range over it reads the world as it is then.
func Query[T any](w *World) iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		s := storageOf[T](w.backend)
		if s == nil {
			return
		}
		for e, c := range s.All() {
			if !yield(e, c) {
				return
			}
		}
	}
}

// QueryMut yields every entity with a T together with a pointer to its T.
func QueryMut[T any](w *World) iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		s := storageOf[T](w.backend)
		if s == nil {
			return
		}
		for e, c := range s.AllMut() {
			if !yield(e, c) {
				return
			}
		}
	}
}

// Query2 yields every entity that has both an A and a B. It walks the smaller of the two storages
// and probes the other.
func Query2[A, B any](w *World) iter.Seq2[Entity, Pair[A, B]] {
	return func(yield func(Entity, Pair[A, B]) bool) {
		sa, sb := storageOf[A](w.backend), storageOf[B](w.backend)
		if sa == nil || sb == nil {
			return
		}
		for e := range smallest(sa, sb).Entities() {
			a, okA := sa.Get(e)
			b, okB := sb.Get(e)
			if !okA || !okB {
				continue
			}
			if !yield(e, Pair[A, B]{First: a, Second: b}) {
				return
			}
		}
	}
}

// Query2Mut is Query2 with pointers to the stored components. If A and B are the same type both
// pointers alias the same value.
func Query2Mut[A, B any](w *World) iter.Seq2[Entity, PairMut[A, B]] {
	return func(yield func(Entity, PairMut[A, B]) bool) {
		sa, sb := storageOf[A](w.backend), storageOf[B](w.backend)
		if sa == nil || sb == nil {
			return
		}
		for e := range smallest(sa, sb).Entities() {
			a, okA := sa.GetMut(e)
			b, okB := sb.GetMut(e)
			if !okA || !okB {
				continue
			}
			if !yield(e, PairMut[A, B]{First: a, Second: b}) {
				return
			}
		}
	}
}

// Query3 yields every entity that has an A, a B and a C, walking the smallest of the three
// storages.
func Query3[A, B, C any](w *World) iter.Seq2[Entity, Triple[A, B, C]] {
	return func(yield func(Entity, Triple[A, B, C]) bool) {
		sa, sb, sc := storageOf[A](w.backend), storageOf[B](w.backend), storageOf[C](w.backend)
		if sa == nil || sb == nil || sc == nil {
			return
		}
		for e := range smallest(sa, sb, sc).Entities() {
			a, okA := sa.Get(e)
			b, okB := sb.Get(e)
			c, okC := sc.Get(e)
			if !okA || !okB || !okC {
				continue
			}
			if !yield(e, Triple[A, B, C]{First: a, Second: b, Third: c}) {
				return
			}
		}
	}
}

// denseSet is the type-independent part of a sparse set that drives an intersection.
type denseSet interface {
	Len() int
	Entities() iter.Seq[Entity]
}

// smallest returns the set with the fewest entries, preferring earlier sets on ties.
func smallest(sets ...denseSet) denseSet {
	driver := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < driver.Len() {
			driver = s
		}
	}
	return driver
}
