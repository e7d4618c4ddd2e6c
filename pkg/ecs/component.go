package ecs

import "reflect"

// ComponentType is the runtime identity of a component type. Any Go type can be a component; two
// components share storage if and only if they have the same ComponentType.
type ComponentType struct {
	typ reflect.Type
}

// TypeOf returns the ComponentType of T.
func TypeOf[T any]() ComponentType {
	return ComponentType{typ: reflect.TypeFor[T]()}
}

func (ct ComponentType) String() string {
	if ct.typ == nil {
		return "<nil>"
	}
	return ct.typ.String()
}

// Releaser is implemented by components that hold resources outside the world, such as GPU buffers
// or shader modules. The world calls Release exactly once for every stored value when the value
// leaves the world: when it is overwritten, removed, cleared with its entity, or cleared when the
// world is closed. Either a value or a pointer receiver works.
type Releaser interface {
	Release()
}

// sameComponent reports whether value is the component already stored in old, so replacing one
// with the other must not release anything. Reference kinds compare by identity and comparable
// values by equality; anything else counts as a different value.
func sameComponent[T any](old *T, value T) bool {
	a, b := reflect.ValueOf(old).Elem(), reflect.ValueOf(&value).Elem()
	if a.Kind() == reflect.Interface {
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		a, b = a.Elem(), b.Elem()
		if a.Type() != b.Type() {
			return false
		}
	}
	switch a.Kind() { //nolint:exhaustive // remaining kinds fall through to equality
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice, reflect.Func:
		return false
	}
	return a.Comparable() && b.Comparable() && a.Equal(b)
}

// release runs the release hook on a stored component, if it has one. The value is checked first
// so pointer-typed components (T = *X) are found through X's method set.
func release[T any](c *T) {
	if r, ok := any(*c).(Releaser); ok {
		r.Release()
		return
	}
	if r, ok := any(c).(Releaser); ok {
		r.Release()
	}
}
