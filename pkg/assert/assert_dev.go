//go:build !release

// Package assert holds invariant checks that are compiled out of release builds.
package assert

import "fmt"

// That panics with the formatted message when cond is false. Use it for conditions that can only
// fail because of a bug in this module, never for validating caller input.
func That(cond bool, format string, args ...any) { //nolint:goprintffuncname // it's ok
	if !cond {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}
