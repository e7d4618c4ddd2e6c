//go:build !release

package assert_test

import (
	"testing"

	"github.com/argus-labs/gamma/pkg/assert"
	testifyassert "github.com/stretchr/testify/assert"
)

func TestThat(t *testing.T) {
	t.Parallel()

	testifyassert.NotPanics(t, func() { assert.That(true, "unused") })
	testifyassert.PanicsWithValue(t, "assertion failed: want 1, got 2", func() {
		assert.That(false, "want %d, got %d", 1, 2)
	})
}
