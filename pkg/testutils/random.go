package testutils

import (
	"math/rand/v2"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/argus-labs/gamma/pkg/assert"
)

// Seed drives every PRNG returned by NewRand. It defaults to the current time and can be pinned
// with TEST_SEED (decimal or 0x-prefixed hex) to replay a failing run.
var Seed = seedFromEnv(os.Getenv("TEST_SEED")) //nolint:gochecknoglobals // shared by all tests in a run

func seedFromEnv(v string) uint64 {
	if v != "" {
		if seed, err := strconv.ParseUint(v, 0, 64); err == nil {
			return seed
		}
	}
	return uint64(time.Now().UnixNano()) //nolint:gosec // any bit pattern is a valid seed
}

// NewRand returns a PRNG seeded from Seed and logs the seed so a failing run can be replayed with
// TEST_SEED.
func NewRand(t *testing.T) *rand.Rand {
	t.Helper()
	t.Logf("to reproduce: TEST_SEED=0x%x", Seed)
	return rand.New(rand.NewPCG(Seed, Seed^0x9e3779b97f4a7c15)) //nolint:gosec // tests only
}

// RandChance reports true with probability p.
func RandChance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// RandPick returns a random element of a non-empty slice.
func RandPick[T any](r *rand.Rand, s []T) T {
	assert.That(len(s) > 0, "testutils: pick from empty slice")
	return s[r.IntN(len(s))]
}

// RandMapKey returns a random key of a non-empty map. Go map order isn't uniform, so the key is
// found by skipping a random number of entries.
func RandMapKey[K comparable, V any](r *rand.Rand, m map[K]V) K {
	assert.That(len(m) > 0, "testutils: pick from empty map")
	skip := r.IntN(len(m))
	var key K
	for k := range m {
		key = k
		if skip == 0 {
			break
		}
		skip--
	}
	return key
}

// WeightedOp is an operation enum whose values are also its selection weights. Values in one op
// set must be distinct and positive.
type WeightedOp interface {
	~uint8 | ~uint16 | ~uint32 | ~int
}

// RandWeightedOp picks one of ops with probability proportional to its value.
func RandWeightedOp[T WeightedOp](r *rand.Rand, ops []T) T {
	total := 0
	for _, op := range ops {
		assert.That(op > 0, "testutils: op weight must be positive")
		total += int(op)
	}
	assert.That(total > 0, "testutils: no ops to pick from")

	n := r.IntN(total)
	for _, op := range ops[:len(ops)-1] {
		if n -= int(op); n < 0 {
			return op
		}
	}
	return ops[len(ops)-1]
}
