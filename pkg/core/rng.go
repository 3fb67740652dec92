package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Int32Range returns a random value in the inclusive range [lo, hi].
func (r *RNG) Int32Range(lo, hi int32) int32 {
	if hi <= lo {
		return lo
	}
	return lo + int32(r.r.Int64N(int64(hi)-int64(lo)+1))
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}
