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

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.r.Float64() < p
}

// FillDensity sets each cell to 1 with probability p and 0 otherwise.
func FillDensity(r *RNG, buf []uint8, p float64) {
	for i := range buf {
		buf[i] = 0
		if r.Chance(p) {
			buf[i] = 1
		}
	}
}
