// Package sampling provides the single CDF-inversion primitive shared by
// oos, mccr, and play (§9 "Exceptions for control flow": sampling expressed
// as a primitive that cannot fail by construction over a normalized
// distribution, rather than raising on an unreached "no action selected"
// case as the source does).
package sampling

import "math/rand"

// NewRNG constructs a deterministic generator seeded from seed, the
// construction every package in this module uses for its own RNG (§5 "each
// algorithm instance owns its own deterministic generator seeded from
// configuration").
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Distribution draws an index from a normalized probability vector p by CDF
// inversion, returning the index and its probability. Floating-point
// rounding can leave Σp fractionally under 1; the last index is the
// fallback so the draw never fails.
func Distribution(rng *rand.Rand, p []float64) (int, float64) {
	r := rng.Float64()
	var cum float64
	for i, v := range p {
		cum += v
		if r < cum {
			return i, v
		}
	}
	last := len(p) - 1
	return last, p[last]
}
