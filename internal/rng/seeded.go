// internal/rng/seeded.go
//
// Deterministic pseudo-random number generation for round seeds.
// Responsibilities:
//   - Fold an arbitrary seed string into a 32-bit starting state.
//   - Produce a reproducible stream of floats in [0,1) and ints in [min,max].
//
// Notes:
//   - The same seed string always yields the same infinite sequence; this is
//     what makes daily puzzles identical for every player.
//   - NOT cryptographically secure. Never use where unpredictability is a
//     security property (tokens, IDs — use crypto/rand for those).

package rng

// SeededRandom is a linear-congruential generator seeded from a string.
// Zero value is not usable; construct with NewSeededRandom.
type SeededRandom struct {
	state uint32
}

// NewSeededRandom folds seed into a 32-bit state with a polynomial rolling
// hash (hash = hash*31 + char, wrapped to 32 bits, absolute value).
func NewSeededRandom(seed string) *SeededRandom {
	var h int32
	for _, c := range seed {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return &SeededRandom{state: uint32(v)}
}

// Next advances the generator and returns a float in [0, 1).
// Constants are the classic Numerical Recipes LCG parameters.
func (r *SeededRandom) Next() float64 {
	r.state = r.state*1664525 + 1013904223
	return float64(r.state) / (1 << 32)
}

// NextInt returns an integer in [min, max] inclusive.
func (r *SeededRandom) NextInt(min, max int) int {
	return int(r.Next()*float64(max-min+1)) + min
}
