// internal/words/scramble.go
//
// Scramble produces the letter permutation players are asked to unscramble.

package words

import "github.com/scrambled/go-server/internal/rng"

// Scramble Fisher–Yates-shuffles word's letters with r, retrying until the
// result differs from the input or 100 attempts are exhausted (guards
// single-letter and all-same-letter words, where no permutation differs).
//
// It must consume the caller's generator, not a fresh one, so the caller's
// overall sequence stays deterministic.
func Scramble(word string, r *rng.SeededRandom) string {
	rs := []rune(word)
	if len(rs) < 2 {
		return word
	}
	for attempt := 0; attempt < 100; attempt++ {
		for i := len(rs) - 1; i > 0; i-- {
			j := r.NextInt(0, i)
			rs[i], rs[j] = rs[j], rs[i]
		}
		if s := string(rs); s != word {
			return s
		}
	}
	return string(rs)
}
