// internal/game/hints.go
//
// Staggered, escalating hint/reveal economy.
// Reveals are gated by wall-clock time: the k-th reveal (1-indexed) requires
// a gap of baseDelay+(k-1)*2 seconds from the previous eligibility point, so
// eligibility times grow triangularly from the round start. Each reveal also
// accrues a strictly convex time penalty folded into effective time for
// scoring and leaderboard ranking.
//
// Timestamps are epoch milliseconds; all functions are pure.

package game

import (
	"math"
	"strings"
)

// NextRevealTime returns the epoch-ms instant at which reveal number
// revealsUsed+1 becomes eligible, for a round started at startMs.
func NextRevealTime(revealsUsed int, startMs int64, mode Mode) int64 {
	cfg, ok := Config(mode)
	if !ok || !cfg.HintsEnabled {
		return math.MaxInt64
	}
	waitSec := 0
	for k := 1; k <= revealsUsed+1; k++ {
		waitSec += cfg.RevealDelaySeconds + (k-1)*2
	}
	return startMs + int64(waitSec)*1000
}

// CanRevealNext reports whether the next reveal is eligible at nowMs.
func CanRevealNext(revealsUsed int, nowMs, startMs int64, mode Mode) bool {
	return nowMs >= NextRevealTime(revealsUsed, startMs, mode)
}

// SecondsUntilNextReveal returns the whole seconds remaining until the next
// reveal is eligible, never negative.
func SecondsUntilNextReveal(revealsUsed int, nowMs, startMs int64, mode Mode) int {
	remaining := NextRevealTime(revealsUsed, startMs, mode) - nowMs
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(float64(remaining) / 1000))
}

// RevealPenalty returns the cumulative time penalty in seconds after
// revealsUsed reveals: sum of basePenalty+i*3 for i in [0, revealsUsed).
// Each additional hint costs strictly more than the last.
func RevealPenalty(revealsUsed int, mode Mode) int {
	cfg, ok := Config(mode)
	if !ok || !cfg.HintsEnabled {
		return 0
	}
	total := 0
	for i := 0; i < revealsUsed; i++ {
		total += cfg.RevealPenaltySeconds + i*3
	}
	return total
}

// EffectiveTime is the penalized time used for scoring and leaderboard
// ranking in hint-enabled modes.
func EffectiveTime(actualSeconds float64, revealsUsed int, mode Mode) float64 {
	return actualSeconds + float64(RevealPenalty(revealsUsed, mode))
}

// RevealNextLetter returns the lowest answer index not already revealed, or
// -1 when every position is revealed (terminal — stop offering hints).
func RevealNextLetter(answer string, revealedIndices []int) int {
	revealed := make(map[int]struct{}, len(revealedIndices))
	for _, i := range revealedIndices {
		revealed[i] = struct{}{}
	}
	for i := range []rune(answer) {
		if _, ok := revealed[i]; !ok {
			return i
		}
	}
	return -1
}

// BuildDisplay renders the answer-length display string: revealed positions
// show the true letter, the rest are filled left-to-right from userInput and
// padded with '_'.
func BuildDisplay(answer string, revealedIndices []int, userInput string) string {
	revealed := make(map[int]struct{}, len(revealedIndices))
	for _, i := range revealedIndices {
		revealed[i] = struct{}{}
	}
	ans := []rune(answer)
	in := []rune(userInput)
	var b strings.Builder
	next := 0
	for i, r := range ans {
		if _, ok := revealed[i]; ok {
			b.WriteRune(r)
			continue
		}
		if next < len(in) {
			b.WriteRune(in[next])
			next++
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ValidateInput reports whether userInput, mapped onto the non-revealed
// positions in order, matches them case-insensitively with exactly the
// right length.
func ValidateInput(answer string, revealedIndices []int, userInput string) bool {
	revealed := make(map[int]struct{}, len(revealedIndices))
	for _, i := range revealedIndices {
		revealed[i] = struct{}{}
	}
	ans := []rune(strings.ToLower(answer))
	in := []rune(strings.ToLower(userInput))
	next := 0
	for i, r := range ans {
		if _, ok := revealed[i]; ok {
			continue
		}
		if next >= len(in) || in[next] != r {
			return false
		}
		next++
	}
	return next == len(in)
}

// IsWordSolved reports whether userInput completes the word given the
// revealed positions.
func IsWordSolved(answer string, revealedIndices []int, userInput string) bool {
	if len([]rune(userInput)) != len([]rune(answer))-len(revealedIndices) {
		return false
	}
	return ValidateInput(answer, revealedIndices, userInput)
}
