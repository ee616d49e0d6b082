// internal/game/score.go
//
// Score calculation and anti-cheat validation.
// This is the anti-cheat boundary: the server re-derives every score from
// the raw counters the client submits and never trusts a client-computed
// score. The pipeline short-circuits on the first failing check.

package game

import "math"

const (
	// maxRawWPM is the anti-cheat ceiling; nobody types 300+ words a minute.
	maxRawWPM = 300.0

	// durationGraceSeconds absorbs network latency on timed submissions.
	durationGraceSeconds = 5.0

	comboStepBonus = 0.10 // +10% per streak step
	comboMaxBonus  = 2.00 // capped at +200% (streak >= 20)
)

// CalculateScore converts raw keystroke counters and elapsed time into a
// validated ScoreCalculation. timedDuration is the fixed sprint length in
// seconds, or 0 for modes without one. Pure; safe for concurrent use.
func CalculateScore(correctChars, incorrectChars int, timeElapsedSeconds float64, mode Mode, comboStreak, timedDuration int) ScoreCalculation {
	if timeElapsedSeconds < 1 {
		return invalid("Time elapsed too short")
	}
	if timedDuration > 0 && timeElapsedSeconds > float64(timedDuration)+durationGraceSeconds {
		return invalid("Time elapsed exceeds mode duration")
	}
	if correctChars < 0 || incorrectChars < 0 {
		return invalid("Invalid character counts")
	}

	totalChars := correctChars + incorrectChars
	if totalChars == 0 {
		// Degenerate but legal: no characters typed.
		return ScoreCalculation{IsValid: true}
	}

	minutes := timeElapsedSeconds / 60
	rawWPM := float64(totalChars) / 5 / minutes
	wpm := float64(correctChars) / 5 / minutes
	accuracy := float64(correctChars) / float64(totalChars) * 100

	if rawWPM > maxRawWPM {
		return invalid("WPM exceeds maximum (300)")
	}
	if accuracy < 0 || accuracy > 100 {
		// Unreachable given the checks above; kept as a tripwire.
		return invalid("Invalid accuracy")
	}

	bonus := float64(comboStreak) * comboStepBonus
	if bonus > comboMaxBonus {
		bonus = comboMaxBonus
	}
	score := math.Round(wpm * accuracy * (1 + bonus))

	return ScoreCalculation{
		Score:    int(score),
		WPM:      round1(wpm),
		RawWPM:   round1(rawWPM),
		Accuracy: round1(accuracy),
		IsValid:  true,
	}
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
