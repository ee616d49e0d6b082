// internal/game/modes.go
//
// Static mode configuration. Immutable lookup tables initialized once at
// startup; nothing here mutates at runtime.

package game

// Mode identifies one of the supported game modes.
type Mode string

const (
	ModeDaily    Mode = "daily"
	ModeTimed    Mode = "timed"
	ModeSurvival Mode = "infinite_survival"
)

// ModeConfig is the static per-mode tuning consumed by the score and hint
// engines.
type ModeConfig struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	HintsEnabled         bool   `json:"hintsEnabled"`
	RevealDelaySeconds   int    `json:"revealDelaySeconds"`
	RevealPenaltySeconds int    `json:"revealPenaltySeconds"`
}

var modeConfigs = map[Mode]ModeConfig{
	ModeDaily: {
		Name:                 "Daily Puzzle",
		Description:          "One shared puzzle per day, same letters for everyone.",
		HintsEnabled:         true,
		RevealDelaySeconds:   10,
		RevealPenaltySeconds: 6,
	},
	ModeTimed: {
		Name:        "Timed Sprint",
		Description: "Solve as many words as possible against a fixed clock.",
		// No hints in a sprint; the clock is the whole game.
		HintsEnabled: false,
	},
	ModeSurvival: {
		Name:                 "Survival",
		Description:          "Open-ended run with a shrinking per-word time budget.",
		HintsEnabled:         true,
		RevealDelaySeconds:   15,
		RevealPenaltySeconds: 9,
	},
}

// Config returns the static configuration for m.
func Config(m Mode) (ModeConfig, bool) {
	c, ok := modeConfigs[m]
	return c, ok
}

// ValidMode reports whether m is a supported mode.
func ValidMode(m Mode) bool {
	_, ok := modeConfigs[m]
	return ok
}

// TimedDuration is one fixed sprint length.
type TimedDuration struct {
	Seconds int    `json:"seconds"`
	Label   string `json:"label"`
}

var timedDurations = map[int]TimedDuration{
	30:  {Seconds: 30, Label: "30 seconds"},
	60:  {Seconds: 60, Label: "1 minute"},
	120: {Seconds: 120, Label: "2 minutes"},
}

// TimedDurationFor returns the fixed sprint config for seconds.
func TimedDurationFor(seconds int) (TimedDuration, bool) {
	d, ok := timedDurations[seconds]
	return d, ok
}

// Survival tuning constants.
const (
	SurvivalInitialTimePerWord  = 120 // seconds
	SurvivalMinimumTimePerWord  = 15  // seconds, hard floor
	SurvivalDifficultyInterval  = 3   // words per difficulty step
	SurvivalTimeReductionPerLvl = 10  // seconds shaved per step
	SurvivalWrongAnswerPenalty  = 10  // seconds deducted on a miss
)

// SurvivalTimeLimit returns the per-word time budget after wordsCompleted
// words: a non-increasing step function floored at the minimum.
func SurvivalTimeLimit(wordsCompleted int) int {
	limit := SurvivalInitialTimePerWord - (wordsCompleted/SurvivalDifficultyInterval)*SurvivalTimeReductionPerLvl
	if limit < SurvivalMinimumTimePerWord {
		return SurvivalMinimumTimePerWord
	}
	return limit
}
