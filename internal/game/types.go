// internal/game/types.go
//
// Core type definitions for the unscramble game engine.
// Defines:
//   - ScoreCalculation: discriminated result of the anti-cheat score pipeline.
//   - GameState: mutable per-round state owned by the caller.
//   - Round: the server-side view of an active round session.

package game

import "time"

// ScoreCalculation is never partially valid: either every numeric field is
// meaningful and IsValid is true, or all are zero and Reason explains the
// rejection. Callers must check IsValid — rejections are expected, frequent
// adversarial input, not errors.
type ScoreCalculation struct {
	Score    int     `json:"score"`
	WPM      float64 `json:"wpm"`
	RawWPM   float64 `json:"rawWpm"`
	Accuracy float64 `json:"accuracy"`
	IsValid  bool    `json:"isValid"`
	Reason   string  `json:"reason,omitempty"`
}

// invalid builds a rejection with zeroed numeric fields.
func invalid(reason string) ScoreCalculation {
	return ScoreCalculation{Reason: reason}
}

// GameState is the per-round state mutated in place by player actions.
// Created zeroed at round start; terminal once EndTime is set, after which
// it is read-only input to scoring.
type GameState struct {
	Words        []string `json:"words"`
	CurrentIndex int      `json:"currentIndex"`

	CorrectChars   int `json:"correctChars"`
	IncorrectChars int `json:"incorrectChars"`

	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	ComboStreak int `json:"comboStreak"`
	MaxCombo    int `json:"maxCombo"`

	// Hint/reveal state. RevealedLetters is display-ordered 0..N and
	// membership-unique; TimePenalty is recomputed from RevealsUsed.
	RevealedLetters []int `json:"revealedLetters"`
	RevealsUsed     int   `json:"revealsUsed"`
	TimePenalty     int   `json:"timePenalty"`
	LastRevealTime  int64 `json:"lastRevealTime"` // epoch ms, 0 = never

	SolvedWords []string `json:"solvedWords"`

	Mode Mode   `json:"mode"`
	Seed string `json:"seed"`

	// Timed mode.
	TimedDuration int `json:"timedDuration,omitempty"` // seconds

	// Survival mode.
	SurvivalStreak  int   `json:"survivalStreak,omitempty"`
	WordTimeLimit   int   `json:"wordTimeLimit,omitempty"` // seconds
	WordStartTime   int64 `json:"wordStartTime,omitempty"` // epoch ms
	DifficultyLevel int   `json:"difficultyLevel,omitempty"`
}

// Round is an active session as the server tracks it between /round/new
// and /round/submit.
type Round struct {
	ID            string
	UserID        string // authed user or anonymous cookie ID
	Mode          Mode
	Lang          string
	Difficulty    string
	Seed          string
	Scrambled     string
	Answers       []string
	Signature     string
	TimedDuration int // seconds, timed mode only
	StartedAt     time.Time
	Finished      bool

	// Server-confirmed reveal state for hint-enabled modes.
	RevealsUsed int
	RevealedIdx []int
}
