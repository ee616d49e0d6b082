// internal/game/state.go
//
// GameState mutators. The caller owns the state and applies each player
// action through these; once Finish sets EndTime the state is terminal and
// only read for scoring.

package game

import "time"

// NewGameState returns a zeroed state for a round of mode, with the
// survival clock primed when applicable.
func NewGameState(mode Mode, seed string, wordList []string) *GameState {
	gs := &GameState{
		Words:           wordList,
		Mode:            mode,
		Seed:            seed,
		RevealedLetters: []int{},
		SolvedWords:     []string{},
	}
	if mode == ModeSurvival {
		gs.WordTimeLimit = SurvivalTimeLimit(0)
	}
	return gs
}

// Start stamps the round start; the first call wins.
func (g *GameState) Start(t time.Time) {
	if g.StartTime == nil {
		start := t
		g.StartTime = &start
	}
}

// Finish stamps the round end and makes the state terminal. No-op once set.
func (g *GameState) Finish(t time.Time) {
	if g.EndTime == nil {
		end := t
		g.EndTime = &end
	}
}

// Terminal reports whether the round has ended.
func (g *GameState) Terminal() bool { return g.EndTime != nil }

// ApplyReveal records one server-confirmed letter reveal at index idx,
// recomputing the cumulative time penalty from the new reveal count.
func (g *GameState) ApplyReveal(idx int, nowMs int64) {
	if g.Terminal() || idx < 0 {
		return
	}
	for _, have := range g.RevealedLetters {
		if have == idx {
			return
		}
	}
	g.RevealedLetters = append(g.RevealedLetters, idx)
	g.RevealsUsed++
	g.TimePenalty = RevealPenalty(g.RevealsUsed, g.Mode)
	g.LastRevealTime = nowMs
}

// RecordSolve advances to the next word, extending the combo streak and, in
// survival, tightening the per-word clock. Reveal state resets per word.
func (g *GameState) RecordSolve(word string, nowMs int64) {
	if g.Terminal() {
		return
	}
	g.SolvedWords = append(g.SolvedWords, word)
	g.CurrentIndex++
	g.ComboStreak++
	if g.ComboStreak > g.MaxCombo {
		g.MaxCombo = g.ComboStreak
	}
	g.RevealedLetters = []int{}
	if g.Mode == ModeSurvival {
		g.SurvivalStreak++
		completed := len(g.SolvedWords)
		g.DifficultyLevel = completed / SurvivalDifficultyInterval
		g.WordTimeLimit = SurvivalTimeLimit(completed)
		g.WordStartTime = nowMs
	}
}

// RecordMiss breaks the combo streak; in survival it also docks the
// per-word clock by the wrong-answer penalty (never below zero).
func (g *GameState) RecordMiss() {
	if g.Terminal() {
		return
	}
	g.ComboStreak = 0
	if g.Mode == ModeSurvival {
		g.WordTimeLimit -= SurvivalWrongAnswerPenalty
		if g.WordTimeLimit < 0 {
			g.WordTimeLimit = 0
		}
	}
}
