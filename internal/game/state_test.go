package game

import (
	"testing"
	"time"
)

func TestGameStateLifecycle(t *testing.T) {
	gs := NewGameState(ModeDaily, "daily-2024-01-15", []string{"listen"})
	if gs.Terminal() {
		t.Fatal("fresh state already terminal")
	}

	start := time.Now()
	gs.Start(start)
	gs.Start(start.Add(time.Hour)) // second call must not move the clock
	if !gs.StartTime.Equal(start) {
		t.Fatalf("StartTime moved to %v", gs.StartTime)
	}

	gs.ApplyReveal(0, 1000)
	gs.ApplyReveal(0, 2000) // duplicate index ignored
	gs.ApplyReveal(1, 3000)
	if gs.RevealsUsed != 2 || len(gs.RevealedLetters) != 2 {
		t.Fatalf("reveals: used=%d letters=%v", gs.RevealsUsed, gs.RevealedLetters)
	}
	if gs.TimePenalty != RevealPenalty(2, ModeDaily) {
		t.Fatalf("penalty %d not recomputed from reveal count", gs.TimePenalty)
	}
	if gs.LastRevealTime != 3000 {
		t.Fatalf("LastRevealTime = %d", gs.LastRevealTime)
	}

	gs.RecordSolve("listen", 4000)
	if gs.ComboStreak != 1 || gs.MaxCombo != 1 || gs.CurrentIndex != 1 {
		t.Fatalf("solve bookkeeping: %+v", gs)
	}
	if len(gs.RevealedLetters) != 0 {
		t.Fatal("reveal indices should reset per word")
	}

	gs.Finish(start.Add(time.Minute))
	gs.RecordSolve("again", 5000) // terminal: must be ignored
	if len(gs.SolvedWords) != 1 {
		t.Fatal("terminal state was mutated")
	}
}

func TestGameStateComboBreaks(t *testing.T) {
	gs := NewGameState(ModeTimed, "1-x", nil)
	gs.Start(time.Now())
	for i := 0; i < 3; i++ {
		gs.RecordSolve("word", int64(i))
	}
	gs.RecordMiss()
	if gs.ComboStreak != 0 {
		t.Fatalf("streak %d after miss", gs.ComboStreak)
	}
	if gs.MaxCombo != 3 {
		t.Fatalf("max combo %d, want 3", gs.MaxCombo)
	}
}

func TestGameStateSurvivalClock(t *testing.T) {
	gs := NewGameState(ModeSurvival, "1-x", nil)
	gs.Start(time.Now())
	if gs.WordTimeLimit != SurvivalInitialTimePerWord {
		t.Fatalf("initial limit %d", gs.WordTimeLimit)
	}
	for i := 0; i < SurvivalDifficultyInterval; i++ {
		gs.RecordSolve("word", int64(i))
	}
	if gs.DifficultyLevel != 1 {
		t.Fatalf("difficulty level %d after one interval", gs.DifficultyLevel)
	}
	if gs.WordTimeLimit != SurvivalInitialTimePerWord-SurvivalTimeReductionPerLvl {
		t.Fatalf("limit %d after first step", gs.WordTimeLimit)
	}

	before := gs.WordTimeLimit
	gs.RecordMiss()
	if gs.WordTimeLimit != before-SurvivalWrongAnswerPenalty {
		t.Fatalf("miss penalty not applied: %d → %d", before, gs.WordTimeLimit)
	}
}
