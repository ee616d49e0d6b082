package game

import "testing"

const t0 = int64(1_700_000_000_000) // arbitrary round start, epoch ms

func TestNextRevealTimeTriangularGrowth(t *testing.T) {
	// First reveal: base delay (10s for daily).
	if got := NextRevealTime(0, t0, ModeDaily); got != t0+10_000 {
		t.Fatalf("NextRevealTime(0) = %d, want %d", got, t0+10_000)
	}
	// Successive gaps grow by exactly 2000ms.
	prevGap := int64(0)
	prev := t0
	for used := 0; used < 5; used++ {
		next := NextRevealTime(used, t0, ModeDaily)
		gap := next - prev
		if used > 0 && gap != prevGap+2_000 {
			t.Fatalf("gap before reveal %d = %dms, want %dms", used+1, gap, prevGap+2_000)
		}
		prev, prevGap = next, gap
	}
}

func TestCanRevealNext(t *testing.T) {
	eligible := NextRevealTime(0, t0, ModeDaily)
	if CanRevealNext(0, eligible-1, t0, ModeDaily) {
		t.Fatal("eligible 1ms early")
	}
	if !CanRevealNext(0, eligible, t0, ModeDaily) {
		t.Fatal("not eligible at the eligibility instant")
	}
}

func TestSecondsUntilNextReveal(t *testing.T) {
	cases := []struct {
		name  string
		nowMs int64
		want  int
	}{
		{"at start", t0, 10},
		{"mid wait rounds up", t0 + 500, 10},
		{"one second left", t0 + 9_000, 1},
		{"already eligible", t0 + 10_000, 0},
		{"long past", t0 + 60_000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SecondsUntilNextReveal(0, tc.nowMs, t0, ModeDaily); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRevealPenaltyIsConvex(t *testing.T) {
	wants := map[int]int{0: 0, 1: 6, 2: 15, 3: 27}
	for used, want := range wants {
		if got := RevealPenalty(used, ModeDaily); got != want {
			t.Errorf("RevealPenalty(%d) = %d, want %d", used, got, want)
		}
	}
	// Each additional hint costs strictly more than the last.
	prevCost := 0
	for used := 1; used < 10; used++ {
		cost := RevealPenalty(used, ModeDaily) - RevealPenalty(used-1, ModeDaily)
		if cost <= prevCost {
			t.Fatalf("marginal cost of reveal %d (%ds) not above previous (%ds)", used, cost, prevCost)
		}
		prevCost = cost
	}
}

func TestHintsDisabledModesHaveNoPenalty(t *testing.T) {
	if RevealPenalty(3, ModeTimed) != 0 {
		t.Fatal("timed mode accrued a reveal penalty")
	}
	if CanRevealNext(0, t0+1<<40, t0, ModeTimed) {
		t.Fatal("timed mode allowed a reveal")
	}
}

func TestEffectiveTime(t *testing.T) {
	if got := EffectiveTime(100, 2, ModeDaily); got != 115 {
		t.Fatalf("EffectiveTime = %v, want 115", got)
	}
	if got := EffectiveTime(100, 0, ModeDaily); got != 100 {
		t.Fatalf("no reveals should leave time untouched, got %v", got)
	}
}

func TestRevealNextLetter(t *testing.T) {
	cases := []struct {
		name     string
		answer   string
		revealed []int
		want     int
	}{
		{"first", "hello", nil, 0},
		{"skips revealed", "hello", []int{0, 1}, 2},
		{"gap", "hello", []int{0, 2}, 1},
		{"exhausted", "hi", []int{0, 1}, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RevealNextLetter(tc.answer, tc.revealed); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBuildDisplay(t *testing.T) {
	cases := []struct {
		name     string
		answer   string
		revealed []int
		input    string
		want     string
	}{
		{"reveals only", "hello", []int{0, 2}, "", "h_l__"},
		{"input fills gaps", "hello", []int{0, 2}, "el", "hell_"},
		{"complete", "hello", []int{0, 2}, "elo", "hello"},
		{"no reveals", "cat", nil, "c", "c__"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildDisplay(tc.answer, tc.revealed, tc.input); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateInputAndSolved(t *testing.T) {
	cases := []struct {
		name     string
		answer   string
		revealed []int
		input    string
		valid    bool
		solved   bool
	}{
		{"exact", "cat", []int{0}, "at", true, true},
		{"case insensitive", "cat", []int{0}, "AT", true, true},
		{"wrong letter", "cat", []int{0}, "ax", false, false},
		{"missing chars", "cat", []int{0}, "a", false, false},
		{"extra input", "cat", []int{0}, "att", false, false},
		{"fully revealed", "hi", []int{0, 1}, "", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidateInput(tc.answer, tc.revealed, tc.input); got != tc.valid {
				t.Fatalf("ValidateInput = %v, want %v", got, tc.valid)
			}
			if got := IsWordSolved(tc.answer, tc.revealed, tc.input); got != tc.solved {
				t.Fatalf("IsWordSolved = %v, want %v", got, tc.solved)
			}
		})
	}
}
