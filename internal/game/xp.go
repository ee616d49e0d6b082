// internal/game/xp.go
//
// XP and level math. Levels 1–20 follow a cumulative threshold table with
// increasing deltas; every level past 20 costs a flat 5000 XP.

package game

// xpThresholds[i] is the cumulative XP required to reach level i+1.
var xpThresholds = []int{
	0,     // 1
	100,   // 2
	250,   // 3
	450,   // 4
	700,   // 5
	1000,  // 6
	1400,  // 7
	1900,  // 8
	2500,  // 9
	3200,  // 10
	4000,  // 11
	5000,  // 12
	6200,  // 13
	7600,  // 14
	9200,  // 15
	11000, // 16
	13000, // 17
	15500, // 18
	18500, // 19
	22000, // 20
}

const xpPerLevelBeyondTable = 5000

// Level returns the highest level whose threshold is at or below totalXP.
func Level(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	top := xpThresholds[len(xpThresholds)-1]
	if totalXP >= top {
		return len(xpThresholds) + (totalXP-top)/xpPerLevelBeyondTable
	}
	lvl := 1
	for i, need := range xpThresholds {
		if totalXP < need {
			break
		}
		lvl = i + 1
	}
	return lvl
}

// XPForLevel returns the cumulative XP threshold for level.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level <= len(xpThresholds) {
		return xpThresholds[level-1]
	}
	return xpThresholds[len(xpThresholds)-1] + (level-len(xpThresholds))*xpPerLevelBeyondTable
}

// LevelProgress returns the fraction [0,1] of the way from the current
// level's threshold to the next one.
func LevelProgress(totalXP int) float64 {
	lvl := Level(totalXP)
	cur := XPForLevel(lvl)
	next := XPForLevel(lvl + 1)
	if next == cur {
		return 0
	}
	p := float64(totalXP-cur) / float64(next-cur)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// GameXPInput carries everything the XP award depends on.
type GameXPInput struct {
	Mode           Mode
	WordsSolved    int
	Accuracy       float64
	IsPersonalBest bool
	DailyStreak    int
}

// Per-mode base awards.
var xpBase = map[Mode]int{
	ModeDaily:    50,
	ModeTimed:    30,
	ModeSurvival: 20,
}

const (
	xpPerWord         = 2 // timed and survival only
	xpStreakPerDay    = 10
	xpStreakCap       = 100
	xpPerfectAccuracy = 15
	xpPersonalBest    = 25
)

// GameXP computes the XP awarded for one completed game. Purely additive;
// the daily streak bonus is the only capped term.
func GameXP(in GameXPInput) int {
	xp := xpBase[in.Mode]
	if in.Mode == ModeTimed || in.Mode == ModeSurvival {
		xp += in.WordsSolved * xpPerWord
	}
	if in.Mode == ModeDaily && in.DailyStreak > 1 {
		bonus := in.DailyStreak * xpStreakPerDay
		if bonus > xpStreakCap {
			bonus = xpStreakCap
		}
		xp += bonus
	}
	if in.Accuracy == 100 {
		xp += xpPerfectAccuracy
	}
	if in.IsPersonalBest {
		xp += xpPersonalBest
	}
	return xp
}
