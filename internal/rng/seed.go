// internal/rng/seed.go
//
// Round seed grammar and constructors.
// Two accepted shapes:
//   - Daily:  "daily-YYYY-MM-DD" — fixed per UTC calendar day, shared by all
//     players so the daily puzzle is identical everywhere.
//   - Ad-hoc: "<positive-integer>-<suffix>" — minted once per round.
//
// A seed never changes meaning: identical seed ⇒ identical derived randomness.

package rng

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Syntactic check only; "daily-2024-99-99" passes. Calendar validity is not
// the seed's job — the date portion is just entropy.
var dailySeedRe = regexp.MustCompile(`^daily-\d{4}-\d{2}-\d{2}$`)

// ValidateSeed reports whether seed matches one of the two accepted grammars.
func ValidateSeed(seed string) bool {
	if seed == "" {
		return false
	}
	if dailySeedRe.MatchString(seed) {
		return true
	}
	i := strings.Index(seed, "-")
	if i <= 0 || i == len(seed)-1 {
		return false
	}
	n, err := strconv.ParseInt(seed[:i], 10, 64)
	return err == nil && n > 0
}

// DailySeed returns the shared seed for the UTC day containing t.
func DailySeed(t time.Time) string {
	return "daily-" + t.UTC().Format("2006-01-02")
}

// NewRoundSeed mints a fresh ad-hoc seed: millisecond timestamp plus a
// crypto-random suffix. Globally distinct in practice, not enforced.
func NewRoundSeed() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(b[:]))
}
