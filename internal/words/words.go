// internal/words/words.go
//
// Word data for the unscramble game.
// Responsibilities:
//   - Load per-language word lists from embedded files (one word per line).
//   - Bucket words into difficulties by length and group them by anagram
//     signature into AnagramGroups.
//   - Expose stable, signature-sorted group slices per (lang, difficulty).
//
// Difficulty buckets:
//   easy = 4–5 letters, medium = 6–7, hard = 8+.
//
// In production the group store is fed by an offline ingestion pipeline;
// the embedded lists are small defaults so the server runs with zero
// configuration. Initialization runs once (sync.Once).

package words

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed words/*.txt
var wordsFS embed.FS

// Languages the ingestion pipeline produces lists for.
var languages = []string{"en", "es", "fr", "de"}

// Difficulties, ordered easiest first.
var difficulties = []string{"easy", "medium", "hard"}

// AnagramGroup is a set of words sharing one sorted-letter signature.
// (lang, difficulty, signature) is unique; read-only to the game core.
type AnagramGroup struct {
	Lang       string   `json:"lang"`
	Difficulty string   `json:"difficulty"`
	Signature  string   `json:"signature"`
	Words      []string `json:"words"`
}

var (
	initOnce sync.Once
	groups   map[string][]AnagramGroup // keyed by lang|difficulty, signature-sorted
	initErr  error
)

// ValidLang reports whether lang is a supported language code.
func ValidLang(lang string) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ValidDifficulty reports whether d is a supported difficulty.
func ValidDifficulty(d string) bool {
	for _, x := range difficulties {
		if x == d {
			return true
		}
	}
	return false
}

// Languages returns the supported language codes.
func Languages() []string { return append([]string{}, languages...) }

// Difficulties returns the supported difficulty names.
func Difficulties() []string { return append([]string{}, difficulties...) }

// Signature returns the sorted-letter canonical key of a word.
// Pure and case-sensitive as given; callers lowercase first if they want
// case-insensitive grouping. Signature("eat") == Signature("tea") == "aet".
func Signature(word string) string {
	rs := []rune(word)
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return string(rs)
}

// Init builds the anagram groups from the embedded lists, once.
func Init() error {
	initOnce.Do(func() {
		groups = make(map[string][]AnagramGroup)
		for _, lang := range languages {
			b, err := wordsFS.ReadFile("words/" + lang + ".txt")
			if err != nil {
				initErr = fmt.Errorf("read %s list: %w", lang, err)
				return
			}
			bySig := make(map[string]*AnagramGroup)
			for _, line := range strings.Split(string(b), "\n") {
				w := strings.TrimSpace(strings.ToLower(line))
				if len(w) < 4 || !isAlpha(w) {
					continue
				}
				sig := Signature(w)
				g, ok := bySig[sig]
				if !ok {
					g = &AnagramGroup{
						Lang:       lang,
						Difficulty: difficultyFor(w),
						Signature:  sig,
					}
					bySig[sig] = g
				}
				g.Words = append(g.Words, w)
			}
			for _, g := range bySig {
				key := bucketKey(g.Lang, g.Difficulty)
				groups[key] = append(groups[key], *g)
			}
			// Stable order so a seeded offset always lands on the same group.
			for _, d := range difficulties {
				key := bucketKey(lang, d)
				sort.Slice(groups[key], func(i, j int) bool {
					return groups[key][i].Signature < groups[key][j].Signature
				})
			}
		}
		for _, lang := range languages {
			total := 0
			for _, d := range difficulties {
				total += len(groups[bucketKey(lang, d)])
			}
			if total == 0 {
				initErr = fmt.Errorf("words: no groups for language %q", lang)
				return
			}
		}
	})
	return initErr
}

// Groups returns the signature-sorted groups for one (lang, difficulty)
// bucket. The returned slice must not be mutated.
func Groups(lang, difficulty string) []AnagramGroup {
	if err := Init(); err != nil {
		return nil
	}
	return groups[bucketKey(lang, difficulty)]
}

// Stats returns group counts per lang|difficulty bucket, for diagnostics.
func Stats() map[string]int {
	out := make(map[string]int)
	if err := Init(); err != nil {
		return out
	}
	for k, v := range groups {
		out[k] = len(v)
	}
	return out
}

func bucketKey(lang, difficulty string) string { return lang + "|" + difficulty }

func difficultyFor(w string) string {
	switch n := len([]rune(w)); {
	case n <= 5:
		return "easy"
	case n <= 7:
		return "medium"
	default:
		return "hard"
	}
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
