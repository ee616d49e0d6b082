// internal/game/select.go
//
// Anagram group selection.
// Responsibilities:
//   - Deterministic (seeded) and random selection of one anagram group and
//     one word within it, scrambled for presentation.
//   - Recently-seen-signature exclusion per user, with an exhaustion
//     fallback that re-admits recent groups once a bucket runs dry.
//   - Best-effort history tracking: recent-list reads and writes never fail
//     or block a pick.
//
// The seeded path drives everything a round must be able to replay (daily
// puzzles, verifiable rounds). The unseeded path backs casual "give me a
// word" requests and is non-reproducible by design: it scrambles with a
// throwaway generator seeded from wall-clock time plus a random suffix.

package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/scrambled/go-server/internal/rng"
	"github.com/scrambled/go-server/internal/store"
	"github.com/scrambled/go-server/internal/words"
)

var (
	ErrUnsupportedLanguage   = errors.New("unsupported language")
	ErrUnsupportedDifficulty = errors.New("unsupported difficulty")

	// ErrNoGroupsFound means no groups exist for the bucket at all, even
	// ignoring exclusions. Fatal for the request: a data gap, not a
	// transient fault.
	ErrNoGroupsFound = errors.New("no anagram groups found")
)

// Selector picks anagram groups from a GroupStore, tracking recently seen
// signatures per user through an optional RecentStore.
type Selector struct {
	Groups store.GroupStore
	Recent store.RecentStore // nil disables history tracking
}

// Pick is one selected word, scrambled for presentation. Answers lists
// every word in the chosen group; any of them is a correct solve.
type Pick struct {
	Scrambled string   `json:"scrambled"`
	Answers   []string `json:"answers"`
	Signature string   `json:"signature"`
	Seed      string   `json:"seed,omitempty"`
}

const recentHistorySize = 100

// recentKey builds the history list key for one user/bucket.
func recentKey(userID, lang, difficulty string) string {
	return fmt.Sprintf("user:%s:%s:%s:recent", userID, lang, difficulty)
}

// Pick selects one group and word. With a non-empty seed the choice is
// fully determined by (bucket contents, exclusions, seed); without one the
// group is sampled uniformly at random and the result is not reproducible.
// userID may be empty for anonymous callers with no history.
func (s *Selector) Pick(ctx context.Context, lang, difficulty, userID, seed string) (*Pick, error) {
	if !words.ValidLang(lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if !words.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDifficulty, difficulty)
	}

	excluded := s.readRecent(ctx, userID, lang, difficulty)

	var (
		group *words.AnagramGroup
		r     *rng.SeededRandom
		err   error
	)
	if seed != "" {
		group, r, err = s.pickSeeded(ctx, lang, difficulty, excluded, seed)
	} else {
		group, r, err = s.pickRandom(ctx, lang, difficulty, excluded)
	}
	if err != nil {
		return nil, err
	}

	word := group.Words[r.NextInt(0, len(group.Words)-1)]
	scrambled := words.Scramble(word, r)

	s.trackRecent(ctx, userID, lang, difficulty, group.Signature)

	return &Pick{
		Scrambled: scrambled,
		Answers:   append([]string{}, group.Words...),
		Signature: group.Signature,
		Seed:      seed,
	}, nil
}

// pickSeeded counts candidates (falling back to the full bucket when
// exclusions exhaust it) and takes a seed-determined offset into the
// stable-ordered set.
func (s *Selector) pickSeeded(ctx context.Context, lang, difficulty string, excluded []string, seed string) (*words.AnagramGroup, *rng.SeededRandom, error) {
	count, err := s.Groups.Count(ctx, lang, difficulty, excluded)
	if err != nil {
		return nil, nil, err
	}
	if count == 0 && len(excluded) > 0 {
		// Every signature in the bucket was seen recently; recycle.
		excluded = nil
		if count, err = s.Groups.Count(ctx, lang, difficulty, nil); err != nil {
			return nil, nil, err
		}
	}
	if count == 0 {
		return nil, nil, ErrNoGroupsFound
	}
	r := rng.NewSeededRandom(seed)
	group, err := s.Groups.FindOneAt(ctx, lang, difficulty, excluded, r.NextInt(0, count-1))
	if err != nil {
		return nil, nil, err
	}
	return group, r, nil
}

// pickRandom samples uniformly, with the same exclusion-then-fallback
// policy. The scramble generator is seeded from the wall clock plus a
// random suffix, so this path is not reproducible.
func (s *Selector) pickRandom(ctx context.Context, lang, difficulty string, excluded []string) (*words.AnagramGroup, *rng.SeededRandom, error) {
	group, err := s.Groups.SampleOne(ctx, lang, difficulty, excluded)
	if err != nil {
		return nil, nil, err
	}
	if group == nil && len(excluded) > 0 {
		if group, err = s.Groups.SampleOne(ctx, lang, difficulty, nil); err != nil {
			return nil, nil, err
		}
	}
	if group == nil {
		return nil, nil, ErrNoGroupsFound
	}
	return group, rng.NewSeededRandom(rng.NewRoundSeed()), nil
}

// readRecent loads the exclusion set, degrading to no exclusion on any
// failure.
func (s *Selector) readRecent(ctx context.Context, userID, lang, difficulty string) []string {
	if s.Recent == nil || userID == "" {
		return nil
	}
	key := recentKey(userID, lang, difficulty)
	sigs, err := s.Recent.ReadRange(ctx, key, 0, recentHistorySize-1)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("read recent signatures")
		return nil
	}
	return sigs
}

// trackRecent appends the chosen signature, trimmed to the newest 100.
// Failures are swallowed: a duplicate word occasionally resurfacing is an
// accepted degradation, not a correctness bug.
func (s *Selector) trackRecent(ctx context.Context, userID, lang, difficulty, signature string) {
	if s.Recent == nil || userID == "" {
		return
	}
	key := recentKey(userID, lang, difficulty)
	if err := s.Recent.PushAndTrim(ctx, key, signature, recentHistorySize); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("track recent signature")
	}
}

// WordPair is one practice word: the scramble shown and its answer.
type WordPair struct {
	Scrambled string `json:"scrambled"`
	Answer    string `json:"answer"`
}

// GenerateWords produces n practice pairs deterministically from seed: the
// same (seed, n) always yields the same slice. No exclusions and no history
// tracking; practice batches are stateless.
func (s *Selector) GenerateWords(ctx context.Context, lang, difficulty, seed string, n int) ([]WordPair, error) {
	if !words.ValidLang(lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	if !words.ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDifficulty, difficulty)
	}
	count, err := s.Groups.Count(ctx, lang, difficulty, nil)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoGroupsFound
	}
	r := rng.NewSeededRandom(seed)
	out := make([]WordPair, 0, n)
	for i := 0; i < n; i++ {
		group, err := s.Groups.FindOneAt(ctx, lang, difficulty, nil, r.NextInt(0, count-1))
		if err != nil {
			return nil, err
		}
		word := group.Words[r.NextInt(0, len(group.Words)-1)]
		out = append(out, WordPair{Scrambled: words.Scramble(word, r), Answer: word})
	}
	return out, nil
}
