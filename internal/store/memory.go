// internal/store/memory.go
//
// Collaborator contracts consumed by the game core, plus in-memory
// implementations.
//
//   - GroupStore:  read-only anagram group lookup with a stable order,
//     so a seeded offset always resolves to the same group.
//   - RecentStore: per-user recently-seen-signature list (append/trim/read).
//     Best-effort from the selector's point of view — failures degrade to
//     "no exclusion" or "tracking skipped", never to a failed pick.
//   - RoundStore:  active round sessions keyed by ID.
//
// Memory implementations are concurrency-safe via RWMutex and lose state on
// restart; the SQLite RecentStore in sqlite.go is the durable variant.

package store

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"sync"

	"github.com/scrambled/go-server/internal/words"
)

// GroupStore is the read side of the anagram group data.
// (lang, difficulty, signature) is unique across the store.
type GroupStore interface {
	// Count reports how many groups match (lang, difficulty) minus exclusions.
	Count(ctx context.Context, lang, difficulty string, exclude []string) (int, error)

	// FindOneAt returns the group at offset within the stable-ordered
	// candidate set. Offset must be in [0, Count).
	FindOneAt(ctx context.Context, lang, difficulty string, exclude []string, offset int) (*words.AnagramGroup, error)

	// SampleOne returns a uniformly random matching group, or nil if none.
	SampleOne(ctx context.Context, lang, difficulty string, exclude []string) (*words.AnagramGroup, error)
}

// RecentStore is the per-user recently-seen-signature list.
// Key format: "user:{userId}:{lang}:{difficulty}:recent".
type RecentStore interface {
	// ReadRange returns list entries [start, stop] newest first.
	ReadRange(ctx context.Context, key string, start, stop int) ([]string, error)

	// PushAndTrim prepends value and trims the list to max entries.
	PushAndTrim(ctx context.Context, key, value string, max int) error

	// Delete removes the whole list.
	Delete(ctx context.Context, key string) error
}

// ErrOffsetOutOfRange is returned by FindOneAt for offsets past the
// candidate set; it indicates a caller bug, not missing data.
var ErrOffsetOutOfRange = errors.New("group offset out of range")

// memoryGroups serves groups straight from the words package buckets.
type memoryGroups struct{}

// NewMemoryGroups returns a GroupStore over the embedded word lists.
func NewMemoryGroups() GroupStore { return memoryGroups{} }

func (memoryGroups) Count(ctx context.Context, lang, difficulty string, exclude []string) (int, error) {
	n := 0
	skip := toSet(exclude)
	for _, g := range words.Groups(lang, difficulty) {
		if _, ok := skip[g.Signature]; !ok {
			n++
		}
	}
	return n, nil
}

func (memoryGroups) FindOneAt(ctx context.Context, lang, difficulty string, exclude []string, offset int) (*words.AnagramGroup, error) {
	skip := toSet(exclude)
	gs := words.Groups(lang, difficulty)
	i := 0
	for idx := range gs {
		if _, ok := skip[gs[idx].Signature]; ok {
			continue
		}
		if i == offset {
			g := gs[idx]
			return &g, nil
		}
		i++
	}
	return nil, ErrOffsetOutOfRange
}

func (memoryGroups) SampleOne(ctx context.Context, lang, difficulty string, exclude []string) (*words.AnagramGroup, error) {
	skip := toSet(exclude)
	gs := words.Groups(lang, difficulty)
	candidates := make([]int, 0, len(gs))
	for idx := range gs {
		if _, ok := skip[gs[idx].Signature]; !ok {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return nil, err
	}
	g := gs[candidates[nBig.Int64()]]
	return &g, nil
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, s := range list {
		m[s] = struct{}{}
	}
	return m
}

// memoryRecent is a map-backed RecentStore, newest entry first.
type memoryRecent struct {
	mu    sync.RWMutex
	lists map[string][]string
}

// NewMemoryRecent constructs an in-memory RecentStore (tests, dev).
func NewMemoryRecent() RecentStore {
	return &memoryRecent{lists: make(map[string][]string)}
}

func (m *memoryRecent) ReadRange(ctx context.Context, key string, start, stop int) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l := m.lists[key]
	if start >= len(l) {
		return nil, nil
	}
	if stop >= len(l) {
		stop = len(l) - 1
	}
	return append([]string{}, l[start:stop+1]...), nil
}

func (m *memoryRecent) PushAndTrim(ctx context.Context, key, value string, max int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := append([]string{value}, m.lists[key]...)
	if len(l) > max {
		l = l[:max]
	}
	m.lists[key] = l
	return nil
}

func (m *memoryRecent) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, key)
	return nil
}
