package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/scrambled/go-server/internal/store"
	"github.com/scrambled/go-server/internal/words"
)

func newSelector(t *testing.T) *Selector {
	t.Helper()
	if err := words.Init(); err != nil {
		t.Fatal(err)
	}
	return &Selector{Groups: store.NewMemoryGroups(), Recent: store.NewMemoryRecent()}
}

func TestPickRejectsUnknownEnums(t *testing.T) {
	s := newSelector(t)
	ctx := context.Background()
	if _, err := s.Pick(ctx, "xx", "easy", "", "1-a"); !errors.Is(err, ErrUnsupportedLanguage) {
		t.Fatalf("lang: got %v", err)
	}
	if _, err := s.Pick(ctx, "en", "brutal", "", "1-a"); !errors.Is(err, ErrUnsupportedDifficulty) {
		t.Fatalf("difficulty: got %v", err)
	}
}

func TestSeededPickIsReproducible(t *testing.T) {
	s := newSelector(t)
	ctx := context.Background()

	// No user: history tracking off, so repeated picks see the same world.
	a, err := s.Pick(ctx, "en", "easy", "", "fixed-seed")
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Pick(ctx, "en", "easy", "", "fixed-seed")
	if err != nil {
		t.Fatal(err)
	}
	if a.Scrambled != b.Scrambled || !reflect.DeepEqual(a.Answers, b.Answers) {
		t.Fatalf("same seed diverged: %+v vs %+v", a, b)
	}
	if words.Signature(a.Scrambled) != a.Signature {
		t.Fatalf("scrambled %q is not an anagram of signature %q", a.Scrambled, a.Signature)
	}
}

func TestPickTracksRecentHistory(t *testing.T) {
	s := newSelector(t)
	ctx := context.Background()

	p, err := s.Pick(ctx, "en", "easy", "user1", "fixed-seed")
	if err != nil {
		t.Fatal(err)
	}
	sigs, err := s.Recent.ReadRange(ctx, "user:user1:en:easy:recent", 0, 99)
	if err != nil {
		t.Fatal(err)
	}
	if len(sigs) != 1 || sigs[0] != p.Signature {
		t.Fatalf("history = %v, want [%s]", sigs, p.Signature)
	}
}

func TestExhaustionFallbackRecyclesSignatures(t *testing.T) {
	s := newSelector(t)
	ctx := context.Background()

	// Mark every easy group as recently seen.
	for _, g := range words.Groups("en", "easy") {
		if err := s.Recent.PushAndTrim(ctx, "user:u2:en:easy:recent", g.Signature, 200); err != nil {
			t.Fatal(err)
		}
	}
	p, err := s.Pick(ctx, "en", "easy", "u2", "another-seed")
	if err != nil {
		t.Fatalf("exhausted bucket should fall back, got %v", err)
	}
	if p.Scrambled == "" {
		t.Fatal("empty pick")
	}
}

func TestRandomPickReturnsValidAnagram(t *testing.T) {
	s := newSelector(t)
	p, err := s.Pick(context.Background(), "fr", "medium", "", "")
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, a := range p.Answers {
		if words.Signature(a) == p.Signature {
			found = true
		}
	}
	if !found || words.Signature(p.Scrambled) != p.Signature {
		t.Fatalf("random pick inconsistent: %+v", p)
	}
}

// failingRecent always errors; the selector must shrug it off.
type failingRecent struct{}

func (failingRecent) ReadRange(context.Context, string, int, int) ([]string, error) {
	return nil, errors.New("list store down")
}
func (failingRecent) PushAndTrim(context.Context, string, string, int) error {
	return errors.New("list store down")
}
func (failingRecent) Delete(context.Context, string) error { return errors.New("list store down") }

func TestRecentStoreFailuresNeverFailThePick(t *testing.T) {
	if err := words.Init(); err != nil {
		t.Fatal(err)
	}
	s := &Selector{Groups: store.NewMemoryGroups(), Recent: failingRecent{}}
	if _, err := s.Pick(context.Background(), "en", "medium", "user9", "77-seed"); err != nil {
		t.Fatalf("pick failed on recent-store outage: %v", err)
	}
}

func TestGenerateWordsDeterministic(t *testing.T) {
	s := newSelector(t)
	ctx := context.Background()

	a, err := s.GenerateWords(ctx, "en", "medium", "batch-seed", 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.GenerateWords(ctx, "en", "medium", "batch-seed", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different batches:\n%v\n%v", a, b)
	}
	for _, p := range a {
		if words.Signature(p.Scrambled) != words.Signature(p.Answer) {
			t.Errorf("pair %+v: scramble is not an anagram of its answer", p)
		}
	}
}
