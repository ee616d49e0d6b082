package words

import (
	"sort"
	"testing"

	"github.com/scrambled/go-server/internal/rng"
)

func TestSignatureInvariantUnderPermutation(t *testing.T) {
	cases := []struct {
		word, want string
	}{
		{"eat", "aet"},
		{"tea", "aet"},
		{"eta", "aet"},
		{"listen", "eilnst"},
		{"silent", "eilnst"},
		{"a", "a"},
	}
	for _, tc := range cases {
		if got := Signature(tc.word); got != tc.want {
			t.Errorf("Signature(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}

func TestScramblePreservesLetters(t *testing.T) {
	r := rng.NewSeededRandom("scramble-test")
	for _, w := range []string{"stop", "triangle", "hello"} {
		s := Scramble(w, r)
		if Signature(s) != Signature(w) {
			t.Errorf("Scramble(%q) = %q: not a permutation", w, s)
		}
	}
}

func TestScrambleDiffersForDistinctLetters(t *testing.T) {
	r := rng.NewSeededRandom("differs")
	differed := false
	for i := 0; i < 20; i++ {
		if Scramble("integral", r) != "integral" {
			differed = true
		}
	}
	if !differed {
		t.Fatal("scramble never produced a different permutation of 'integral'")
	}
}

func TestScrambleDegenerateWords(t *testing.T) {
	r := rng.NewSeededRandom("degenerate")
	if got := Scramble("a", r); got != "a" {
		t.Fatalf("single-letter scramble = %q", got)
	}
	// All-same-letter words have no differing permutation; the 100-attempt
	// guard must still terminate.
	if got := Scramble("aaaa", r); got != "aaaa" {
		t.Fatalf("all-same-letter scramble = %q", got)
	}
}

func TestScrambleIsDeterministicPerSeed(t *testing.T) {
	a := Scramble("listen", rng.NewSeededRandom("fixed"))
	b := Scramble("listen", rng.NewSeededRandom("fixed"))
	if a != b {
		t.Fatalf("same seed scrambled differently: %q vs %q", a, b)
	}
}

func TestGroupsShareSignatureAndStayOrdered(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	for _, lang := range Languages() {
		for _, d := range Difficulties() {
			gs := Groups(lang, d)
			if !sort.SliceIsSorted(gs, func(i, j int) bool { return gs[i].Signature < gs[j].Signature }) {
				t.Errorf("%s/%s groups not signature-sorted", lang, d)
			}
			for _, g := range gs {
				for _, w := range g.Words {
					if Signature(w) != g.Signature {
						t.Errorf("%s/%s: word %q has signature %q, group claims %q",
							lang, d, w, Signature(w), g.Signature)
					}
				}
			}
		}
	}
}

func TestEveryBucketHasGroups(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatal(err)
	}
	for _, lang := range Languages() {
		for _, d := range Difficulties() {
			if len(Groups(lang, d)) == 0 {
				t.Errorf("no groups for %s/%s", lang, d)
			}
		}
	}
}

func TestEnumValidation(t *testing.T) {
	if !ValidLang("en") || ValidLang("xx") {
		t.Error("ValidLang")
	}
	if !ValidDifficulty("hard") || ValidDifficulty("brutal") {
		t.Error("ValidDifficulty")
	}
}
