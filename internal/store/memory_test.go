package store

import (
	"context"
	"testing"

	"github.com/scrambled/go-server/internal/words"
)

func TestMemoryGroupsCountAndFind(t *testing.T) {
	if err := words.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	gs := NewMemoryGroups()

	total, err := gs.Count(ctx, "en", "easy", nil)
	if err != nil {
		t.Fatal(err)
	}
	if total == 0 {
		t.Fatal("no easy english groups")
	}

	first, err := gs.FindOneAt(ctx, "en", "easy", nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Excluding the first group shifts every offset down by one.
	count2, err := gs.Count(ctx, "en", "easy", []string{first.Signature})
	if err != nil {
		t.Fatal(err)
	}
	if count2 != total-1 {
		t.Fatalf("excluded count = %d, want %d", count2, total-1)
	}
	shifted, err := gs.FindOneAt(ctx, "en", "easy", []string{first.Signature}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if shifted.Signature == first.Signature {
		t.Fatal("exclusion did not remove the group")
	}

	if _, err := gs.FindOneAt(ctx, "en", "easy", nil, total); err == nil {
		t.Fatal("offset past the candidate set should error")
	}
}

func TestMemoryGroupsSampleRespectsExclusions(t *testing.T) {
	if err := words.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	gs := NewMemoryGroups()

	var all []string
	for _, g := range words.Groups("de", "easy") {
		all = append(all, g.Signature)
	}
	g, err := gs.SampleOne(ctx, "de", "easy", all)
	if err != nil {
		t.Fatal(err)
	}
	if g != nil {
		t.Fatalf("sample returned excluded group %s", g.Signature)
	}
	g, err = gs.SampleOne(ctx, "de", "easy", nil)
	if err != nil || g == nil {
		t.Fatalf("unexcluded sample failed: %v %v", g, err)
	}
}

func TestMemoryRecentPushTrimRead(t *testing.T) {
	ctx := context.Background()
	rs := NewMemoryRecent()
	key := "user:u:en:easy:recent"

	for i := 0; i < 5; i++ {
		if err := rs.PushAndTrim(ctx, key, string(rune('a'+i)), 3); err != nil {
			t.Fatal(err)
		}
	}
	got, err := rs.ReadRange(ctx, key, 0, 99)
	if err != nil {
		t.Fatal(err)
	}
	// Newest first, trimmed to 3.
	want := []string{"e", "d", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if err := rs.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}
	if got, _ := rs.ReadRange(ctx, key, 0, 99); len(got) != 0 {
		t.Fatalf("list survived delete: %v", got)
	}
}
