package corpus_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"cardgen/internal/card"
	"cardgen/internal/corpus"
	"cardgen/internal/differ"
)

func toDiffing(t *testing.T, c *corpus.Corpus) {
	t.Helper()
	for _, s := range []corpus.State{corpus.Loading, corpus.Diffing} {
		if err := c.Advance(s); err != nil {
			t.Fatalf("advance to %s: %v", s, err)
		}
	}
}

func TestLifecycle(t *testing.T) {
	c := corpus.New()
	if _, err := c.Index(); !errors.Is(err, corpus.ErrNotReady) {
		t.Fatalf("Index before build: %v", err)
	}
	if err := c.Add(&card.Card{Path: "a.zig"}); !errors.Is(err, corpus.ErrState) {
		t.Fatalf("Add while empty: %v", err)
	}
	if err := c.Advance(corpus.Diffing); !errors.Is(err, corpus.ErrState) {
		t.Fatalf("skipping a state must fail: %v", err)
	}
	toDiffing(t, c)
	if err := c.Add(&card.Card{Path: "a.zig"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(&card.Card{Path: "a.zig"}); !errors.Is(err, corpus.ErrState) {
		t.Fatalf("duplicate path: %v", err)
	}
	if _, err := c.Build(); !errors.Is(err, corpus.ErrState) {
		t.Fatalf("Build while diffing: %v", err)
	}
	if err := c.Advance(corpus.Rendered); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(&card.Card{Path: "b.zig"}); !errors.Is(err, corpus.ErrState) {
		t.Fatalf("Add after diffing: %v", err)
	}
	if _, err := c.Index(); !errors.Is(err, corpus.ErrNotReady) {
		t.Fatalf("Index before build: %v", err)
	}
	idx, err := c.Build()
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != corpus.Indexed || idx.Len() != 1 {
		t.Fatalf("state %s, len %d", c.State(), idx.Len())
	}
	if err := c.Advance(corpus.Indexed + 1); !errors.Is(err, corpus.ErrState) {
		t.Fatalf("advance past indexed: %v", err)
	}
}

func buildWithWorkers(t *testing.T, workers int, paths []string) *corpus.Index {
	t.Helper()
	c := corpus.New()
	toDiffing(t, c)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				cd := &card.Card{Path: p}
				if len(p)%2 == 0 {
					cd.Changes = []card.Change{{Name: "f", Categories: []differ.Category{differ.AllocatorAdded}}}
				}
				if err := c.Add(cd); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	if err := c.Advance(corpus.Rendered); err != nil {
		t.Fatal(err)
	}
	idx, err := c.Build()
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestOrderingIndependentOfWorkers(t *testing.T) {
	var paths []string
	for i := 1000; i > 0; i-- {
		paths = append(paths, fmt.Sprintf("std/f%04d.zig", i))
	}
	one := buildWithWorkers(t, 1, paths)
	eight := buildWithWorkers(t, 8, paths)

	a, b := one.Cards(), eight.Cards()
	if len(a) != len(b) || len(a) != 1000 {
		t.Fatalf("lengths %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Path != b[i].Path || a[i].Index != b[i].Index || a[i].Index != i+1 {
			t.Fatalf("card %d: %s#%d vs %s#%d", i, a[i].Path, a[i].Index, b[i].Path, b[i].Index)
		}
	}
	if a[0].Path != "std/f0001.zig" {
		t.Errorf("first card = %s", a[0].Path)
	}
}

func TestIndexLookups(t *testing.T) {
	idx := buildWithWorkers(t, 4, []string{"b.zig", "aa.zig", "c.zig"})

	cd, ok := idx.ByPath("b.zig")
	if !ok || cd.Index != 2 {
		t.Fatalf("ByPath(b.zig) = %+v, %v", cd, ok)
	}
	if cd, ok := idx.ByIndex(1); !ok || cd.Path != "aa.zig" {
		t.Fatalf("ByIndex(1) = %+v, %v", cd, ok)
	}
	if _, ok := idx.ByIndex(0); ok {
		t.Error("index 0 must not exist")
	}
	if _, ok := idx.ByIndex(4); ok {
		t.Error("index past the end must not exist")
	}
	alloc := idx.ByCategory(differ.AllocatorAdded)
	if len(alloc) != 1 || alloc[0].Path != "aa.zig" {
		t.Errorf("ByCategory(allocator_added) = %v", alloc)
	}
	if none := idx.ByCategory(differ.NoChange); len(none) != 2 {
		t.Errorf("ByCategory(no_change) = %d cards", len(none))
	}
	if counts := idx.Counts(); counts[card.Analyzed] != 3 {
		t.Errorf("counts = %v", counts)
	}
}

func TestIndexIsSnapshot(t *testing.T) {
	idx := buildWithWorkers(t, 1, []string{"a.zig"})
	cards := idx.Cards()
	cards[0] = &card.Card{Path: "mutated.zig"}
	if cd, _ := idx.ByIndex(1); cd.Path != "a.zig" {
		t.Fatal("Cards() must return a copy")
	}
}
