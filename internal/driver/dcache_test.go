package driver

import (
	"os"
	"path/filepath"
	"testing"

	"cardgen/internal/card"
	"cardgen/internal/differ"
	"cardgen/internal/project"
	"cardgen/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}
	key := project.StringDigest("k")
	want := &card.Card{
		Path:    "std/mem.zig",
		OldTag:  "0.11",
		NewTag:  "0.16",
		InOld:   true,
		InNew:   true,
		Summary: "Memory helpers.",
		Index:   7,
		Changes: []card.Change{{
			Name:       "copy",
			Status:     differ.StatusChanged,
			Categories: []differ.Category{differ.AllocatorAdded},
		}},
	}
	if err := cache.Put(key, want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Path != want.Path || got.Summary != want.Summary || len(got.Changes) != 1 ||
		got.Changes[0].Categories[0] != differ.AllocatorAdded {
		t.Errorf("got %+v", got)
	}
	if got.Index != 0 {
		t.Errorf("cached index = %d, want 0", got.Index)
	}

	if _, ok, _ := cache.Get(project.StringDigest("other")); ok {
		t.Error("unknown key must miss")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Error("entry survived DropAll")
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.StringDigest("bad")
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); ok || err == nil {
		t.Errorf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

func TestCardKeyInputs(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.zig", "0.11", []byte("pub fn f() void {}\n")))
	b := fs.Get(fs.AddVirtual("a.zig", "0.16", []byte("pub fn f() !void {}\n")))
	both := source.Pair{Rel: "a.zig", InOld: true, InNew: true}
	oldOnly := source.Pair{Rel: "a.zig", InOld: true}

	base := cardKey(both, a, b, "0.11", "0.16", "rules")
	variants := []project.Digest{
		cardKey(source.Pair{Rel: "b.zig", InOld: true, InNew: true}, a, b, "0.11", "0.16", "rules"),
		cardKey(both, b, a, "0.11", "0.16", "rules"),
		cardKey(both, a, nil, "0.11", "0.16", "rules"),
		cardKey(oldOnly, a, nil, "0.11", "0.16", "rules"),
		cardKey(both, a, b, "0.12", "0.16", "rules"),
		cardKey(both, a, b, "0.11", "0.16", "other"),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}
	if cardKey(both, a, b, "0.11", "0.16", "rules") != base {
		t.Error("key is not deterministic")
	}
	// прочитать не удалось != файла нет
	if cardKey(both, a, nil, "0.11", "0.16", "rules") == cardKey(oldOnly, a, nil, "0.11", "0.16", "rules") {
		t.Error("unreadable side collides with absent side")
	}
}

func TestDiskCacheSkippedThenRemoved(t *testing.T) {
	opts := setupTrees(t,
		map[string]string{"std/blob.zig": "pub fn ok() void {}\n"},
		map[string]string{"std/blob.zig": "pub fn ok() void {}\x00\x01\n"},
	)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts.Cache = cache

	first := mustRun(t, opts)
	if got := cardFor(t, first, "std/blob.zig"); got.Outcome != card.Skipped {
		t.Fatalf("first outcome = %v, want skipped", got.Outcome)
	}

	if err := os.Remove(filepath.Join(opts.NewRoot, "std", "blob.zig")); err != nil {
		t.Fatal(err)
	}
	cached := mustRun(t, opts)
	opts.Cache = nil
	fresh := mustRun(t, opts)

	got, want := cardFor(t, cached, "std/blob.zig"), cardFor(t, fresh, "std/blob.zig")
	if got.Outcome != card.Analyzed || got.Presence() != "old only" {
		t.Fatalf("cached run: outcome=%v presence=%s", got.Outcome, got.Presence())
	}
	if got.Outcome != want.Outcome || got.Presence() != want.Presence() || len(got.Changes) != len(want.Changes) {
		t.Errorf("cached card %+v differs from fresh %+v", got, want)
	}
	if cached.Summary.Cached != 0 {
		t.Errorf("cached = %d, want 0", cached.Summary.Cached)
	}
}
