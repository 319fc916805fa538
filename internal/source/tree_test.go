package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

func TestPairTrees(t *testing.T) {
	tmp := t.TempDir()
	oldRoot := filepath.Join(tmp, "old")
	newRoot := filepath.Join(tmp, "new")
	writeTree(t, oldRoot, map[string]string{
		"mem.zig":          "",
		"io/reader.zig":    "",
		"removed.zig":      "",
		"README.md":        "",
		".zig-cache/x.zig": "",
		"zig-cache/y.zig":  "",
	})
	writeTree(t, newRoot, map[string]string{
		"mem.zig":       "",
		"io/reader.zig": "",
		"Io/Writer.zig": "",
	})

	pairs, err := PairTrees(oldRoot, newRoot, TreeOptions{})
	if err != nil {
		t.Fatalf("PairTrees: %v", err)
	}
	want := []struct {
		rel          string
		inOld, inNew bool
	}{
		{"Io/Writer.zig", false, true},
		{"io/reader.zig", true, true},
		{"mem.zig", true, true},
		{"removed.zig", true, false},
	}
	if len(pairs) != len(want) {
		t.Fatalf("got %d pairs: %+v", len(pairs), pairs)
	}
	for i, w := range want {
		p := pairs[i]
		if p.Rel != w.rel || p.InOld != w.inOld || p.InNew != w.inNew {
			t.Errorf("pair[%d] = %+v, want %+v", i, p, w)
		}
	}
	if !pairs[0].Added() || !pairs[3].Removed() || pairs[2].Added() {
		t.Error("Added/Removed helpers disagree with presence flags")
	}
}

func TestPairTreesBadRoot(t *testing.T) {
	tmp := t.TempDir()
	_, err := PairTrees(filepath.Join(tmp, "nope"), tmp, TreeOptions{})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}

	file := filepath.Join(tmp, "file.zig")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := CheckRoot(file); err == nil {
		t.Error("CheckRoot should reject a regular file")
	}
}

func TestPairTreesCustomExtensions(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, map[string]string{"a.zig": "", "b.zon": ""})
	pairs, err := PairTrees(tmp, tmp, TreeOptions{Extensions: []string{".zon"}})
	if err != nil {
		t.Fatalf("PairTrees: %v", err)
	}
	if len(pairs) != 1 || pairs[0].Rel != "b.zon" || !pairs[0].InOld || !pairs[0].InNew {
		t.Errorf("unexpected pairs %+v", pairs)
	}
}

func TestPairTreesUnreadableEntry(t *testing.T) {
	oldRoot, newRoot := t.TempDir(), t.TempDir()
	writeTree(t, oldRoot, map[string]string{"a.zig": "", "locked/b.zig": ""})
	writeTree(t, newRoot, map[string]string{"a.zig": "", "locked/b.zig": "", "gone.zig": ""})

	// чтение каталога locked и lstat gone.zig в новом дереве падают
	orig := walkDir
	t.Cleanup(func() { walkDir = orig })
	walkDir = func(root string, fn fs.WalkDirFunc) error {
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if root == newRoot && d != nil && (d.Name() == "locked" || d.Name() == "gone.zig") {
				return fn(path, d, fs.ErrPermission)
			}
			return fn(path, d, err)
		})
	}

	pairs, err := PairTrees(oldRoot, newRoot, TreeOptions{})
	if err != nil {
		t.Fatalf("PairTrees: %v", err)
	}
	byRel := map[string]Pair{}
	for _, p := range pairs {
		byRel[p.Rel] = p
	}

	if p := byRel["a.zig"]; p.OldErr != nil || p.NewErr != nil {
		t.Errorf("a.zig = %+v", p)
	}
	gone := byRel["gone.zig"]
	var le *LoadError
	if !gone.InNew || !errors.As(gone.NewErr, &le) || !errors.Is(gone.NewErr, fs.ErrPermission) {
		t.Errorf("gone.zig = %+v", gone)
	}
	locked := byRel["locked"]
	if !locked.InNew || locked.InOld || locked.NewErr == nil {
		t.Errorf("locked = %+v", locked)
	}
	// старое дерево читается целиком, новое не спускается в locked
	if p := byRel["locked/b.zig"]; !p.InOld || p.InNew {
		t.Errorf("locked/b.zig = %+v", p)
	}
}
