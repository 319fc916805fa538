package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetLookupByVersion(t *testing.T) {
	fs := NewFileSet()

	oldID := fs.Add("std/mem.zig", "0.11", []byte("old"), 0)
	newID := fs.Add("std/mem.zig", "0.16", []byte("new"), 0)
	if oldID == newID {
		t.Fatalf("expected distinct ids, got %d twice", oldID)
	}

	f, ok := fs.Lookup("0.11", "std/mem.zig")
	if !ok || string(f.Content) != "old" {
		t.Fatalf("Lookup(0.11) = %v, %v", f, ok)
	}
	f, ok = fs.Lookup("0.16", "std//mem.zig")
	if !ok || string(f.Content) != "new" {
		t.Fatalf("Lookup(0.16) should normalize path, got %v, %v", f, ok)
	}
	if _, ok := fs.Lookup("0.12", "std/mem.zig"); ok {
		t.Error("unexpected file for unknown version")
	}
	if fs.Len() != 2 || !fs.HasFile(newID) || fs.HasFile(5) {
		t.Errorf("unexpected set state: len=%d", fs.Len())
	}
}

// TestAddVirtualLineIdx проверяет правильность построения LineIdx для AddVirtual
func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.zig", "new", []byte("a\r\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
	if got := file.GetLine(2); got != "b" {
		t.Errorf("GetLine(2) = %q, want %q", got, "b")
	}
	if pos := file.Position(2); pos.Line != 2 || pos.Col != 1 {
		t.Errorf("Position(2) = %+v", pos)
	}
}

func TestLoadVersionNormalizes(t *testing.T) {
	dir := t.TempDir()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("pub fn f() void {}\r\n")...)
	if err := os.WriteFile(filepath.Join(dir, "f.zig"), content, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.LoadVersion(dir, "f.zig", "0.16")
	if err != nil {
		t.Fatalf("LoadVersion: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "pub fn f() void {}\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	if f.Version != "0.16" || f.Path != "f.zig" {
		t.Errorf("identity = %q %q", f.Version, f.Path)
	}
}

func TestLoadVersionRejectsBinary(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bin.zig"), []byte{0xff, 0xfe, 0x00, 0x01}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nul.zig"), []byte("pub\x00fn"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	for _, name := range []string{"bin.zig", "nul.zig"} {
		_, err := fs.LoadVersion(dir, name, "old")
		if !IsEncoding(err) {
			t.Errorf("%s: expected encoding error, got %v", name, err)
		}
	}
	if fs.Len() != 0 {
		t.Errorf("rejected files must not be added, len=%d", fs.Len())
	}
}

func TestLoadVersionMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.LoadVersion(t.TempDir(), "missing.zig", "old")
	var le *LoadError
	if err == nil || IsEncoding(err) {
		t.Fatalf("expected IO error, got %v", err)
	}
	if !asLoadError(err, &le) || !os.IsNotExist(le.Err) {
		t.Errorf("expected LoadError wrapping ErrNotExist, got %v", err)
	}
}

func asLoadError(err error, target **LoadError) bool {
	le, ok := err.(*LoadError)
	if ok {
		*target = le
	}
	return ok
}

func TestPositionAcrossLines(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.zig", "0.16", []byte("pub fn a() void {}\npub fn b() void {}\n\nx")))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{18, LineCol{Line: 1, Col: 19}}, // '\n' первой строки
		{19, LineCol{Line: 2, Col: 1}},
		{26, LineCol{Line: 2, Col: 8}},
		{38, LineCol{Line: 3, Col: 1}}, // пустая строка
		{39, LineCol{Line: 4, Col: 1}},
		{40, LineCol{Line: 4, Col: 2}}, // конец файла
	}
	for _, tt := range tests {
		if got := file.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
	if got := file.GetLine(2); got != "pub fn b() void {}" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := file.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := file.GetLine(4); got != "x" {
		t.Errorf("GetLine(4) = %q", got)
	}
	start, end := fs.Resolve(Span{File: file.ID, Start: 22, End: 23})
	if start != (LineCol{Line: 2, Col: 4}) || end != (LineCol{Line: 2, Col: 5}) {
		t.Errorf("Resolve = %+v-%+v", start, end)
	}
}
