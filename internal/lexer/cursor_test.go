package lexer

import (
	"testing"

	"cardgen/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.zig", "new", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Bump() != 0 || cursor.Peek() != 0 {
		t.Error("cursor must be at EOF and stay there")
	}
}

func TestCursorMarkAndPrefix(t *testing.T) {
	cursor := NewCursor(createFile("//! doc\nx"))
	m := cursor.Mark()
	if !cursor.HasPrefix("//!") || cursor.HasPrefix("//!!") {
		t.Error("HasPrefix mismatch")
	}
	cursor.SkipToEOL()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 7 {
		t.Errorf("span = %+v", sp)
	}
	if cursor.PeekAt(1) != 'x' {
		t.Errorf("PeekAt(1) = %q", cursor.PeekAt(1))
	}
	cursor.Reset(m)
	if !cursor.Eat('/') || cursor.Eat('!') {
		t.Error("Eat mismatch after Reset")
	}
	cursor.BumpN(100)
	if !cursor.EOF() {
		t.Error("BumpN must clamp at EOF")
	}
}
