package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cardgen/internal/decl"
	"cardgen/internal/source"
)

// CheckDeclInvariants runs a minimal set of invariants on an extracted file:
// 1) the file and every decl point at sf.ID and carry its version
// 2) every decl span is non-empty and within file content bounds
// 3) top-level decls are in source order and don't overlap
// 4) members are nested inside the span of their container
func CheckDeclInvariants(f *decl.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil decl file or source file")
	}
	if f.ID != sf.ID {
		return fmt.Errorf("file id mismatch: got=%d want=%d", f.ID, sf.ID)
	}
	if f.Version != sf.Version {
		return fmt.Errorf("file version mismatch: got=%q want=%q", f.Version, sf.Version)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	whole := source.Span{File: sf.ID, Start: 0, End: lenContent}
	return checkLevel(f.Decls, whole, sf)
}

func checkLevel(decls []*decl.Decl, parent source.Span, sf *source.File) error {
	var prevEnd uint32
	for i, d := range decls {
		if d == nil {
			return fmt.Errorf("nil decl at index %d", i)
		}
		if d.Name == "" {
			return fmt.Errorf("decl at %v has no name", d.Span)
		}
		sp := d.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("%s: empty span %v", d.Name, sp)
		}
		if sp.File != sf.ID || d.File != sf.ID {
			return fmt.Errorf("%s: file mismatch: span=%d decl=%d want=%d", d.Name, sp.File, d.File, sf.ID)
		}
		if d.Version != sf.Version {
			return fmt.Errorf("%s: version %q, want %q", d.Name, d.Version, sf.Version)
		}
		if !parent.Contains(sp) {
			return fmt.Errorf("%s: span %v is outside parent span %v", d.Name, sp, parent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("%s: span %v overlaps previous decl ending at %d", d.Name, sp, prevEnd)
		}
		prevEnd = sp.End
		if err := checkLevel(d.Members, sp, sf); err != nil {
			return fmt.Errorf("%s: %w", d.Name, err)
		}
	}
	return nil
}
