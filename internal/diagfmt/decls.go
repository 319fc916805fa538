package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cardgen/internal/decl"
	"cardgen/internal/source"
)

// FormatDeclsPretty prints one line per declaration and indented public
// members of containers.
func FormatDeclsPretty(w io.Writer, f *decl.File, decls []*decl.Decl) error {
	if f.Doc != "" {
		fmt.Fprintf(w, "//! %s\n", f.Doc)
	}
	for _, d := range decls {
		if _, err := fmt.Fprintf(w, "%-8s %-24s %s\n", d.Kind, d.Name, d.SignatureText()); err != nil {
			return err
		}
		for _, m := range d.PublicMembers() {
			if _, err := fmt.Fprintf(w, "  %-6s %-24s %s\n", m.Kind, m.Name, m.SignatureText()); err != nil {
				return err
			}
		}
	}
	if len(f.Imports) > 0 {
		fmt.Fprintf(w, "imports: %v\n", f.Imports)
	}
	return nil
}

// DeclOutput is the JSON form of one declaration.
type DeclOutput struct {
	Name       string       `json:"name"`
	Kind       string       `json:"kind"`
	Visibility string       `json:"visibility"`
	Signature  string       `json:"signature"`
	Line       uint32       `json:"line"`
	Doc        string       `json:"doc,omitempty"`
	Members    []DeclOutput `json:"members,omitempty"`
}

// FormatDeclsJSON writes the file summary and decls as indented JSON.
func FormatDeclsJSON(w io.Writer, src *source.File, f *decl.File, decls []*decl.Decl) error {
	payload := struct {
		Path    string       `json:"path"`
		Doc     string       `json:"doc,omitempty"`
		Decls   []DeclOutput `json:"decls"`
		Imports []string     `json:"imports,omitempty"`
		StdRefs []string     `json:"std_refs,omitempty"`
	}{Path: f.Path, Doc: f.Doc, Imports: f.Imports, StdRefs: f.StdRefs}
	for _, d := range decls {
		payload.Decls = append(payload.Decls, declOutput(src, d))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func declOutput(src *source.File, d *decl.Decl) DeclOutput {
	out := DeclOutput{
		Name:       d.Name,
		Kind:       d.Kind.String(),
		Visibility: d.Visibility.String(),
		Signature:  d.SignatureText(),
		Line:       src.Position(d.Span.Start).Line,
		Doc:        d.Doc,
	}
	for _, m := range d.PublicMembers() {
		out.Members = append(out.Members, declOutput(src, m))
	}
	return out
}
