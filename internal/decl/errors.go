package decl

import (
	"fmt"

	"cardgen/internal/diag"
	"cardgen/internal/source"
)

// ParseError reports a file that could not be analyzed: a lexical error or
// an unbalanced top-level delimiter.
type ParseError struct {
	Path    string
	Version string
	Pos     source.LineCol    // позиция первой ошибки
	Diags   []diag.Diagnostic // только ошибки, в порядке обнаружения
}

func (e *ParseError) Error() string {
	if len(e.Diags) == 0 {
		return fmt.Sprintf("parse %s/%s: failed", e.Version, e.Path)
	}
	msg := fmt.Sprintf("parse %s/%s:%s: %s %s",
		e.Version, e.Path, e.Pos, e.Diags[0].Code.ID(), e.Diags[0].Message)
	if n := len(e.Diags) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

func newParseError(f *source.File, bag *diag.Bag) *ParseError {
	pe := &ParseError{Path: f.Path, Version: f.Version}
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			pe.Diags = append(pe.Diags, d)
		}
	}
	if len(pe.Diags) > 0 {
		pe.Pos = f.Position(pe.Diags[0].Primary.Start)
	}
	return pe
}
