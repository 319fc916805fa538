package decl

import (
	"slices"
	"strconv"
	"strings"

	"cardgen/internal/token"
)

// collectRefs находит @import("...") и std.X во всём файле, включая тела.
func (p *parser) collectRefs() (imports, stdRefs []string) {
	for i, tok := range p.toks {
		switch {
		case tok.Kind == token.Builtin && tok.Text == "@import":
			if p.kind(i+1) == token.LParen && p.kind(i+2) == token.StringLit && p.kind(i+3) == token.RParen {
				imports = append(imports, unquote(p.text(i+2)))
			}
		case tok.Kind == token.Ident && tok.Text == "std":
			if p.kind(i-1) == token.Dot {
				continue // foo.std.x: не пространство std
			}
			if p.kind(i+1) == token.Dot && p.kind(i+2) == token.Ident {
				stdRefs = append(stdRefs, "std."+p.text(i+2))
			}
		}
	}
	return sortedUnique(imports), sortedUnique(stdRefs)
}

func sortedUnique(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	slices.Sort(items)
	return slices.Compact(items)
}

func unquote(lit string) string {
	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}
	return strings.Trim(lit, `"`)
}
