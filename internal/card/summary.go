package card

import (
	"fmt"
	"strings"

	"cardgen/internal/decl"
)

// listLimit: сколько имён перечисляем, остальные сворачиваются в "and N more".
const listLimit = 5

const (
	internalSummary = "Internal implementation file: no public API."
	noImpact        = "No migration impact."
	notAnalyzed     = "Not analyzed."
)

func summarize(c *Card, f *decl.File) string {
	switch c.Outcome {
	case Skipped:
		return fmt.Sprintf("Could not analyze `%s`: not a valid UTF-8 source file, skipped.", c.Path)
	case Degraded:
		reason := "unknown error"
		if len(c.Problems) > 0 {
			reason = c.Problems[0]
		}
		return fmt.Sprintf("Could not analyze `%s`: %s.", c.Path, strings.TrimSuffix(reason, "."))
	case Internal:
		return internalSummary
	}

	var sentences []string
	if f != nil {
		if s := firstSentence(f.Doc); s != "" {
			sentences = append(sentences, s)
		}
		sentences = append(sentences, describe(f.Public())...)
	}
	switch {
	case c.InNew && !c.InOld:
		sentences = append(sentences, fmt.Sprintf("New in %s.", c.NewTag))
	case c.InOld && !c.InNew:
		sentences = append(sentences, fmt.Sprintf("Removed in %s.", c.NewTag))
	}
	if len(sentences) == 0 {
		return internalSummary
	}
	return strings.Join(sentences, " ")
}

// describe строит предложения по типам, функциям и константам.
func describe(pub []*decl.Decl) []string {
	var types, fns, consts []*decl.Decl
	for _, d := range pub {
		switch d.Kind {
		case decl.KindType:
			types = append(types, d)
		case decl.KindFunction:
			fns = append(fns, d)
		default:
			consts = append(consts, d)
		}
	}

	var out []string
	switch len(types) {
	case 0:
	case 1:
		s := "Defines type `" + types[0].Name + "`"
		if ops := operations(types[0]); len(ops) > 0 {
			s += " with operations " + nameList(ops)
		}
		out = append(out, s+".")
	default:
		out = append(out, "Defines types "+nameList(declNames(types))+".")
	}
	if len(fns) > 0 {
		out = append(out, plural("Provides function ", "Provides functions ", len(fns))+nameList(declNames(fns))+".")
	}
	if len(consts) > 0 {
		out = append(out, plural("Exports constant ", "Exports constants ", len(consts))+nameList(declNames(consts))+".")
	}
	return out
}

func operations(t *decl.Decl) []string {
	var ops []string
	for _, m := range t.PublicMembers() {
		if m.Kind == decl.KindFunction {
			ops = append(ops, m.Name)
		}
	}
	return ops
}

func declNames(decls []*decl.Decl) []string {
	out := make([]string, 0, len(decls))
	for _, d := range decls {
		out = append(out, d.Name)
	}
	return out
}

func plural(one, many string, n int) string {
	if n == 1 {
		return one
	}
	return many
}

// nameList: "`a`, `b` and 3 more".
func nameList(names []string) string {
	shown := names
	if len(shown) > listLimit {
		shown = shown[:listLimit]
	}
	quoted := make([]string, len(shown))
	for i, n := range shown {
		quoted[i] = "`" + n + "`"
	}
	s := strings.Join(quoted, ", ")
	if rest := len(names) - len(shown); rest > 0 {
		s += fmt.Sprintf(" and %d more", rest)
	}
	return s
}

// firstSentence returns the first sentence of a doc comment, ending with '.'.
func firstSentence(doc string) string {
	doc = strings.Join(strings.Fields(doc), " ")
	if doc == "" {
		return ""
	}
	if i := strings.Index(doc, ". "); i >= 0 {
		doc = doc[:i+1]
	}
	if !strings.HasSuffix(doc, ".") {
		doc += "."
	}
	return doc
}
