// Package diagfmt renders diagnostics and tokens for the command line.
package diagfmt

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cardgen/internal/diag"
	"cardgen/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := printer{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type printer struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p printer) paint(attrs []color.Attribute, s string) string {
	if !p.opts.Color {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func severityAttrs(sev diag.Severity) []color.Attribute {
	switch sev {
	case diag.SevError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diag.SevWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgCyan}
	}
}

func (p printer) location(sp source.Span) (*source.File, source.LineCol, source.LineCol, string, bool) {
	if !p.fs.HasFile(sp.File) {
		return nil, source.LineCol{}, source.LineCol{}, "", false
	}
	f := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	name := f.Path
	switch p.opts.PathMode {
	case PathModeBasename:
		name = path.Base(f.Path)
	case PathModeAuto:
		if f.Version != "" {
			name = f.Version + "/" + f.Path
		}
	}
	return f, start, end, name, true
}

func (p printer) diagnostic(d diag.Diagnostic) {
	f, start, end, name, ok := p.location(d.Primary)
	sev := p.paint(severityAttrs(d.Severity), d.Severity.String())
	if !ok {
		fmt.Fprintf(p.w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		return
	}
	fmt.Fprintf(p.w, "%s:%s: %s %s: %s\n", name, start, sev, d.Code.ID(), d.Message)
	p.snippet(f, start, end, severityAttrs(d.Severity))

	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		_, ns, _, nname, ok := p.location(n.Span)
		if !ok {
			fmt.Fprintf(p.w, "  %s %s\n", p.paint([]color.Attribute{color.Bold}, "note:"), n.Msg)
			continue
		}
		fmt.Fprintf(p.w, "  %s %s:%s: %s\n", p.paint([]color.Attribute{color.Bold}, "note:"), nname, ns, n.Msg)
	}
}

// snippet prints context lines around start.Line and underlines the span
// on its first line.
func (p printer) snippet(f *source.File, start, end source.LineCol, attrs []color.Attribute) {
	ctx := max(int(p.opts.Context), 0)
	first := max(int(start.Line)-ctx, 1)
	last := int(start.Line) + ctx
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text, ok := lineText(f, ln)
		if !ok {
			break
		}
		fmt.Fprintf(p.w, " %*d | %s\n", gutter, ln, expandTabs(text))
		if ln != int(start.Line) {
			continue
		}
		prefix := text[:min(int(start.Col)-1, len(text))]
		pad := runewidth.StringWidth(expandTabs(prefix))
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			stop := min(int(end.Col)-1, len(text))
			width = max(runewidth.StringWidth(text[len(prefix):stop]), 1)
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(p.w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", pad), p.paint(attrs, marker))
	}
}

func lineText(f *source.File, ln int) (string, bool) {
	if ln < 1 || ln > len(f.LineIdx)+1 {
		return "", false
	}
	text := f.GetLine(uint32(ln)) //nolint:gosec
	if ln == len(f.LineIdx)+1 && text == "" {
		// хвост после последнего \n
		return "", false
	}
	return text, true
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
