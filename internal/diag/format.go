package diag

import (
	"fmt"
	"sort"
	"strings"

	"cardgen/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics into a stable, single-line-per-entry
// representation: "<path>:<line>:<col>: <SEV> <CODE>: <msg>".
// Entries are sorted by position so the output is deterministic.
func FormatShort(diags []Diagnostic, fs *source.FileSet) []string {
	if fs == nil || len(diags) == 0 {
		return nil
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		loc, ok := resolveSpan(fs, d.Primary)
		if !ok {
			continue
		}
		rendered = append(rendered, shortDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		})
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	out := make([]string, 0, len(rendered))
	for _, d := range rendered {
		out = append(out, fmt.Sprintf("%s:%d:%d: %s %s: %s", d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message))
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span) (resolvedSpan, bool) {
	if !fs.HasFile(span.File) {
		return resolvedSpan{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := file.Path
	if file.Version != "" {
		path = file.Version + "/" + path
	}
	return resolvedSpan{Path: path, Line: start.Line, Column: start.Col}, true
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
