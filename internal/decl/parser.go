package decl

import (
	"fmt"
	"slices"

	"cardgen/internal/diag"
	"cardgen/internal/lexer"
	"cardgen/internal/source"
	"cardgen/internal/token"
)

// defaultMaxDiagnostics ограничивает Bag одного файла.
const defaultMaxDiagnostics = 64

type Options struct {
	// Reporter receives every diagnostic in addition to the parser's own bag.
	Reporter       diag.Reporter
	MaxDiagnostics int
}

// parser: состояние разбора одного файла
type parser struct {
	file  *source.File
	toks  []token.Token // без завершающего EOF
	match []int         // индекс парного разделителя, -1 для прочих токенов
	rep   diag.Reporter
}

// Parse extracts the declarations of f. Lexical errors and unbalanced
// delimiters fail with *ParseError; other irregularities are reported as
// warnings and skipped.
func Parse(f *source.File, opts Options) (*File, error) {
	limit := opts.MaxDiagnostics
	if limit <= 0 {
		limit = defaultMaxDiagnostics
	}
	bag := diag.NewBag(limit)
	rep := teeReporter{bag: bag, next: opts.Reporter}

	lx := lexer.New(f, lexer.Options{Reporter: rep})
	all := lx.All()
	if lx.Errors() > 0 {
		return nil, newParseError(f, bag)
	}

	p := &parser{file: f, toks: all[:len(all)-1], rep: rep}
	if !p.balance() {
		return nil, newParseError(f, bag)
	}

	out := &File{
		ID:      f.ID,
		Path:    f.Path,
		Version: f.Version,
		Doc:     all[0].ContainerDoc(),
	}
	out.Decls, out.Fields = p.parseContainer(0, len(p.toks), 0)
	out.Imports, out.StdRefs = p.collectRefs()
	return out, nil
}

// teeReporter складывает диагностики в bag и пробрасывает дальше.
type teeReporter struct {
	bag  *diag.Bag
	next diag.Reporter
}

func (r teeReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.bag.Add(diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

func (p *parser) warn(code diag.Code, i int, format string, args ...any) {
	diag.ReportWarning(p.rep, code, p.spanAt(i), fmt.Sprintf(format, args...)).Emit()
}

func (p *parser) spanAt(i int) source.Span {
	if i < len(p.toks) {
		return p.toks[i].Span
	}
	var end uint32
	if len(p.toks) > 0 {
		end = p.toks[len(p.toks)-1].Span.End
	}
	return source.Span{File: p.file.ID, Start: end, End: end}
}

func (p *parser) kind(i int) token.Kind {
	if i < 0 || i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func (p *parser) text(i int) string {
	if i < 0 || i >= len(p.toks) {
		return ""
	}
	return p.toks[i].Text
}

func (p *parser) texts(lo, hi int) []string {
	if hi <= lo {
		return nil
	}
	out := make([]string, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, p.toks[i].Text)
	}
	return out
}

// balance сопоставляет скобки всего файла и заполняет match.
func (p *parser) balance() bool {
	p.match = make([]int, len(p.toks))
	var stack []int
	for i, tok := range p.toks {
		p.match[i] = -1
		switch {
		case tok.Kind.Opens():
			stack = append(stack, i)
		case tok.Kind.Closes():
			if len(stack) == 0 || p.toks[stack[len(stack)-1]].Kind.Closer() != tok.Kind {
				diag.ReportError(p.rep, diag.SynUnmatchedCloser, tok.Span,
					fmt.Sprintf("unmatched '%s'", tok.Text)).Emit()
				return false
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p.match[open], p.match[i] = i, open
		}
	}
	if len(stack) > 0 {
		open := p.toks[stack[len(stack)-1]]
		diag.ReportError(p.rep, diag.SynUnclosedDelimiter, open.Span,
			fmt.Sprintf("unclosed '%s'", open.Text)).Emit()
		return false
	}
	return true
}

// skipGroup возвращает индекс после группы, открытой в i, или i+1.
func (p *parser) skipGroup(i int) int {
	if i < len(p.toks) && p.match[i] > i {
		return p.match[i] + 1
	}
	return i + 1
}

// scanUntil ищет на нулевой глубине первый токен одного из видов stops.
// Возвращает hi, если такого нет.
func (p *parser) scanUntil(i, hi int, stops ...token.Kind) int {
	for i < hi {
		if slices.Contains(stops, p.toks[i].Kind) {
			return i
		}
		i = p.skipGroup(i)
	}
	return hi
}

// resync пропускает до конца текущего элемента: ';' или блок {...}.
func (p *parser) resync(i, hi int) int {
	for i < hi {
		switch p.toks[i].Kind {
		case token.Semicolon:
			return i + 1
		case token.LBrace:
			return p.match[i] + 1
		}
		i = p.skipGroup(i)
	}
	return hi
}
