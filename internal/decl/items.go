package decl

import (
	"cardgen/internal/diag"
	"cardgen/internal/token"
)

// parseContainer разбирает элементы в [lo, hi). depth 0: файл; тела
// контейнеров разбираются только на глубине 0 (один уровень членов).
func (p *parser) parseContainer(lo, hi, depth int) ([]*Decl, []Field) {
	var (
		decls  []*Decl
		fields []Field
		seen   = make(map[string]bool)
	)
	i := lo
	for i < hi {
		start := i
		doc := p.toks[i].DocComment()
		vis := Private
		if p.kind(i) == token.KwPub {
			vis = Public
			i++
		}
		i = p.skipQualifiers(i, hi)
		if i >= hi {
			break
		}

		var d *Decl
		switch p.kind(i) {
		case token.KwFn:
			d, i = p.parseFn(i, hi)
		case token.KwConst, token.KwVar:
			d, i = p.parseVarDecl(i, hi, depth)
		case token.KwTest:
			i = p.skipTest(i, hi)
			continue
		case token.KwComptime:
			if p.kind(i+1) == token.LBrace {
				i = p.skipGroup(i + 1)
				continue
			}
			var f Field
			f, i = p.parseField(i+1, hi)
			fields = append(fields, f)
			continue
		case token.KwUsingnamespace:
			i = p.scanUntil(i, hi, token.Semicolon) + 1
			continue
		case token.Ident:
			var f Field
			f, i = p.parseField(i, hi)
			fields = append(fields, f)
			continue
		case token.Semicolon, token.Comma:
			i++
			continue
		default:
			p.warn(diag.SynUnexpectedToken, i, "unexpected %s at container level", p.kind(i))
			i = p.resync(i+1, hi)
			continue
		}
		if d == nil {
			continue
		}
		if seen[d.Name] {
			p.warn(diag.SynDuplicateDecl, start, "duplicate declaration %q", d.Name)
			continue
		}
		seen[d.Name] = true
		d.Visibility = vis
		d.Doc = doc
		d.Span = p.toks[start].Span.Cover(p.spanAt(max(i-1, start)))
		d.File = p.file.ID
		d.Version = p.file.Version
		decls = append(decls, d)
	}
	return decls, fields
}

// skipQualifiers пропускает export, extern "c", inline, noinline, threadlocal.
func (p *parser) skipQualifiers(i, hi int) int {
	for i < hi {
		switch p.kind(i) {
		case token.KwExport, token.KwInline, token.KwNoinline, token.KwThreadlocal:
			i++
		case token.KwExtern:
			i++
			if p.kind(i) == token.StringLit {
				i++
			}
		default:
			return i
		}
	}
	return i
}

func (p *parser) skipTest(i, hi int) int {
	i++
	if k := p.kind(i); k == token.StringLit || k == token.Ident {
		i++
	}
	if p.kind(i) == token.LBrace {
		return p.skipGroup(i)
	}
	return p.resync(i, hi)
}

// fnModifiers стоят между ')' и типом результата.
var fnModifiers = map[token.Kind]bool{
	token.KwAlign:       true,
	token.KwAddrspace:   true,
	token.KwLinksection: true,
	token.KwCallconv:    true,
}

func (p *parser) parseFn(i, hi int) (*Decl, int) {
	fnIdx := i
	i++
	if p.kind(i) != token.Ident {
		p.warn(diag.SynExpectIdentifier, i, "expected function name, got %s", p.kind(i))
		return nil, p.resync(i, hi)
	}
	d := &Decl{Name: p.text(i), Kind: KindFunction}
	i++
	if p.kind(i) != token.LParen {
		p.warn(diag.SynUnexpectedToken, i, "expected '(' after function name %q", d.Name)
		return nil, p.resync(i, hi)
	}
	d.Params = p.parseParams(i+1, p.match[i])
	i = p.match[i] + 1

	for fnModifiers[p.kind(i)] && p.kind(i+1) == token.LParen {
		i = p.skipGroup(i + 1)
	}
	retStart := i
	for i < hi {
		k := p.kind(i)
		if k == token.Semicolon || k == token.LBrace && !p.isTypeBrace(i) {
			break
		}
		i = p.skipGroup(i)
	}
	d.Return = p.texts(retStart, i)
	d.Signature = p.texts(fnIdx, i)

	switch p.kind(i) {
	case token.LBrace:
		i = p.skipGroup(i)
	case token.Semicolon:
		i++
	default:
		p.warn(diag.SynExpectSemicolon, i, "function %q has neither body nor ';'", d.Name)
	}
	return d, i
}

// isTypeBrace: '{' принадлежит типу (error{...}, struct {...}, enum(u8) {...}),
// а не телу функции.
func (p *parser) isTypeBrace(i int) bool {
	prev := i - 1
	switch p.kind(prev) {
	case token.KwError, token.KwStruct, token.KwEnum, token.KwUnion, token.KwOpaque:
		return true
	case token.RParen:
		switch p.kind(p.match[prev] - 1) {
		case token.KwStruct, token.KwEnum, token.KwUnion:
			return true
		}
	}
	return false
}

func (p *parser) parseParams(lo, hi int) []Param {
	var params []Param
	for lo < hi {
		end := p.scanUntil(lo, hi, token.Comma)
		if end > lo {
			params = append(params, p.param(lo, end))
		}
		lo = end + 1
	}
	return params
}

func (p *parser) param(lo, hi int) Param {
	var prm Param
	if p.kind(lo) == token.KwComptime {
		prm.Comptime = true
		lo++
	}
	if p.kind(lo) == token.KwNoalias {
		lo++
	}
	if lo+1 < hi && p.kind(lo) == token.Ident && p.kind(lo+1) == token.Colon {
		prm.Name = p.text(lo)
		lo += 2
	}
	prm.Type = p.texts(lo, hi)
	return prm
}

func (p *parser) parseVarDecl(i, hi, depth int) (*Decl, int) {
	kwIdx := i
	mutable := p.kind(i) == token.KwVar
	i++
	if p.kind(i) != token.Ident {
		p.warn(diag.SynExpectIdentifier, i, "expected name after '%s'", p.text(kwIdx))
		return nil, p.resync(i, hi)
	}
	d := &Decl{Name: p.text(i), Kind: KindConst, Mutable: mutable}
	i++
	if p.kind(i) == token.Colon {
		i = p.scanUntil(i+1, hi, token.Assign, token.Semicolon)
	}

	switch p.kind(i) {
	case token.Semicolon:
		// extern var x: T;: без инициализатора
		d.Signature = p.texts(kwIdx, i)
		return d, i + 1
	case token.Assign:
	default:
		p.warn(diag.SynUnexpectedToken, i, "expected '=' in declaration of %q", d.Name)
		return nil, p.resync(i, hi)
	}

	initLo := i + 1
	end := p.scanUntil(initLo, hi, token.Semicolon)
	next := end + 1
	if end >= hi {
		p.warn(diag.SynExpectSemicolon, end, "missing ';' after declaration of %q", d.Name)
		next = hi
	}

	if !p.classifyContainer(d, kwIdx, initLo, end, depth) {
		d.Signature = p.texts(kwIdx, end)
		p.classifyValue(d, initLo, end)
	}
	return d, next
}

// classifyContainer распознаёт `= [extern|packed] struct|enum|union|opaque {...}`,
// `= error{...}` и `= fn (...) T`.
func (p *parser) classifyContainer(d *Decl, kwIdx, lo, hi, depth int) bool {
	j := lo
	for k := p.kind(j); k == token.KwExtern || k == token.KwPacked; k = p.kind(j) {
		j++
	}
	switch p.kind(j) {
	case token.KwStruct, token.KwEnum, token.KwUnion, token.KwOpaque:
		body := j + 1
		if p.kind(body) == token.LParen {
			body = p.skipGroup(body)
		}
		if body >= hi || p.kind(body) != token.LBrace {
			return false
		}
		d.Kind = KindType
		d.Container = p.text(j)
		if depth > 0 {
			d.Signature = p.texts(kwIdx, hi)
			return true
		}
		d.Members, d.Fields = p.parseContainer(body+1, p.match[body], depth+1)
		d.Signature = containerSignature(p.texts(kwIdx, body), d)
		return true

	case token.KwError:
		if p.kind(j+1) != token.LBrace {
			return false
		}
		d.Kind = KindType
		d.Container = "error"
		d.ErrorSet = p.errorSetMembers(lo, hi)
		d.Signature = p.texts(kwIdx, hi)
		return true

	case token.KwFn:
		if p.kind(j+1) != token.LParen {
			return false
		}
		d.Kind = KindType
		d.Container = "fn"
		d.Signature = p.texts(kwIdx, hi)
		return true
	}
	return false
}

// containerSignature: заголовок, поля и сигнатуры pub членов.
// Приватные члены и тела функций на сравнение не влияют.
func containerSignature(header []string, d *Decl) []string {
	sig := append(header, "{")
	for _, f := range d.Fields {
		sig = append(sig, f.Name)
		if len(f.Type) > 0 {
			sig = append(sig, ":")
			sig = append(sig, f.Type...)
		}
		sig = append(sig, ",")
	}
	for _, m := range d.PublicMembers() {
		sig = append(sig, "pub")
		sig = append(sig, m.Signature...)
		sig = append(sig, ";")
	}
	return append(sig, "}")
}

// errorSetMembers собирает имена из всех error{...} в [lo, hi), с учётом `||`.
func (p *parser) errorSetMembers(lo, hi int) []string {
	var names []string
	seen := make(map[string]bool)
	for i := lo; i < hi; i = p.skipGroup(i) {
		if p.kind(i) != token.KwError || p.kind(i+1) != token.LBrace {
			continue
		}
		open := i + 1
		for k := open + 1; k < p.match[open]; k++ {
			if p.kind(k) == token.Ident && !seen[p.text(k)] {
				seen[p.text(k)] = true
				names = append(names, p.text(k))
			}
		}
		i = open
	}
	return names
}

// classifyValue: TitleCase имя, связанное с вызовом или путём,: это тип
// (ArrayList(u8), std.mem.Allocator, @This()).
func (p *parser) classifyValue(d *Decl, lo, hi int) {
	if p.kind(lo) == token.Builtin && p.text(lo) == "@import" &&
		p.kind(lo+1) == token.LParen && p.kind(lo+2) == token.StringLit {
		d.Import = unquote(p.text(lo + 2))
	}
	if isTitleCase(d.Name) && p.isCallOrPath(lo, hi) {
		d.Kind = KindType
	}
}

func (p *parser) isCallOrPath(lo, hi int) bool {
	if k := p.kind(lo); lo >= hi || k != token.Ident && k != token.Builtin {
		return false
	}
	for i := lo; i < hi; {
		switch p.kind(i) {
		case token.Ident, token.Builtin, token.Dot:
			i++
		case token.LParen:
			i = p.skipGroup(i)
		default:
			return false
		}
	}
	return true
}

func isTitleCase(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

// parseField: `name: T = v,` или тег перечисления `name = v,` / `name,`.
func (p *parser) parseField(i, hi int) (Field, int) {
	f := Field{Name: p.text(i)}
	i++
	if p.kind(i) == token.Colon {
		end := p.scanUntil(i+1, hi, token.Assign, token.Comma)
		f.Type = p.texts(i+1, end)
		i = end
	}
	end := p.scanUntil(i, hi, token.Comma)
	if end >= hi {
		return f, hi
	}
	return f, end + 1
}
