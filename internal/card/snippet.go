package card

import (
	"slices"
	"strings"

	"cardgen/internal/decl"
)

const (
	noAPISnippet    = "// no public API"
	degradedSnippet = "// analysis failed: no usage example"
	skippedSnippet  = "// not a source file: no usage example"
	// memberCalls: сколько методов показываем после конструктора
	memberCalls = 2
)

// factoryOrder задаёт предпочтение конструкторов в примере.
var factoryOrder = []string{"init", "initCapacity", "create", "open", "new"}

// snippet returns a minimal call sequence for the most prominent public
// declaration: the type with most members, then the first function, then
// the first const.
func snippet(f *decl.File, outcome Outcome) string {
	switch {
	case outcome == Degraded:
		return degradedSnippet
	case outcome == Skipped:
		return skippedSnippet
	case f == nil:
		return noAPISnippet
	}
	d := prominent(f.Public())
	if d == nil {
		return noAPISnippet
	}
	switch d.Kind {
	case decl.KindType:
		return typeSnippet(d)
	case decl.KindFunction:
		return callLine("", d.Name, d) + ";"
	}
	return "_ = " + d.Name + ";"
}

func prominent(pub []*decl.Decl) *decl.Decl {
	var best, firstFn, firstConst *decl.Decl
	for _, d := range pub {
		switch d.Kind {
		case decl.KindType:
			if best == nil || len(d.PublicMembers()) > len(best.PublicMembers()) {
				best = d
			}
		case decl.KindFunction:
			if firstFn == nil {
				firstFn = d
			}
		default:
			if firstConst == nil {
				firstConst = d
			}
		}
	}
	switch {
	case best != nil:
		return best
	case firstFn != nil:
		return firstFn
	}
	return firstConst
}

func typeSnippet(t *decl.Decl) string {
	v := varName(t.Name)
	switch t.Container {
	case "error":
		if len(t.ErrorSet) > 0 {
			return "return error." + t.ErrorSet[0] + ";"
		}
		return "const err: " + t.Name + " = undefined;"
	case "enum":
		if len(t.Fields) > 0 {
			return "const " + v + ": " + t.Name + " = ." + t.Fields[0].Name + ";"
		}
	case "struct", "union", "opaque":
	default:
		return "const " + v + ": " + t.Name + " = undefined;"
	}

	var lines []string
	if factory := pickFactory(t); factory != nil {
		lines = append(lines, "var "+v+" = "+callLine(t.Name+".", factory.Name, factory)+";")
		if deinit := t.Member("deinit"); deinit != nil && deinit.IsPublic() && deinit.Kind == decl.KindFunction {
			lines = append(lines, "defer "+v+".deinit("+argList(deinit, true)+");")
		}
	} else {
		lines = append(lines, "var "+v+": "+t.Name+" = "+literal(t)+";")
	}

	calls := 0
	for _, m := range t.PublicMembers() {
		if calls == memberCalls {
			break
		}
		if m.Kind != decl.KindFunction || !isMethod(m, t.Name) || m.Name == "deinit" || slices.Contains(factoryOrder, m.Name) {
			continue
		}
		lines = append(lines, callLine(v+".", m.Name, m)+";")
		calls++
	}
	return strings.Join(lines, "\n")
}

func pickFactory(t *decl.Decl) *decl.Decl {
	for _, name := range factoryOrder {
		if m := t.Member(name); m != nil && m.IsPublic() && m.Kind == decl.KindFunction {
			return m
		}
	}
	return nil
}

func literal(t *decl.Decl) string {
	if len(t.Fields) == 0 || t.Container != "struct" {
		return ".{}"
	}
	var parts []string
	for _, f := range t.Fields {
		if len(parts) == 4 {
			break
		}
		parts = append(parts, "."+f.Name+" = undefined")
	}
	return ".{ " + strings.Join(parts, ", ") + " }"
}

// isMethod: первый параметр: self или значение/указатель на сам тип.
func isMethod(fn *decl.Decl, typeName string) bool {
	if len(fn.Params) == 0 {
		return false
	}
	p := fn.Params[0]
	if p.Name == "self" {
		return true
	}
	for _, t := range p.Type {
		if t == typeName || t == "Self" || t == "@This" {
			return true
		}
	}
	return false
}

// callLine: "try v.append(gpa, item)"; свободная функция с результатом
// получает `const result =`.
func callLine(recv, name string, fn *decl.Decl) string {
	method := recv != "" && !isTypeRecv(recv)
	call := recv + name + "(" + argList(fn, method) + ")"
	ret := decl.Join(fn.Return)
	fallible := strings.Contains(ret, "!")
	if fallible {
		call = "try " + call
	}
	payload := ret
	if i := strings.LastIndex(ret, "!"); i >= 0 {
		payload = ret[i+1:]
	}
	if recv == "" && payload != "void" && payload != "" && payload != "noreturn" {
		return "const result = " + call
	}
	return call
}

// isTypeRecv: получатель "Name." (вызов через тип) начинается с заглавной.
func isTypeRecv(recv string) bool {
	return recv != "" && recv[0] >= 'A' && recv[0] <= 'Z'
}

// argList перечисляет имена параметров; для методов первый (self) пропускается.
func argList(fn *decl.Decl, method bool) string {
	params := fn.Params
	if method && len(params) > 0 {
		params = params[1:]
	}
	var args []string
	for _, p := range params {
		switch {
		case len(p.Type) == 1 && p.Type[0] == "...":
			continue
		case p.Name == "" || p.Name == "_":
			args = append(args, "undefined")
		default:
			args = append(args, p.Name)
		}
	}
	return strings.Join(args, ", ")
}

func varName(typeName string) string {
	if typeName == "" {
		return "value"
	}
	name := strings.ToLower(typeName[:1]) + typeName[1:]
	if name == typeName {
		return "value"
	}
	return name
}
