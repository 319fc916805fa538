package differ

import (
	"slices"
	"strings"

	"cardgen/internal/decl"
)

// typePrefix: токены, которые не меняют «имя» типа: указатели, optional, const.
var typePrefix = map[string]bool{
	"*": true, "**": true, "?": true, "const": true, "volatile": true, "allowzero": true,
}

// typePath extracts the dotted name of a type expression:
// "?*const std.Io.Writer" → "std.Io.Writer", "GenericWriter(File, E, f)" → "GenericWriter".
func typePath(toks []string) string {
	var parts []string
	for i := skipTypePrefix(toks); i < len(toks) && isIdentLike(toks[i]); i += 2 {
		parts = append(parts, toks[i])
		if i+1 >= len(toks) || toks[i+1] != "." {
			break
		}
	}
	return strings.Join(parts, ".")
}

func skipTypePrefix(toks []string) int {
	i := 0
	for i < len(toks) {
		switch {
		case typePrefix[toks[i]]:
			i++
		case toks[i] == "[":
			for i < len(toks) && toks[i] != "]" {
				i++
			}
			i++
		default:
			return i
		}
	}
	return i
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// matchesPath: "std.Io.Writer" подходит под "Io.Writer", но "MyIo.Writer": нет.
func matchesPath(path, pattern string) bool {
	return path == pattern || strings.HasSuffix(path, "."+pattern)
}

func isIdentLike(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '@' && strings.HasPrefix(s, `@"`) {
		return true
	}
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// splitErrorUnion делит тип результата по '!' верхнего уровня.
// ok=false, если тип не является error union.
func splitErrorUnion(ret []string) (set, payload []string, ok bool) {
	depth := 0
	for i, t := range ret {
		switch t {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case "!":
			if depth == 0 {
				return ret[:i], ret[i+1:], true
			}
		}
	}
	return nil, ret, false
}

// errorInfo описывает обработку ошибок результата функции.
type errorInfo struct {
	fallible bool
	set      string   // текст error set, "" для выводимого (!T)
	members  []string // отсортированы; nil, если состав неизвестен
	inline   bool     // error{...} прямо в сигнатуре
}

func resolveErrors(ret []string, file *decl.File) errorInfo {
	set, _, ok := splitErrorUnion(ret)
	if !ok {
		return errorInfo{}
	}
	info := errorInfo{fallible: true, set: decl.Join(set), inline: len(set) >= 2 && set[0] == "error" && set[1] == "{"}
	info.members = resolveErrorSet(set, file)
	return info
}

// resolveErrorSet returns the members of an inline error{...} set or of a
// named set declared in the same file.
func resolveErrorSet(set []string, file *decl.File) []string {
	switch {
	case len(set) >= 2 && set[0] == "error" && set[1] == "{":
		var names []string
		for _, t := range set[2:] {
			if t == "}" {
				break
			}
			if isIdentLike(t) {
				names = append(names, t)
			}
		}
		return sortedSet(names)
	case len(set) == 1 && file != nil:
		if d := file.Lookup(set[0]); d != nil && d.Container == "error" {
			return sortedSet(d.ErrorSet)
		}
	}
	return nil
}

func sortedSet(items []string) []string {
	out := slices.Clone(items)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []string{}
	}
	return out
}

// setDelta renders "+a -b" between two sorted sets.
func setDelta(old, new []string) string {
	var parts []string
	for _, n := range new {
		if !slices.Contains(old, n) {
			parts = append(parts, "+"+n)
		}
	}
	for _, o := range old {
		if !slices.Contains(new, o) {
			parts = append(parts, "-"+o)
		}
	}
	return strings.Join(parts, " ")
}
