package decl

import (
	"strings"

	"cardgen/internal/source"
)

// Kind is the coarse category of a declaration.
type Kind uint8

const (
	KindConst Kind = iota
	KindFunction
	KindType
)

var kindNames = [...]string{
	KindConst:    "const",
	KindFunction: "function",
	KindType:     "type",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

type Visibility uint8

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "pub"
	}
	return "private"
}

// Param: параметр функции; Type хранит токены типа как есть.
type Param struct {
	Name     string
	Type     []string
	Comptime bool
}

// Field is a container field or enum tag (Type is empty for tags).
type Field struct {
	Name string
	Type []string
}

// Decl is a single declaration extracted from one version of a file.
type Decl struct {
	Name       string
	Kind       Kind
	Visibility Visibility
	Mutable    bool // объявлено через var

	// Container is the container keyword for types ("struct", "enum",
	// "union", "opaque", "error", "fn"); empty for aliases and non-types.
	Container string
	ErrorSet  []string // члены inline error{...}

	Params []Param
	Return []string

	Fields  []Field
	Members []*Decl

	Import    string   // цель @import, если const связывает импорт
	Signature []string // токены сигнатуры без тела

	Doc     string
	Span    source.Span
	File    source.FileID
	Version string
}

func (d *Decl) IsPublic() bool { return d.Visibility == Public }

// SignatureText renders the signature tokens as Zig text.
func (d *Decl) SignatureText() string { return Join(d.Signature) }

// Member returns the member declaration with the given name, or nil.
func (d *Decl) Member(name string) *Decl {
	for _, m := range d.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// PublicMembers returns the pub members in source order.
func (d *Decl) PublicMembers() []*Decl {
	var out []*Decl
	for _, m := range d.Members {
		if m.IsPublic() {
			out = append(out, m)
		}
	}
	return out
}

// File is the result of parsing one source file.
type File struct {
	ID      source.FileID
	Path    string
	Version string

	Doc    string  // //! комментарий файла
	Decls  []*Decl // все top-level декларации в порядке исходника
	Fields []Field // поля файла-структуры

	Imports []string // цели @import, отсортированы, без повторов
	StdRefs []string // std.X пространства имён, отсортированы, без повторов
}

// Public returns the public top-level declarations in source order.
func (f *File) Public() []*Decl {
	var out []*Decl
	for _, d := range f.Decls {
		if d.IsPublic() {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a top-level declaration of any visibility.
func (f *File) Lookup(name string) *Decl {
	for _, d := range f.Decls {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// noSpaceBefore и noSpaceAfter задают склейку токенов в Join.
var (
	noSpaceBefore = map[string]bool{
		",": true, ")": true, "]": true, ".": true, ";": true, ":": true,
		".*": true, ".?": true, "(": true, "}": true,
	}
	noSpaceAfter = map[string]bool{
		"(": true, "[": true, ".": true, "!": true, "*": true, "?": true,
		"&": true, "]": true, "{": true,
	}
)

// Join renders tokens as compact Zig text: "fn f(a: u8) !void".
func Join(toks []string) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && needSpace(toks[i-1], t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t)
	}
	return sb.String()
}

func needSpace(prev, cur string) bool {
	switch {
	case noSpaceAfter[prev]:
		return false
	case cur == "(":
		// fn (...) у типа функции пишется слитно
		return false
	case cur == "{":
		return prev != "error"
	case cur == "!":
		return prev == ")"
	case noSpaceBefore[cur]:
		return false
	}
	return true
}
