package differ

import (
	"fmt"
	"slices"
	"strings"

	"cardgen/internal/decl"
)

// side: декларация вместе с файлом, в котором ищутся именованные error set.
type side struct {
	d    *decl.Decl
	file *decl.File
}

// classifier накапливает категории и причины в порядке приоритета правил.
type classifier struct {
	rules      Rules
	categories []Category
	reasons    []string
}

func (c *classifier) tag(cat Category, format string, args ...any) {
	if !slices.Contains(c.categories, cat) {
		c.categories = append(c.categories, cat)
	}
	c.reasons = append(c.reasons, fmt.Sprintf(format, args...))
}

// classify сравнивает две стороны одной декларации.
func (r Rules) classify(old, new side) verdict {
	c := &classifier{rules: r}
	c.allocator(old.d, new.d)
	c.io(old.d, new.d)
	c.errors(old, new)
	c.construction(old.d, new.d)

	if len(c.categories) > 0 {
		slices.SortFunc(c.categories, func(a, b Category) int {
			return slices.Index(Categories(), a) - slices.Index(Categories(), b)
		})
		return verdict{
			Status:     StatusChanged,
			Categories: c.categories,
			Confidence: High,
			Rationale:  strings.Join(c.reasons, "; "),
		}
	}
	if slices.Equal(old.d.Signature, new.d.Signature) {
		return verdict{
			Status:     StatusUnchanged,
			Categories: []Category{NoChange},
			Confidence: High,
			Rationale:  "signature unchanged",
		}
	}
	return verdict{
		Status:     StatusChanged,
		Categories: []Category{APIStructureChanged},
		Confidence: Low,
		Rationale:  "signature tokens differ; no specific rule matched",
	}
}

// ===== allocator =====

func (r Rules) allocatorParam(d *decl.Decl) (decl.Param, bool) {
	for _, p := range d.Params {
		if r.isAllocator(p.Type) {
			return p, true
		}
	}
	return decl.Param{}, false
}

func (r Rules) allocatorField(d *decl.Decl) (decl.Field, bool) {
	for _, f := range d.Fields {
		if r.isAllocator(f.Type) {
			return f, true
		}
	}
	return decl.Field{}, false
}

func (c *classifier) allocator(old, new *decl.Decl) {
	c.allocatorParams("", old, new)
	if old.Kind != decl.KindType || new.Kind != decl.KindType {
		return
	}
	of, oldHas := c.rules.allocatorField(old)
	nf, newHas := c.rules.allocatorField(new)
	switch {
	case newHas && !oldHas:
		c.tag(AllocatorAdded, "allocator field `%s` added", nf.Name)
	case oldHas && !newHas:
		c.tag(AllocatorRemoved, "allocator field `%s` removed", of.Name)
	}
	for _, om := range old.PublicMembers() {
		nm := new.Member(om.Name)
		if nm == nil || !nm.IsPublic() || om.Kind != decl.KindFunction || nm.Kind != decl.KindFunction {
			continue
		}
		c.allocatorParams(om.Name, om, nm)
	}
}

func (c *classifier) allocatorParams(member string, old, new *decl.Decl) {
	if old.Kind != decl.KindFunction || new.Kind != decl.KindFunction {
		return
	}
	op, oldHas := c.rules.allocatorParam(old)
	np, newHas := c.rules.allocatorParam(new)
	switch {
	case newHas && !oldHas:
		c.tag(AllocatorAdded, "%sallocator parameter `%s` added", memberPrefix(member), paramText(np))
	case oldHas && !newHas:
		c.tag(AllocatorRemoved, "%sallocator parameter `%s` removed", memberPrefix(member), paramText(op))
	}
}

func memberPrefix(member string) string {
	if member == "" {
		return ""
	}
	return "`" + member + "`: "
}

func paramText(p decl.Param) string {
	typ := decl.Join(p.Type)
	if p.Name == "" {
		return typ
	}
	return p.Name + ": " + typ
}

// ===== I/O =====

// ioShape classifies one typed slot: interface handle, concrete stream type
// or anytype parameter with an I/O name.
func (r Rules) ioShape(name string, typ []string) (string, bool) {
	if len(typ) == 1 && typ[0] == "anytype" {
		if name != "" && r.isIOParamName(name) {
			return "generic(anytype)", true
		}
		return "", false
	}
	path := typePath(typ)
	if path == "" {
		return "", false
	}
	for _, pat := range r.IOInterfaceTypes {
		if matchesPath(path, pat) {
			return "interface(" + pat + ")", true
		}
	}
	if seg := lastSegment(path); slices.Contains(r.IOConcreteTypes, seg) {
		return "concrete(" + seg + ")", true
	}
	return "", false
}

// ioRefs lists the I/O shapes referenced by a declaration, sorted.
func (r Rules) ioRefs(d *decl.Decl) []string {
	var refs []string
	add := func(name string, typ []string) {
		if s, ok := r.ioShape(name, typ); ok {
			refs = append(refs, s)
		}
	}
	fnRefs := func(fn *decl.Decl) {
		for _, p := range fn.Params {
			add(p.Name, p.Type)
		}
		_, payload, _ := splitErrorUnion(fn.Return)
		add("", payload)
	}
	switch d.Kind {
	case decl.KindFunction:
		fnRefs(d)
	case decl.KindType:
		for _, f := range d.Fields {
			add(f.Name, f.Type)
		}
		for _, m := range d.PublicMembers() {
			if m.Kind == decl.KindFunction {
				fnRefs(m)
			}
		}
	}
	return sortedSet(refs)
}

func (c *classifier) io(old, new *decl.Decl) {
	oldRefs, newRefs := c.rules.ioRefs(old), c.rules.ioRefs(new)
	if slices.Equal(oldRefs, newRefs) {
		return
	}
	switch {
	case len(oldRefs) == 0:
		c.tag(IOInterfaceChanged, "now references I/O types %s", strings.Join(newRefs, ", "))
	case len(newRefs) == 0:
		c.tag(IOInterfaceChanged, "no longer references I/O types %s", strings.Join(oldRefs, ", "))
	default:
		c.tag(IOInterfaceChanged, "I/O references changed: %s", setDelta(oldRefs, newRefs))
	}
}

// ===== errors =====

func (c *classifier) errors(old, new side) {
	switch {
	case old.d.Kind == decl.KindFunction && new.d.Kind == decl.KindFunction:
		c.fnErrors("", old.d.Return, new.d.Return, old.file, new.file)
	case old.d.Container == "error" && new.d.Container == "error":
		om, nm := sortedSet(old.d.ErrorSet), sortedSet(new.d.ErrorSet)
		if !slices.Equal(om, nm) {
			c.tag(ErrorHandlingChanged, "error set members changed: %s", setDelta(om, nm))
		}
	case old.d.Kind == decl.KindType && new.d.Kind == decl.KindType:
		for _, om := range old.d.PublicMembers() {
			nm := new.d.Member(om.Name)
			if nm == nil || !nm.IsPublic() || om.Kind != decl.KindFunction || nm.Kind != decl.KindFunction {
				continue
			}
			c.fnErrors(om.Name, om.Return, nm.Return, old.file, new.file)
		}
	}
}

func (c *classifier) fnErrors(member string, oldRet, newRet []string, oldFile, newFile *decl.File) {
	oi, ni := resolveErrors(oldRet, oldFile), resolveErrors(newRet, newFile)
	prefix := memberPrefix(member)
	switch {
	case !oi.fallible && ni.fallible:
		c.tag(ErrorHandlingChanged, "%sreturn type became fallible (%s)", prefix, decl.Join(newRet))
	case oi.fallible && !ni.fallible:
		c.tag(ErrorHandlingChanged, "%sreturn type is no longer fallible", prefix)
	case !oi.fallible:
	case oi.inline && ni.inline:
		// порядок членов inline-набора не важен
		if !slices.Equal(oi.members, ni.members) {
			c.tag(ErrorHandlingChanged, "%sinline error set members changed: %s", prefix, setDelta(oi.members, ni.members))
		}
	case oi.set != ni.set:
		c.tag(ErrorHandlingChanged, "%serror set changed from `%s` to `%s`", prefix, errorSetText(oi.set), errorSetText(ni.set))
	case oi.members != nil && ni.members != nil && !slices.Equal(oi.members, ni.members):
		c.tag(ErrorHandlingChanged, "%serror set `%s` members changed: %s", prefix, errorSetText(oi.set), setDelta(oi.members, ni.members))
	}
}

func errorSetText(set string) string {
	if set == "" {
		return "inferred"
	}
	return set
}

// ===== construction =====

func (r Rules) construction(d *decl.Decl) (string, []string) {
	if d.Kind != decl.KindType {
		return "none", nil
	}
	switch d.Container {
	case "struct", "union", "opaque":
	default:
		return "none", nil
	}
	var factories []string
	for _, m := range d.PublicMembers() {
		if m.Kind == decl.KindFunction && r.isFactory(m.Name) {
			factories = append(factories, m.Name)
		}
	}
	switch {
	case len(factories) > 0:
		return "factory", sortedSet(factories)
	case d.Container == "opaque":
		return "none", nil
	}
	return "literal", nil
}

func (c *classifier) construction(old, new *decl.Decl) {
	if old.Kind != new.Kind {
		c.tag(APIStructureChanged, "kind changed from %s to %s", old.Kind, new.Kind)
		return
	}
	op, of := c.rules.construction(old)
	np, nf := c.rules.construction(new)
	switch {
	case op != np:
		c.tag(APIStructureChanged, "construction changed from %s to %s", constructionText(op, of), constructionText(np, nf))
	case op == "factory" && !slices.Equal(of, nf):
		c.tag(APIStructureChanged, "factory entry points changed: %s", setDelta(of, nf))
	}
}

func constructionText(pattern string, factories []string) string {
	switch pattern {
	case "factory":
		return "factory `" + strings.Join(factories, "`, `") + "`"
	case "literal":
		return "field initialization"
	}
	return "no construction"
}
