package card

import (
	"slices"

	"cardgen/internal/decl"
	"cardgen/internal/differ"
)

// Outcome tells how far the analysis of a file went.
type Outcome uint8

const (
	Analyzed Outcome = iota
	Internal         // ни одной публичной декларации
	Degraded         // ошибка чтения или разбора
	Skipped          // не UTF-8 / бинарный файл
)

var outcomeNames = [...]string{
	Analyzed: "analyzed",
	Internal: "internal",
	Degraded: "degraded",
	Skipped:  "skipped",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Change is one classified declaration difference in rendered form.
type Change struct {
	Name         string
	Kind         string
	Status       differ.Status
	Categories   []differ.Category
	Confidence   differ.Confidence
	Rationale    string
	OldSignature string
	NewSignature string
}

// Card is the migration card of one relative path.
type Card struct {
	Path   string
	OldTag string
	NewTag string
	InOld  bool
	InNew  bool

	Outcome  Outcome
	Summary  string
	Changes  []Change // только изменения с миграционным эффектом
	Snippet  string
	Deps     []string
	Problems []string // причины деградации

	// Index is assigned by the corpus; zero until then.
	Index int
}

// Presence describes on which side the file exists.
func (c *Card) Presence() string {
	switch {
	case c.InOld && c.InNew:
		return "both"
	case c.InNew:
		return "new only"
	case c.InOld:
		return "old only"
	}
	return "none"
}

// Categories returns the categories of all changes in priority order;
// a card without changes is tagged no_change.
func (c *Card) Categories() []differ.Category {
	seen := make(map[differ.Category]bool)
	for _, ch := range c.Changes {
		for _, cat := range ch.Categories {
			seen[cat] = true
		}
	}
	var out []differ.Category
	for _, cat := range differ.Categories() {
		if seen[cat] {
			out = append(out, cat)
		}
	}
	if len(out) == 0 && c.Outcome != Degraded && c.Outcome != Skipped {
		out = []differ.Category{differ.NoChange}
	}
	return out
}

// Has reports whether the card is tagged with cat.
func (c *Card) Has(cat differ.Category) bool {
	return slices.Contains(c.Categories(), cat)
}

// FileName returns the output file name for the card's index.
func (c *Card) FileName() string {
	return FileName(c.Index, c.Path)
}

// Input is everything known about one path after parsing and diffing.
type Input struct {
	Path   string
	OldTag string
	NewTag string
	InOld  bool
	InNew  bool

	Old, New *decl.File // nil, если стороны нет или разбор не удался
	Diffs    []differ.SignatureDiff

	Skipped bool    // файл отброшен как не-исходник
	Errors  []error // причины деградации
}

// Build assembles the card for in. It never fails: analysis problems turn
// into a degraded or skipped card.
func Build(in Input) *Card {
	c := &Card{
		Path:   in.Path,
		OldTag: in.OldTag,
		NewTag: in.NewTag,
		InOld:  in.InOld,
		InNew:  in.InNew,
	}
	for _, err := range in.Errors {
		c.Problems = append(c.Problems, err.Error())
	}

	switch {
	case in.Skipped:
		c.Outcome = Skipped
	case len(in.Errors) > 0:
		c.Outcome = Degraded
	case !hasPublic(in.Old) && !hasPublic(in.New):
		c.Outcome = Internal
	default:
		c.Outcome = Analyzed
	}

	for _, d := range in.Diffs {
		if !d.Impact() {
			continue
		}
		c.Changes = append(c.Changes, changeOf(d))
	}

	primary := in.New
	if primary == nil {
		primary = in.Old
	}
	c.Summary = summarize(c, primary)
	c.Snippet = snippet(primary, c.Outcome)
	c.Deps = dependencies(primary)
	return c
}

func hasPublic(f *decl.File) bool {
	return f != nil && len(f.Public()) > 0
}

func changeOf(d differ.SignatureDiff) Change {
	ch := Change{
		Name:       d.Name,
		Kind:       d.Decl().Kind.String(),
		Status:     d.Status,
		Categories: slices.Clone(d.Categories),
		Confidence: d.Confidence,
		Rationale:  d.Rationale,
	}
	if d.Old != nil {
		ch.OldSignature = signatureLine(d.Old)
	}
	if d.New != nil {
		ch.NewSignature = signatureLine(d.New)
	}
	return ch
}

// signatureLine: сигнатура в одну строку; для контейнеров без тела членов.
func signatureLine(d *decl.Decl) string {
	prefix := ""
	if d.IsPublic() {
		prefix = "pub "
	}
	if d.Kind == decl.KindType && d.Container != "" && d.Container != "error" && d.Container != "fn" {
		return prefix + headerOf(d) + " { ... }"
	}
	return prefix + d.SignatureText()
}

// headerOf: токены сигнатуры до первой '{' контейнера.
func headerOf(d *decl.Decl) string {
	if i := slices.Index(d.Signature, "{"); i >= 0 {
		return decl.Join(d.Signature[:i])
	}
	return d.SignatureText()
}

func dependencies(f *decl.File) []string {
	if f == nil {
		return nil
	}
	deps := append(slices.Clone(f.Imports), f.StdRefs...)
	slices.Sort(deps)
	return slices.Compact(deps)
}
