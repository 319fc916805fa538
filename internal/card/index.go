package card

import (
	"fmt"
	"io"
	"strings"

	"cardgen/internal/differ"
)

// RenderIndex writes INDEX.md for cards, which must already carry their
// corpus indices and be in index order.
func RenderIndex(w io.Writer, cards []*Card) error {
	var sb strings.Builder

	sb.WriteString("# Migration cards")
	if len(cards) > 0 {
		fmt.Fprintf(&sb, ": %s → %s", cards[0].OldTag, cards[0].NewTag)
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%d files.\n\n", len(cards))

	sb.WriteString("| # | File | Presence | Status | Categories |\n|---|---|---|---|---|\n")
	for _, c := range cards {
		fmt.Fprintf(&sb, "| %04d | [%s](%s) | %s | %s | %s |\n",
			c.Index, c.Path, c.FileName(), c.Presence(), c.Outcome, categoryText(c.Categories()))
	}

	sb.WriteString("\n## By category\n")
	for _, cat := range differ.Categories() {
		var tagged []*Card
		for _, c := range cards {
			if c.Has(cat) {
				tagged = append(tagged, c)
			}
		}
		if len(tagged) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n### %s (%d)\n\n", cat, len(tagged))
		for _, c := range tagged {
			fmt.Fprintf(&sb, "- [%04d %s](%s)\n", c.Index, c.Path, c.FileName())
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
