package card

import (
	"fmt"
	"io"
	"strings"

	"cardgen/internal/differ"
)

// RenderOptions tune the markdown output.
type RenderOptions struct {
	// Signatures includes old/new signature blocks for each change.
	Signatures bool
}

// DefaultRenderOptions are used by the CLI.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{Signatures: true}
}

// Render writes the markdown form of c. The output depends only on the card.
func Render(w io.Writer, c *Card, opts RenderOptions) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", c.Path)
	sb.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Versions | %s → %s |\n", c.OldTag, c.NewTag)
	fmt.Fprintf(&sb, "| Presence | %s |\n", c.Presence())
	fmt.Fprintf(&sb, "| Status | %s |\n", c.Outcome)
	fmt.Fprintf(&sb, "| Categories | %s |\n\n", categoryText(c.Categories()))

	sb.WriteString("## Concept\n\n")
	sb.WriteString(c.Summary)
	sb.WriteString("\n\n")

	sb.WriteString("## Changes\n\n")
	switch {
	case c.Outcome == Degraded || c.Outcome == Skipped:
		sb.WriteString(notAnalyzed)
		if len(c.Problems) > 0 {
			sb.WriteString(" See Problems.")
		}
		sb.WriteString("\n\n")
	case len(c.Changes) == 0:
		sb.WriteString(noImpact + "\n\n")
	}
	for _, ch := range c.Changes {
		fmt.Fprintf(&sb, "### `%s` (%s %s)\n\n", ch.Name, ch.Status, ch.Kind)
		fmt.Fprintf(&sb, "- Categories: %s\n", categoryText(ch.Categories))
		fmt.Fprintf(&sb, "- Confidence: %s\n", ch.Confidence)
		fmt.Fprintf(&sb, "- Rationale: %s\n\n", ch.Rationale)
		if opts.Signatures && (ch.OldSignature != "" || ch.NewSignature != "") {
			sb.WriteString("```zig\n")
			if ch.OldSignature != "" {
				fmt.Fprintf(&sb, "// %s\n%s\n", c.OldTag, ch.OldSignature)
			}
			if ch.NewSignature != "" {
				fmt.Fprintf(&sb, "// %s\n%s\n", c.NewTag, ch.NewSignature)
			}
			sb.WriteString("```\n\n")
		}
	}

	sb.WriteString("## Usage\n\n```zig\n")
	sb.WriteString(c.Snippet)
	sb.WriteString("\n```\n\n")

	sb.WriteString("## Dependencies\n\n")
	if len(c.Deps) == 0 {
		sb.WriteString("None.\n")
	}
	for _, d := range c.Deps {
		fmt.Fprintf(&sb, "- `%s`\n", d)
	}

	if len(c.Problems) > 0 {
		sb.WriteString("\n## Problems\n\n")
		for _, p := range c.Problems {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func categoryText(cats []differ.Category) string {
	if len(cats) == 0 {
		return "none"
	}
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
