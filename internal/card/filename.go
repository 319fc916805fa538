package card

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// IndexFileName is the name of the corpus index written next to the cards.
const IndexFileName = "INDEX.md"

// FileName returns "NNNN-<sanitized path>.md" for a card.
func FileName(index int, rel string) string {
	return fmt.Sprintf("%04d-%s.md", index, Sanitize(rel))
}

// Sanitize folds a relative path into a portable file name stem: the
// extension is dropped, letters are NFKD-folded to ASCII and separators
// become '-'.
func Sanitize(rel string) string {
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), rel)
	if err != nil {
		folded = rel
	}

	var sb strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			sb.WriteRune(r)
			dash = false
		case r == '/' || r == '\\' || r == '.' || r == '-' || unicode.IsSpace(r):
			if !dash && sb.Len() > 0 {
				sb.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimSuffix(sb.String(), "-")
	if out == "" {
		return "file"
	}
	return out
}
