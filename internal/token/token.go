package token

import (
	"strings"

	"cardgen/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// DocComment joins the text of leading /// lines with the markers stripped.
func (t Token) DocComment() string {
	return joinTrivia(t.Leading, TriviaDocLine, "///")
}

// ContainerDoc joins the text of leading //! lines with the markers stripped.
func (t Token) ContainerDoc() string {
	return joinTrivia(t.Leading, TriviaContainerDoc, "//!")
}

func joinTrivia(trivia []Trivia, kind TriviaKind, marker string) string {
	var lines []string
	for _, tv := range trivia {
		if tv.Kind != kind {
			// /// разорванный обычным комментарием начинается заново
			if kind == TriviaDocLine && tv.Kind == TriviaLineComment {
				lines = lines[:0]
			}
			continue
		}
		lines = append(lines, strings.TrimSpace(strings.TrimPrefix(tv.Text, marker)))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
