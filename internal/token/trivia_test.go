package token_test

import (
	"testing"

	"cardgen/internal/token"
)

func TestDocCommentJoin(t *testing.T) {
	tok := token.Token{
		Kind: token.KwPub,
		Text: "pub",
		Leading: []token.Trivia{
			{Kind: token.TriviaDocLine, Text: "/// stale"},
			{Kind: token.TriviaNewline, Text: "\n"},
			{Kind: token.TriviaLineComment, Text: "// break"},
			{Kind: token.TriviaDocLine, Text: "/// Allocates memory."},
			{Kind: token.TriviaNewline, Text: "\n"},
			{Kind: token.TriviaDocLine, Text: "///   Caller owns it."},
		},
	}
	if got := tok.DocComment(); got != "Allocates memory.\nCaller owns it." {
		t.Errorf("DocComment() = %q", got)
	}
	if got := tok.ContainerDoc(); got != "" {
		t.Errorf("ContainerDoc() = %q, want empty", got)
	}
}

func TestContainerDoc(t *testing.T) {
	tok := token.Token{
		Leading: []token.Trivia{
			{Kind: token.TriviaContainerDoc, Text: "//! Dynamic array."},
			{Kind: token.TriviaNewline, Text: "\n"},
		},
	}
	if got := tok.ContainerDoc(); got != "Dynamic array." {
		t.Errorf("ContainerDoc() = %q", got)
	}
}
