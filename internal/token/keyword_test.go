package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"pub":            KwPub,
		"fn":             KwFn,
		"const":          KwConst,
		"var":            KwVar,
		"struct":         KwStruct,
		"error":          KwError,
		"anytype":        KwAnytype,
		"usingnamespace": KwUsingnamespace,
		"comptime":       KwComptime,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	for _, lexeme := range []string{"Pub", "FN", "u8", "Allocator", "type", "void", "null", "true"} {
		if k, ok := LookupKeyword(lexeme); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", lexeme, k)
		}
	}
}

func TestEveryKeywordHasLexeme(t *testing.T) {
	for k := kwBegin + 1; k < kwEnd; k++ {
		if _, ok := lexemes[k]; !ok {
			t.Errorf("keyword kind %d has no lexeme", k)
		}
	}
	for k := opBegin + 1; k < opEnd; k++ {
		if _, ok := lexemes[k]; !ok {
			t.Errorf("operator kind %d has no lexeme", k)
		}
	}
}
