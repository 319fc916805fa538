package fuzztests

import (
	"testing"

	"cardgen/internal/diag"
	"cardgen/internal/lexer"
	"cardgen/internal/source"
	"cardgen/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.zig", "fuzz", clampInput(input)))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		toks := lx.All()

		if toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("last token is %s, want EOF", toks[len(toks)-1].Kind)
		}
		var prev uint32
		for i, tok := range toks {
			if tok.Span.Start < prev || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d (%s) span %v out of order after %d", i, tok.Kind, tok.Span, prev)
			}
			if int(tok.Span.End) > len(file.Content) {
				t.Fatalf("token %d span %v beyond content %d", i, tok.Span, len(file.Content))
			}
			prev = tok.Span.End
		}
		if lx.Errors() > 0 && !bag.HasErrors() {
			t.Fatalf("lexer counted %d errors but reported none", lx.Errors())
		}
	})
}
