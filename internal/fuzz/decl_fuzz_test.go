package fuzztests

import (
	"errors"
	"testing"
	"time"

	"cardgen/internal/decl"
	"cardgen/internal/source"
	"cardgen/internal/testkit"
)

// parseTimeout is the maximum time allowed for extracting a single input.
// If extraction takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParseDecls(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		sf := fs.Get(fs.AddVirtual("fuzz.zig", "fuzz", clampInput(input)))

		type result struct {
			file *decl.File
			err  error
		}
		done := make(chan result, 1)
		go func() {
			file, err := decl.Parse(sf, decl.Options{MaxDiagnostics: 128})
			done <- result{file, err}
		}()

		var res result
		select {
		case res = <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("decl extraction hang detected: took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}

		if res.err != nil {
			var pe *decl.ParseError
			if !errors.As(res.err, &pe) {
				t.Fatalf("unexpected error type %T: %v", res.err, res.err)
			}
			return
		}
		if err := testkit.CheckDeclInvariants(res.file, sf); err != nil {
			t.Fatalf("invariant violated: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(append([]byte(nil), input[:maxLen]...), "..."...)
}
