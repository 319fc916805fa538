package lexer

import (
	"cardgen/internal/diag"
	"cardgen/internal/source"
)

// maxTokenLength bounds a single token; longer input is treated as non-source.
const maxTokenLength = 1 << 16

type Options struct {
	Reporter diag.Reporter // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.errors++
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
