package lexer

import (
	"cardgen/internal/diag"
	"cardgen/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Zig ".{" (анонимный литерал) лексится как Dot + LBrace.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	for _, n := range [...]uint32{3, 2, 1} {
		if lx.cursor.Off+n > lx.cursor.limit {
			continue
		}
		text := string(lx.file.Content[lx.cursor.Off : lx.cursor.Off+n])
		if k, ok := token.LookupOperator(text); ok {
			lx.cursor.BumpN(n)
			return lx.emit(k, start)
		}
	}

	// неизвестный символ; съедаем целую UTF-8 последовательность
	lx.cursor.Bump()
	for b := lx.cursor.Peek(); b >= 0x80 && b < 0xC0; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}
