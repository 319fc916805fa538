package lexer

import (
	"cardgen/internal/diag"
	"cardgen/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanAt handles '@' forms: builtins (@import) and quoted identifiers (@"name").
func (lx *Lexer) scanAt() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '@'

	switch next := lx.cursor.Peek(); {
	case next == '"':
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			b := lx.cursor.Bump()
			switch b {
			case '\\':
				lx.cursor.Bump()
			case '"':
				return lx.emit(token.Ident, start)
			case '\n':
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexUnterminatedQuotedIdent, sp, "newline in quoted identifier")
				return lx.emit(token.Invalid, start)
			}
		}
		lx.errLex(diag.LexUnterminatedQuotedIdent, lx.cursor.SpanFrom(start), "unterminated quoted identifier")
		return lx.emit(token.Invalid, start)

	case isIdentStartByte(next):
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emit(token.Builtin, start)

	default:
		lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "'@' must start a builtin or quoted identifier")
		return lx.emit(token.Invalid, start)
	}
}
