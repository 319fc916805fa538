package lexer

import (
	"cardgen/internal/diag"
	"cardgen/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 0x1.8p3.
// Точный разбор не нужен: форма литерала не влияет на сигнатуры,
// важно только не съесть соседние операторы (1..2, x.0.y).
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	hex := lx.cursor.HasPrefix("0x") || lx.cursor.HasPrefix("0X")

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isNumberContinue(b):
			lx.cursor.Bump()
			if (b == 'e' || b == 'E') && !hex || b == 'p' || b == 'P' {
				if n := lx.cursor.Peek(); n == '+' || n == '-' {
					kind = token.FloatLit
					lx.cursor.Bump()
				}
			}
		case b == '.' && isDec(lx.cursor.PeekAt(1)) || b == '.' && hex && isHex(lx.cursor.PeekAt(1)):
			if kind == token.FloatLit {
				// "1.2.3": вторая точка уже не часть числа
				return lx.finishNumber(start, kind)
			}
			kind = token.FloatLit
			lx.cursor.Bump()
		default:
			return lx.finishNumber(start, kind)
		}
	}
	return lx.finishNumber(start, kind)
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	tok := lx.emit(kind, start)
	if last := tok.Text[len(tok.Text)-1]; last == '_' {
		lx.errLex(diag.LexBadNumber, tok.Span, "number literal cannot end with '_'")
		tok.Kind = token.Invalid
	}
	return tok
}
