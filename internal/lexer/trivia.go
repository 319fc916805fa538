package lexer

import (
	"cardgen/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t' и '\r' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment
//   - ///... до \n -> TriviaDocLine (но не ////...)
//   - //!... до \n -> TriviaContainerDoc
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '/' && lx.cursor.PeekAt(1) == '/':
			kind := token.TriviaLineComment
			switch {
			case lx.cursor.HasPrefix("//!"):
				kind = token.TriviaContainerDoc
			case lx.cursor.HasPrefix("///") && !lx.cursor.HasPrefix("////"):
				kind = token.TriviaDocLine
			}
			lx.cursor.SkipToEOL()
			lx.pushTrivia(kind, start)

		default:
			// нет больше trivia
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
