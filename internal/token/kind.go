package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (including @"quoted" identifiers).
	Ident
	// Builtin represents a builtin function name such as @import.
	Builtin

	IntLit
	FloatLit
	CharLit
	StringLit
	// MultilineStringLit is one \\ line; consecutive lines are separate tokens.
	MultilineStringLit

	kwBegin
	KwAddrspace
	KwAlign
	KwAllowzero
	KwAnd
	KwAnyframe
	KwAnytype
	KwAsm
	KwBreak
	KwCallconv
	KwCatch
	KwComptime
	KwConst
	KwContinue
	KwDefer
	KwElse
	KwEnum
	KwErrdefer
	KwError
	KwExport
	KwExtern
	KwFn
	KwFor
	KwIf
	KwInline
	KwLinksection
	KwNoalias
	KwNoinline
	KwNosuspend
	KwOpaque
	KwOr
	KwOrelse
	KwPacked
	KwPub
	KwResume
	KwReturn
	KwStruct
	KwSuspend
	KwSwitch
	KwTest
	KwThreadlocal
	KwTry
	KwUnion
	KwUnreachable
	KwUsingnamespace
	KwVar
	KwVolatile
	KwWhile
	kwEnd

	opBegin
	Plus        // +
	PlusPlus    // ++
	PlusAssign  // +=
	PlusPercent // +%
	Minus       // -
	MinusAssign // -=
	MinusPercent
	Star       // *
	StarStar   // **
	StarAssign // *=
	Slash      // /
	SlashAssign
	Percent // %
	PercentAssign
	Assign     // =
	EqEq       // ==
	Bang       // !
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Shl        // <<
	ShlAssign  // <<=
	Gt         // >
	GtEq       // >=
	Shr        // >>
	ShrAssign  // >>=
	Amp        // &
	AmpAssign  // &=
	Pipe       // |
	PipePipe   // ||
	PipeAssign // |=
	Caret      // ^
	CaretAssign
	Tilde     // ~
	Question  // ?
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	DotDot    // ..
	Ellipsis  // ...
	DotStar   // .*
	DotQuestion
	FatArrow // =>
	Arrow    // ->
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	opEnd
)

var kindNames = map[Kind]string{
	Invalid:            "Invalid",
	EOF:                "EOF",
	Ident:              "Ident",
	Builtin:            "Builtin",
	IntLit:             "IntLit",
	FloatLit:           "FloatLit",
	CharLit:            "CharLit",
	StringLit:          "StringLit",
	MultilineStringLit: "MultilineStringLit",
}

// String returns a readable name; keywords and operators render as their lexeme.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if lexeme, ok := lexemes[k]; ok {
		return lexeme
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool { return k > kwBegin && k < kwEnd }

// IsOperator reports whether k is punctuation or an operator.
func (k Kind) IsOperator() bool { return k > opBegin && k < opEnd }

// IsLiteral reports whether k is a numeric, character or string literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case IntLit, FloatLit, CharLit, StringLit, MultilineStringLit:
		return true
	default:
		return false
	}
}

// Opens reports whether k opens a bracketed group.
func (k Kind) Opens() bool { return k == LParen || k == LBrace || k == LBracket }

// Closes reports whether k closes a bracketed group.
func (k Kind) Closes() bool { return k == RParen || k == RBrace || k == RBracket }

// Closer returns the closing kind for an opening bracket, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
