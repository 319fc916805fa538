package token

var keywords = map[string]Kind{
	"addrspace":      KwAddrspace,
	"align":          KwAlign,
	"allowzero":      KwAllowzero,
	"and":            KwAnd,
	"anyframe":       KwAnyframe,
	"anytype":        KwAnytype,
	"asm":            KwAsm,
	"break":          KwBreak,
	"callconv":       KwCallconv,
	"catch":          KwCatch,
	"comptime":       KwComptime,
	"const":          KwConst,
	"continue":       KwContinue,
	"defer":          KwDefer,
	"else":           KwElse,
	"enum":           KwEnum,
	"errdefer":       KwErrdefer,
	"error":          KwError,
	"export":         KwExport,
	"extern":         KwExtern,
	"fn":             KwFn,
	"for":            KwFor,
	"if":             KwIf,
	"inline":         KwInline,
	"linksection":    KwLinksection,
	"noalias":        KwNoalias,
	"noinline":       KwNoinline,
	"nosuspend":      KwNosuspend,
	"opaque":         KwOpaque,
	"or":             KwOr,
	"orelse":         KwOrelse,
	"packed":         KwPacked,
	"pub":            KwPub,
	"resume":         KwResume,
	"return":         KwReturn,
	"struct":         KwStruct,
	"suspend":        KwSuspend,
	"switch":         KwSwitch,
	"test":           KwTest,
	"threadlocal":    KwThreadlocal,
	"try":            KwTry,
	"union":          KwUnion,
	"unreachable":    KwUnreachable,
	"usingnamespace": KwUsingnamespace,
	"var":            KwVar,
	"volatile":       KwVolatile,
	"while":          KwWhile,
}

var lexemes = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords)+len(operators))
	for text, k := range keywords {
		out[k] = text
	}
	for text, k := range operators {
		out[k] = text
	}
	return out
}()

var operators = map[string]Kind{
	"+": Plus, "++": PlusPlus, "+=": PlusAssign, "+%": PlusPercent,
	"-": Minus, "-=": MinusAssign, "-%": MinusPercent,
	"*": Star, "**": StarStar, "*=": StarAssign,
	"/": Slash, "/=": SlashAssign,
	"%": Percent, "%=": PercentAssign,
	"=": Assign, "==": EqEq, "!": Bang, "!=": BangEq,
	"<": Lt, "<=": LtEq, "<<": Shl, "<<=": ShlAssign,
	">": Gt, ">=": GtEq, ">>": Shr, ">>=": ShrAssign,
	"&": Amp, "&=": AmpAssign,
	"|": Pipe, "||": PipePipe, "|=": PipeAssign,
	"^": Caret, "^=": CaretAssign, "~": Tilde, "?": Question,
	":": Colon, ";": Semicolon, ",": Comma,
	".": Dot, "..": DotDot, "...": Ellipsis, ".*": DotStar, ".?": DotQuestion,
	"=>": FatArrow, "->": Arrow,
	"(": LParen, ")": RParen, "{": LBrace, "}": RBrace, "[": LBracket, "]": RBracket,
}

// LookupKeyword returns the keyword kind for an exact (case-sensitive) lexeme.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

// LookupOperator returns the operator kind for an exact lexeme.
func LookupOperator(s string) (Kind, bool) {
	k, ok := operators[s]
	return k, ok
}
