package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                    Code = 1000
	LexUnknownChar             Code = 1001
	LexUnterminatedString      Code = 1002
	LexUnterminatedChar        Code = 1003
	LexBadNumber               Code = 1004
	LexTokenTooLong            Code = 1005
	LexUnterminatedQuotedIdent Code = 1006

	// Структурные (извлечение деклараций)
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnmatchedCloser   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectSemicolon   Code = 2005
	SynDuplicateDecl     Code = 2006

	// Ошибки ввода-вывода
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
	IOEncoding      Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                "Unknown error",
	LexInfo:                    "Lexical information",
	LexUnknownChar:             "Unknown character",
	LexUnterminatedString:      "Unterminated string literal",
	LexUnterminatedChar:        "Unterminated character literal",
	LexBadNumber:               "Malformed number literal",
	LexTokenTooLong:            "Token too long",
	LexUnterminatedQuotedIdent: "Unterminated quoted identifier",
	SynInfo:                    "Structural information",
	SynUnexpectedToken:         "Unexpected token",
	SynUnclosedDelimiter:       "Unclosed delimiter",
	SynUnmatchedCloser:         "Unmatched closing delimiter",
	SynExpectIdentifier:        "Expected identifier",
	SynExpectSemicolon:         "Expected semicolon",
	SynDuplicateDecl:           "Duplicate top-level declaration",
	IOInfo:                     "I/O information",
	IOLoadFileError:            "I/O load file error",
	IOEncoding:                 "File is not UTF-8 text",
}

// ID returns the stable identifier, e.g. LEX1002.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	default:
		return fmt.Sprintf("E%04d", ic)
	}
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
