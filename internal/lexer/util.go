package lexer

// ===== Классификаторы =====

// Zig identifiers are ASCII only; anything else must be spelled @"...".
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// isNumberContinue accepts digits of any base plus separators, exponents and radix point.
func isNumberContinue(b byte) bool {
	return isHex(b) || b == '_' || b == 'x' || b == 'o' || b == 'b' || b == 'p' || b == 'P'
}
