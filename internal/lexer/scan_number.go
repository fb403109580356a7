package lexer

import (
	"typedlint/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.5, .5, 1e-3, 10n.
// Legacy octal literals (017) are read as decimals.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		}
		if digit != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			if !lx.eatDigits(digit) {
				return lx.invalid(start, "Expected number in radix")
			}
			return lx.finishNumber(start, true)
		}
	}

	if lx.cursor.Peek() != '.' {
		lx.eatDigits(isDec)
		if lx.cursor.Peek() == 'n' {
			return lx.finishNumber(start, true)
		}
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !lx.eatDigits(isDec) {
			return lx.invalid(start, "Invalid number")
		}
	}
	return lx.finishNumber(start, false)
}

// eatDigits consumes digits and separators; reports whether at least one digit was read.
func (lx *Lexer) eatDigits(digit func(byte) bool) bool {
	n := 0
	for {
		b := lx.cursor.Peek()
		if digit(b) {
			n++
		} else if b != '_' || n == 0 || !digit(lx.cursor.PeekAt(1)) {
			break
		}
		lx.cursor.Bump()
	}
	return n > 0
}

func (lx *Lexer) finishNumber(start Mark, intOnly bool) token.Token {
	kind := token.NumberLit
	if intOnly && lx.cursor.Eat('n') {
		kind = token.BigIntLit
	}
	if r, sz := lx.cursor.PeekRune(); sz > 0 && (isIdentStartRune(r) || isDec(lx.cursor.Peek())) {
		lx.cursor.BumpRune()
		return lx.invalid(start, "Identifier directly after number")
	}
	return lx.emit(kind, start)
}
