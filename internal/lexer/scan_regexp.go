package lexer

import (
	"typedlint/internal/token"
)

// scanRegExp reads /body/flags. Value holds the body; flags stay in Text.
func (lx *Lexer) scanRegExp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	inClass := false
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			return lx.invalid(start, "Unterminated regular expression")
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				return lx.invalid(start, "Unterminated regular expression")
			}
			lx.cursor.Bump()
			continue
		}
		if b == '[' {
			inClass = true
		} else if b == ']' {
			inClass = false
		} else if b == '/' && !inClass {
			break
		}
	}
	bodyEnd := lx.cursor.Off - 1
	for isIdentContinueByte(lx.cursor.Peek()) {
		f := lx.cursor.Bump()
		switch f {
		case 'd', 'g', 'i', 'm', 's', 'u', 'v', 'y':
		default:
			return lx.invalid(start, "Invalid regular expression flag")
		}
	}
	tok := lx.emit(token.RegExpLit, start)
	tok.Value = string(lx.file.Content[uint32(start)+1 : bodyEnd])
	return tok
}
