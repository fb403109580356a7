package lexer

import (
	"strings"

	"typedlint/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Identifiers written with \u escapes are never keywords; Value holds the decoded name.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	var decoded strings.Builder
	escaped := false

	first := true
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '\\' {
			r, ok := lx.scanIdentEscape()
			if !ok || !(first && isIdentStartRune(r) || !first && isIdentContinueRune(r)) {
				return lx.invalid(start, "Invalid Unicode escape")
			}
			escaped = true
			decoded.WriteRune(r)
			first = false
			continue
		}
		r, sz := lx.cursor.PeekRune()
		if sz == 0 || (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) {
			break
		}
		lx.cursor.BumpRune()
		decoded.WriteRune(r)
		first = false
	}
	if first {
		lx.cursor.BumpRune()
		return lx.invalid(start, "Unexpected character")
	}

	tok := lx.emit(token.Ident, start)
	tok.Value = decoded.String()
	if escaped {
		return tok
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// \uXXXX или \u{X...}
func (lx *Lexer) scanIdentEscape() (rune, bool) {
	lx.cursor.Bump() // '\'
	if !lx.cursor.Eat('u') {
		return 0, false
	}
	return lx.scanUnicodeEscapeBody()
}

func (lx *Lexer) scanPrivateName() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	r, sz := lx.cursor.PeekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.invalid(start, "Unexpected character '#'")
	}
	for {
		r, sz = lx.cursor.PeekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}
	tok := lx.emit(token.PrivateName, start)
	tok.Value = tok.Text[1:]
	return tok
}
