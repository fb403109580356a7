package lexer

import (
	"strings"
	"unicode/utf8"

	"typedlint/internal/token"
)

// scanString reads '...' or "..."; Value holds the cooked text.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == quote:
			lx.cursor.Bump()
			tok := lx.emit(token.StringLit, start)
			tok.Value = sb.String()
			return tok
		case b == '\\':
			if msg := lx.scanEscape(&sb); msg != "" {
				return lx.invalid(start, msg)
			}
		case b == '\n':
			return lx.invalid(start, "Unterminated string constant")
		default:
			r, sz := lx.cursor.PeekRune()
			sb.WriteRune(r)
			lx.cursor.Off += sz
		}
	}
	return lx.invalid(start, "Unterminated string constant")
}

// scanTemplate reads one template chunk starting at '`' (head) or at the '}'
// closing a substitution.
func (lx *Lexer) scanTemplate(head bool) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '`':
			lx.cursor.Bump()
			kind := token.TemplateTail
			if head {
				kind = token.TemplateNoSub
			}
			tok := lx.emit(kind, start)
			tok.Value = sb.String()
			return tok
		case b == '$' && lx.cursor.PeekAt(1) == '{':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.templates = append(lx.templates, lx.braces)
			kind := token.TemplateMiddle
			if head {
				kind = token.TemplateHead
			}
			tok := lx.emit(kind, start)
			tok.Value = sb.String()
			return tok
		case b == '\\':
			if msg := lx.scanEscape(&sb); msg != "" {
				return lx.invalid(start, msg)
			}
		default:
			r, sz := lx.cursor.PeekRune()
			sb.WriteRune(r)
			lx.cursor.Off += sz
		}
	}
	return lx.invalid(start, "Unterminated template")
}

// scanEscape consumes a backslash sequence and appends its cooked value.
// A non-empty result is an error message.
func (lx *Lexer) scanEscape(sb *strings.Builder) string {
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return "Unterminated string constant"
	}
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case '0':
		if isDec(lx.cursor.Peek()) {
			return "Octal escape sequences are not allowed"
		}
		sb.WriteByte(0)
	case '\n':
		// продолжение строки
	case 'x':
		h0, h1, ok := lx.cursor.Peek2()
		if !ok || !isHex(h0) || !isHex(h1) {
			return "Bad character escape sequence"
		}
		lx.cursor.Bump()
		lx.cursor.Bump()
		sb.WriteRune(hexVal(h0)<<4 | hexVal(h1))
	case 'u':
		r, ok := lx.scanUnicodeEscapeBody()
		if !ok {
			return "Bad character escape sequence"
		}
		sb.WriteRune(r)
	default:
		if b >= utf8RuneSelf {
			lx.cursor.Off--
			r, sz := lx.cursor.PeekRune()
			lx.cursor.Off += sz
			sb.WriteRune(r)
			return ""
		}
		sb.WriteByte(b)
	}
	return ""
}

// scanUnicodeEscapeBody reads XXXX or {X...} after `\u`.
func (lx *Lexer) scanUnicodeEscapeBody() (rune, bool) {
	var r rune
	if lx.cursor.Eat('{') {
		n := 0
		for isHex(lx.cursor.Peek()) {
			r = r<<4 | hexVal(lx.cursor.Bump())
			n++
			if r > utf8.MaxRune {
				return 0, false
			}
		}
		return r, n > 0 && lx.cursor.Eat('}')
	}
	for range 4 {
		if !isHex(lx.cursor.Peek()) {
			return 0, false
		}
		r = r<<4 | hexVal(lx.cursor.Bump())
	}
	return r, true
}
