package lexer

import (
	"typedlint/internal/token"
)

// skipTrivia пропускает пробелы и переводы строк, комментарии складывает в lx.comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		if n := lx.cursor.LineTerminator(); n > 0 {
			lx.cursor.Off += n
			lx.newline = true
			continue
		}
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f':
			lx.cursor.Bump()
		case b == '/':
			b1 := lx.cursor.PeekAt(1)
			switch b1 {
			case '/':
				lx.scanLineComment()
			case '*':
				lx.scanBlockComment()
			default:
				return
			}
		case b >= utf8RuneSelf:
			r, sz := lx.cursor.PeekRune()
			if !isUnicodeSpace(r) {
				return
			}
			lx.cursor.Off += sz
		default:
			return
		}
	}
}

func (lx *Lexer) scanLineComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.LineTerminator() == 0 {
		lx.cursor.BumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.comments = append(lx.comments, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.text(sp)})
}

func (lx *Lexer) scanBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.LineTerminator() > 0 {
			lx.newline = true
		}
		b := lx.cursor.Bump()
		if b == '*' && lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.comments = append(lx.comments, token.Trivia{Kind: token.TriviaBlockComment, Span: sp, Text: lx.text(sp)})
			return
		}
	}
	// незакрытый комментарий превращается в Invalid-токен
	bad := lx.invalid(start, "Unterminated comment")
	lx.bad = &bad
}

func (lx *Lexer) skipHashbang() {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '#' && b1 == '!' {
		lx.scanLineComment()
	}
}
