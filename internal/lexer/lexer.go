package lexer

import (
	"typedlint/internal/source"
	"typedlint/internal/token"
)

type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	look     *token.Token
	comments []token.Trivia
	prev     token.Kind // последний значимый токен, нужен для выбора regexp/деления
	newline  bool       // был перевод строки перед текущим токеном
	braces   int
	// templates holds the brace depth at each open `${`.
	templates []int
	bad       *token.Token // ошибка, найденная внутри trivia
}

func New(file *source.File, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
	if opts.Hashbang {
		lx.skipHashbang()
	}
	return lx
}

// Tokenize lexes the whole file. The result always ends with EOF.
func Tokenize(file *source.File, opts Options) ([]token.Token, []token.Trivia) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, lx.Comments()
}

// Comments returns the comments seen so far, in source order.
func (lx *Lexer) Comments() []token.Trivia {
	return lx.comments
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.newline = false
	lx.skipTrivia()

	if lx.bad != nil {
		tok := *lx.bad
		lx.bad = nil
		tok.NewlineBefore = lx.newline
		return tok
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), NewlineBefore: true}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case ch == '}' && len(lx.templates) > 0 && lx.templates[len(lx.templates)-1] == lx.braces:
		lx.templates = lx.templates[:len(lx.templates)-1]
		tok = lx.scanTemplate(false)
	case isIdentStartByte(ch) || ch == '\\':
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	case ch == '`':
		tok = lx.scanTemplate(true)
	case ch == '#':
		tok = lx.scanPrivateName()
	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegExp()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.NewlineBefore = lx.newline
	lx.prev = tok.Kind
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// regexAllowed decides whether '/' starts a regular expression by looking at
// the previous token: after something that ends an operand it is a division.
func (lx *Lexer) regexAllowed() bool {
	switch lx.prev {
	case token.Ident, token.PrivateName, token.NumberLit, token.BigIntLit, token.StringLit,
		token.RegExpLit, token.TemplateNoSub, token.TemplateTail,
		token.RParen, token.RBracket, token.RBrace,
		token.KwThis, token.KwSuper, token.KwNull, token.KwTrue, token.KwFalse,
		token.PlusPlus, token.MinusMinus:
		return false
	default:
		return true
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
}

// invalid reports msg and returns an Invalid token carrying it.
func (lx *Lexer) invalid(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.report(sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp), Value: msg}
}
