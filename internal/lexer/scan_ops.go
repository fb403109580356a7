package lexer

import (
	"typedlint/internal/token"
)

// Порядок важен: длинные операторы раньше их префиксов.
var operators = []struct {
	text string
	kind token.Kind
}{
	{">>>=", token.UShrAssign},
	{"...", token.DotDotDot},
	{"===", token.EqEqEq},
	{"!==", token.BangEqEq},
	{"**=", token.StarStarAssign},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{">>>", token.UShr},
	{"&&=", token.AndAndAssign},
	{"||=", token.OrOrAssign},
	{"??=", token.QuestionQuestionAssign},
	{"=>", token.FatArrow},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"??", token.QuestionQuestion},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"**", token.StarStar},
}

var singles = [128]token.Kind{
	'{': token.LBrace, '}': token.RBrace, '(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket, '.': token.Dot, ';': token.Semicolon,
	',': token.Comma, ':': token.Colon, '?': token.Question, '@': token.At,
	'<': token.Lt, '>': token.Gt, '+': token.Plus, '-': token.Minus, '*': token.Star,
	'/': token.Slash, '%': token.Percent, '&': token.Amp, '|': token.Pipe, '^': token.Caret,
	'!': token.Bang, '~': token.Tilde, '=': token.Assign,
}

// Жадность: сначала длинные, затем односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// `?.` is not an operator in `a?.5:b`
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '?' && b1 == '.' && !isDec(lx.cursor.PeekAt(2)) {
		lx.cursor.Off += 2
		return lx.emit(token.QuestionDot, start)
	}
	for _, op := range operators {
		if lx.cursor.EatString(op.text) {
			return lx.emit(op.kind, start)
		}
	}

	ch := lx.cursor.Peek()
	if ch < utf8RuneSelf && singles[ch] != token.Invalid {
		lx.cursor.Bump()
		switch ch {
		case '{':
			lx.braces++
		case '}':
			lx.braces--
		}
		return lx.emit(singles[ch], start)
	}
	lx.cursor.BumpRune()
	return lx.invalid(start, "Unexpected character '"+lx.text(lx.cursor.SpanFrom(start))+"'")
}
