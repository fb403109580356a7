package token_test

import (
	"testing"

	"typedlint/internal/source"
	"typedlint/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NumberLit, token.BigIntLit, token.StringLit, token.RegExpLit,
		token.TemplateNoSub, token.KwNull, token.KwTrue, token.KwFalse,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwVar, token.Plus, token.LParen, token.TemplateHead}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.LBrace, token.DotDotDot, token.QuestionDot, token.FatArrow,
		token.EqEqEq, token.UShr, token.StarStar, token.QuestionQuestionAssign,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwIf, token.StringLit, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.EOF:        "end of input",
		token.Colon:      ":",
		token.KwFunction: "function",
		token.UShrAssign: ">>>=",
		token.Ident:      "identifier",
		token.Kind(250):  "invalid",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestAssignOperators(t *testing.T) {
	if !token.Assign.IsAssign() || !token.QuestionQuestionAssign.IsAssign() || !token.ShlAssign.IsAssign() {
		t.Fatal("assignment operators not recognised")
	}
	if token.EqEq.IsAssign() || token.FatArrow.IsAssign() {
		t.Fatal("comparison and arrow are not assignments")
	}
}

func TestContextualWords(t *testing.T) {
	tk := token.Token{Kind: token.Ident, Text: "interface"}
	if !tk.Is("interface") || tk.Is("type") {
		t.Fatal("Is must compare identifier text")
	}
	kw := token.Token{Kind: token.KwDefault, Text: "default"}
	if !kw.IsName() || kw.IsIdent() {
		t.Fatal("reserved words are property names but not identifiers")
	}
}
