package rule

import (
	"typedlint/internal/ast"
	"typedlint/internal/fix"
	"typedlint/internal/source"
)

// ReplaceText replaces the source of n.
func ReplaceText(n ast.Node, text string) *Fix {
	f := fix.ReplaceSpan("replace", n.Span(), text, "")
	return &f
}

// ReplaceRange replaces the text under sp.
func ReplaceRange(sp source.Span, text string) *Fix {
	f := fix.ReplaceSpan("replace", sp, text, "")
	return &f
}

func InsertTextBefore(n ast.Node, text string) *Fix {
	f := fix.InsertBefore("insert", n.Span(), text)
	return &f
}

func InsertTextAfter(n ast.Node, text string) *Fix {
	f := fix.InsertAfter("insert", n.Span(), text)
	return &f
}

// Remove deletes the source of n.
func Remove(n ast.Node) *Fix {
	f := fix.DeleteSpan("remove", n.Span(), "")
	return &f
}

// RemoveRange deletes the text under sp.
func RemoveRange(sp source.Span) *Fix {
	f := fix.DeleteSpan("remove", sp, "")
	return &f
}
