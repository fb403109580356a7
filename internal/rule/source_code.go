package rule

import (
	"strings"

	"typedlint/internal/ast"
	"typedlint/internal/source"
)

// SourceCode gives rules read access to the text being linted.
type SourceCode struct {
	File *source.File
	AST  *ast.Program
}

func NewSourceCode(file *source.File, prog *ast.Program) *SourceCode {
	return &SourceCode{File: file, AST: prog}
}

// Text returns the whole (normalized) file content.
func (s *SourceCode) Text() string { return string(s.File.Content) }

// GetText returns the source of n.
func (s *SourceCode) GetText(n ast.Node) string {
	return s.Slice(n.Span())
}

// Slice returns the text under sp, clamped to the file.
func (s *SourceCode) Slice(sp source.Span) string {
	return s.File.Text(sp)
}

// Lines returns the file split on "\n".
func (s *SourceCode) Lines() []string {
	return strings.Split(string(s.File.Content), "\n")
}

// Position resolves a byte offset to 1-based line and column.
func (s *SourceCode) Position(off uint32) source.LineCol {
	return s.File.Position(off)
}

// Comments returns the comments of the program in source order.
func (s *SourceCode) Comments() []ast.Comment {
	if s.AST == nil {
		return nil
	}
	return s.AST.Comments
}
