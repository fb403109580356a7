package adapter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedlint/internal/adapter"
	"typedlint/internal/parser"
	"typedlint/internal/source"
	"typedlint/internal/typedjs"
)

func file(src string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("input.ts", []byte(src)))
}

func TestParseForLintingWithoutScope(t *testing.T) {
	a := adapter.New("espree", nil)
	in, err := a.ParseForLinting(file("let x = 1;"), adapter.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Program", in.AST.Type())
	assert.Contains(t, in.VisitorKeys, "VariableDeclaration")
	assert.False(t, in.Scope.Present())
	assert.Equal(t, "espree", a.Name())
}

func TestParseForLintingWithScope(t *testing.T) {
	g, err := typedjs.Grammar()
	require.NoError(t, err)
	a := adapter.New("typedjs", g, adapter.WithScopeAnalysis())
	assert.True(t, a.ScopeAnalysis())

	in, err := a.ParseForLinting(file("let x: number = y;"), adapter.Options{Globals: map[string]bool{"y": false}})
	require.NoError(t, err)
	m, ok := in.Scope.Get()
	require.True(t, ok)
	assert.Empty(t, m.Global.Through)
	assert.Contains(t, in.VisitorKeys, "TSTypeAnnotation")
}

func TestSyntaxErrorPassesThrough(t *testing.T) {
	a := adapter.New("espree", nil, adapter.WithScopeAnalysis())
	_, err := a.ParseForLinting(file("let x: number = 1;"), adapter.Options{})
	var se *parser.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, uint32(5), se.Span.Start)
	assert.Equal(t, uint32(1), se.Pos.Line)
	assert.Equal(t, uint32(6), se.Pos.Col)
}

func TestVisitorKeysAreIsolated(t *testing.T) {
	a := adapter.New("espree", nil)
	in, err := a.ParseForLinting(file("1;"), adapter.Options{})
	require.NoError(t, err)
	delete(in.VisitorKeys, "Literal")

	again, err := a.ParseForLinting(file("1;"), adapter.Options{})
	require.NoError(t, err)
	assert.Contains(t, again.VisitorKeys, "Literal")
}

func TestParseOptionsApply(t *testing.T) {
	a := adapter.New("espree", nil)
	_, err := a.Parse(file("return 1;"), adapter.Options{})
	require.Error(t, err)
	prog, err := a.Parse(file("return 1;"), adapter.Options{Options: parser.Options{SourceType: parser.SourceCommonJS}})
	require.NoError(t, err)
	assert.Equal(t, "script", prog.SourceType)
}
