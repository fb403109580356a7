package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedlint/internal/ast"
	"typedlint/internal/diag"
	"typedlint/internal/rule"
	"typedlint/internal/source"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		msg  string
		data map[string]any
		want string
	}{
		{"'{{name}}' is not defined.", map[string]any{"name": "foo"}, "'foo' is not defined."},
		{"{{ a }} and {{b}}", map[string]any{"a": 1, "b": true}, "1 and true"},
		{"keep {{missing}}", map[string]any{"a": 1}, "keep {{missing}}"},
		{"plain", nil, "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rule.Interpolate(tt.msg, tt.data))
	}
}

type fixture struct {
	file *source.File
	ids  *ast.Identifier
	got  []diag.Diagnostic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.js", []byte("foo;\nbar;")))
	id := &ast.Identifier{Name: "bar"}
	id.SetSpan(source.Span{File: file.ID, Start: 5, End: 8})
	return &fixture{file: file, ids: id}
}

func (f *fixture) context(meta rule.Meta, opts []any) *rule.Context {
	return rule.NewContext(rule.Settings{
		ID:       "demo",
		Severity: diag.SevWarning,
		Options:  opts,
		Meta:     meta,
		Source:   rule.NewSourceCode(f.file, nil),
		Report:   diag.ReporterFunc(func(d diag.Diagnostic) { f.got = append(f.got, d) }),
	})
}

func TestReportFillsRuleAndPosition(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(rule.Meta{Messages: map[string]string{"undef": "'{{name}}' is not defined."}}, nil)
	ctx.Report(rule.Descriptor{Node: f.ids, MessageID: "undef", Data: map[string]any{"name": "bar"}})

	require.Len(t, f.got, 1)
	d := f.got[0]
	assert.Equal(t, "demo", d.RuleID)
	assert.Equal(t, diag.SevWarning, d.Severity)
	assert.Equal(t, "'bar' is not defined.", d.Message)
	assert.Equal(t, "undef", d.MessageID)
	assert.Equal(t, source.LineCol{Line: 2, Col: 1}, d.Start)
	assert.Equal(t, source.LineCol{Line: 2, Col: 4}, d.End)
	assert.Nil(t, d.Fix)
}

func TestReportLocWinsOverNode(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(rule.Meta{}, nil)
	loc := source.Span{File: f.file.ID, Start: 0, End: 3}
	ctx.Report(rule.Descriptor{Node: f.ids, Loc: &loc, Message: "m"})
	require.Len(t, f.got, 1)
	assert.Equal(t, loc, f.got[0].Primary)
}

func TestReportFixRequiresFixableMeta(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(rule.Meta{}, nil)
	assert.Panics(t, func() {
		ctx.Report(rule.Descriptor{Node: f.ids, Message: "m", Fix: rule.ReplaceText(f.ids, "baz")})
	})

	ctx = f.context(rule.Meta{Fixable: true}, nil)
	ctx.Report(rule.Descriptor{Node: f.ids, Message: "m", Fix: rule.ReplaceText(f.ids, "baz")})
	require.Len(t, f.got, 1)
	require.True(t, f.got[0].Fixable())
	assert.Equal(t, "baz", f.got[0].Fix.Edits[0].NewText)
}

func TestReportRejectsBadDescriptors(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(rule.Meta{}, nil)
	assert.Panics(t, func() { ctx.Report(rule.Descriptor{Message: "m"}) })
	assert.Panics(t, func() { ctx.Report(rule.Descriptor{Node: f.ids, MessageID: "nope"}) })
}

func TestOptionsFallBackToDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := f.context(rule.Meta{DefaultOptions: []any{"always"}}, nil)
	assert.Equal(t, "always", ctx.Option(0))
	assert.Nil(t, ctx.Option(1))

	ctx = f.context(rule.Meta{DefaultOptions: []any{"always"}}, []any{"never"})
	assert.Equal(t, []any{"never"}, ctx.Options())
}

func TestSourceCode(t *testing.T) {
	f := newFixture(t)
	sc := rule.NewSourceCode(f.file, nil)
	assert.Equal(t, "bar", sc.GetText(f.ids))
	assert.Equal(t, []string{"foo;", "bar;"}, sc.Lines())
	assert.Equal(t, "", sc.Slice(source.Span{Start: 20, End: 30}))
	assert.Nil(t, sc.Comments())
	assert.Equal(t, "Program:exit", rule.Exit(rule.ProgramEnter))
}
