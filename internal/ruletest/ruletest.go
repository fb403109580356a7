// Package ruletest runs a rule over small sources and checks what it reports.
//
// Cases come in two kinds: Valid sources must produce no diagnostics, Invalid
// ones must produce exactly the listed errors in position order. When an
// Invalid case sets Output, one fix pass is applied and compared with it;
// without Output the case must not change the source.
package ruletest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedlint/internal/adapter"
	"typedlint/internal/diag"
	"typedlint/internal/engine"
	"typedlint/internal/fix"
	"typedlint/internal/parser"
	"typedlint/internal/rule"
	"typedlint/internal/source"
	"typedlint/internal/typedjs"
)

type Valid struct {
	Name       string
	Code       string
	Options    []any
	Globals    map[string]bool
	SourceType string
}

// Error is one expected report. Zero fields are not checked.
type Error struct {
	MessageID string
	Message   string
	Line      uint32
	Column    uint32
}

type Invalid struct {
	Name       string
	Code       string
	Options    []any
	Globals    map[string]bool
	SourceType string
	Errors     []Error
	// Output is the source after one fix pass; nil means no fix is expected.
	Output *string
}

// Fixed marks the expected output of an Invalid case.
func Fixed(s string) *string { return &s }

// Tester holds the parser the cases run with.
type Tester struct {
	Adapter *adapter.Adapter
	Parser  parser.Options
}

// New returns a tester parsing TypedJS with scope analysis.
func New(t testing.TB) *Tester {
	t.Helper()
	g, err := typedjs.Grammar()
	require.NoError(t, err)
	return &Tester{Adapter: adapter.New("typedjs", g, adapter.WithScopeAnalysis())}
}

// Run checks every case as a subtest.
func (tt *Tester) Run(t *testing.T, id string, r *rule.Rule, valid []Valid, invalid []Invalid) {
	t.Helper()
	for i, tc := range valid {
		t.Run(caseName("valid", i, tc.Name, tc.Code), func(t *testing.T) {
			diags, _, err := tt.Lint(id, r, tc.Code, tc.Options, tc.Globals, tc.SourceType)
			require.NoError(t, err)
			assert.Empty(t, diags, "unexpected reports for %q", tc.Code)
		})
	}
	for i, tc := range invalid {
		t.Run(caseName("invalid", i, tc.Name, tc.Code), func(t *testing.T) {
			require.NotEmpty(t, tc.Errors, "invalid case needs expected errors")
			diags, file, err := tt.Lint(id, r, tc.Code, tc.Options, tc.Globals, tc.SourceType)
			require.NoError(t, err)
			require.Len(t, diags, len(tc.Errors), "reports:\n%s", diag.Snapshot(diags, file, true))
			for j, want := range tc.Errors {
				got := diags[j]
				assert.Equal(t, id, got.RuleID)
				if want.MessageID != "" {
					assert.Equal(t, want.MessageID, got.MessageID, "error %d", j)
				}
				if want.Message != "" {
					assert.Equal(t, want.Message, got.Message, "error %d", j)
				}
				if want.Line != 0 {
					assert.Equal(t, want.Line, got.Start.Line, "error %d line", j)
				}
				if want.Column != 0 {
					assert.Equal(t, want.Column, got.Start.Col, "error %d column", j)
				}
			}
			out := tc.Code
			res, err := fix.Apply([]byte(tc.Code), diags)
			switch {
			case errors.Is(err, fix.ErrNoFixes):
			case err != nil:
				t.Fatalf("apply fixes: %v", err)
			default:
				out = string(res.Output)
			}
			if tc.Output == nil {
				assert.Equal(t, tc.Code, out, "no fix expected")
				return
			}
			assert.Equal(t, *tc.Output, out)
			if out != tc.Code {
				// the fixed source must still parse
				again, _, err := tt.Lint(id, r, out, tc.Options, tc.Globals, tc.SourceType)
				if assert.NoError(t, err, "fixed output does not parse") {
					for _, a := range res.Applied {
						for _, d := range again {
							if d.RuleID == id && overlaps(d.Primary, a.Range) {
								t.Errorf("fix %q is reported again at %d..%d: %s", a.Title, d.Primary.Start, d.Primary.End, d.Message)
							}
						}
					}
				}
			}
		})
	}
}

// overlaps reports whether a diagnostic touches fixed text. An empty fixed
// range (pure deletion) counts only when the diagnostic strictly contains it.
func overlaps(d, fixed source.Span) bool {
	if fixed.Empty() {
		return d.Start < fixed.Start && fixed.Start < d.End
	}
	if d.Empty() {
		return fixed.Start <= d.Start && d.Start < fixed.End
	}
	return d.Start < fixed.End && fixed.Start < d.End
}

// Lint runs one rule over code and returns its diagnostics.
func (tt *Tester) Lint(id string, r *rule.Rule, code string, opts []any, globals map[string]bool, sourceType string) ([]diag.Diagnostic, *source.File, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.ts", []byte(code)))
	popts := tt.Parser
	if sourceType != "" {
		popts.SourceType = sourceType
	}
	in, err := tt.Adapter.ParseForLinting(file, adapter.Options{Options: popts, Globals: globals})
	if err != nil {
		return nil, file, err
	}
	active := []engine.Active{{ID: id, Rule: r, Severity: diag.SevError, Options: opts}}
	diags, err := engine.Run(in, active, engine.Options{Globals: globals})
	return diags, file, err
}

func caseName(kind string, i int, name, code string) string {
	if name != "" {
		return fmt.Sprintf("%s/%d/%s", kind, i, name)
	}
	if len(code) > 30 {
		code = code[:30]
	}
	return fmt.Sprintf("%s/%d/%s", kind, i, code)
}
