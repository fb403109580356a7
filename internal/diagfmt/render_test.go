package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"typedlint/internal/diag"
	"typedlint/internal/driver"
	"typedlint/internal/source"
)

// newResult builds a FileResult for content with one diagnostic per span.
func newResult(path, content string, diags ...diag.Diagnostic) *driver.FileResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(content))
	file := fs.Get(id)
	res := &driver.FileResult{Path: path, File: file, Source: file.Content}
	for _, d := range diags {
		d.Primary.File = id
		res.Diagnostics = append(res.Diagnostics, d.Locate(file))
	}
	res.Counts = diag.Count(res.Diagnostics)
	return res
}

func newRun(files ...*driver.FileResult) *driver.RunResult {
	run := &driver.RunResult{RunID: "run-1", Files: files}
	for _, f := range files {
		run.Counts.Add(f.Counts)
	}
	return run
}

func noVar() diag.Diagnostic {
	d := diag.New(diag.SevError, "no-var", source.Span{Start: 0, End: 10}, "Unexpected var, use let or const instead.")
	d.Fix = &diag.Fix{Edits: []diag.TextEdit{{Span: source.Span{Start: 0, End: 3}, NewText: "let"}}}
	return d
}

func noDebugger() diag.Diagnostic {
	return diag.New(diag.SevWarning, "no-debugger", source.Span{Start: 11, End: 20}, "Unexpected 'debugger' statement.")
}

var testOpts = Opts{PathMode: PathModeBasename}

func TestStylish(t *testing.T) {
	run := newRun(
		newResult("/proj/src/a.js", "var x = 1;\ndebugger;\n", noVar(), noDebugger()),
		newResult("/proj/src/b.js", "let ok = 1;\n"),
	)
	var buf bytes.Buffer
	if err := Stylish(&buf, run, testOpts); err != nil {
		t.Fatalf("Stylish: %v", err)
	}
	want := "\na.js:\n" +
		"  1:1  error  Unexpected var, use let or const instead. (no-var)\n" +
		"  2:1  warning  Unexpected 'debugger' statement. (no-debugger)\n" +
		"\n✨ Done.\n" +
		"Found 1 error and 1 warning (1 fixable).\n"
	if got := buf.String(); got != want {
		t.Errorf("output mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestStylishClean(t *testing.T) {
	run := newRun(newResult("/proj/a.js", "let a = 1;\n"))
	var buf bytes.Buffer
	if err := Stylish(&buf, run, testOpts); err != nil {
		t.Fatalf("Stylish: %v", err)
	}
	if got, want := buf.String(), "\n✨ Done.\nNo issues found! 🎉\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStylishFatal(t *testing.T) {
	fatal := diag.NewFatal(source.Span{Start: 4, End: 4}, source.LineCol{Line: 1, Col: 5}, "Parsing error: Unexpected token")
	res := newResult("/proj/bad.js", "let = ;\n")
	res.Diagnostics = []diag.Diagnostic{fatal}
	res.Counts = diag.Count(res.Diagnostics)
	var buf bytes.Buffer
	if err := Stylish(&buf, newRun(res), testOpts); err != nil {
		t.Fatalf("Stylish: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "  1:5  error  Parsing error: Unexpected token\n") {
		t.Errorf("fatal line missing or carries a rule id:\n%s", out)
	}
	if !strings.Contains(out, "Found 1 error and 0 warnings.") {
		t.Errorf("summary mismatch:\n%s", out)
	}
}

func TestStylishRelativePath(t *testing.T) {
	run := newRun(newResult("/proj/src/a.js", "var x = 1;\n", noVar()))
	var buf bytes.Buffer
	if err := Stylish(&buf, run, Opts{PathMode: PathModeRelative, BaseDir: "/proj"}); err != nil {
		t.Fatalf("Stylish: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\nsrc/a.js:\n") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}
}

func TestCompact(t *testing.T) {
	run := newRun(newResult("/proj/a.js", "var x = 1;\ndebugger;\n", noVar(), noDebugger()))
	var buf bytes.Buffer
	if err := Compact(&buf, run, testOpts); err != nil {
		t.Fatalf("Compact: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"a.js: line 1, col 1, Error - Unexpected var, use let or const instead. (no-var)\n",
		"a.js: line 2, col 1, Warning - Unexpected 'debugger' statement. (no-debugger)\n",
		"\n2 problems\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestJSON(t *testing.T) {
	run := newRun(newResult("/proj/a.js", "var x = 1;\ndebugger;\n", noVar(), noDebugger()))
	var buf bytes.Buffer
	if err := JSON(&buf, run, Opts{PathMode: PathModeBasename, IncludePreviews: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var report ReportJSON
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if report.RunID != "run-1" || report.ErrorCount != 1 || report.WarningCount != 1 || report.FixableErrorCount != 1 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
	file := report.Results[0]
	if file.FilePath != "a.js" || len(file.Messages) != 2 {
		t.Fatalf("unexpected file entry: %+v", file)
	}
	m := file.Messages[0]
	if m.RuleID == nil || *m.RuleID != "no-var" || m.Severity != 2 || m.Line != 1 || m.Column != 1 {
		t.Errorf("unexpected first message: %+v", m)
	}
	if m.Fix == nil || len(m.Fix.Edits) != 1 {
		t.Fatalf("expected a fix, got %+v", m.Fix)
	}
	edit := m.Fix.Edits[0]
	if edit.Range != [2]uint32{0, 3} || edit.Text != "let" {
		t.Errorf("unexpected edit: %+v", edit)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "let x = 1;" {
		t.Errorf("unexpected preview: %+v", edit)
	}
	if file.Messages[1].Severity != 1 || file.Messages[1].Fix != nil {
		t.Errorf("unexpected second message: %+v", file.Messages[1])
	}
}

func TestJSONFatalHasNullRule(t *testing.T) {
	res := newResult("/proj/bad.js", "let = ;\n")
	res.Diagnostics = []diag.Diagnostic{
		diag.NewFatal(source.Span{Start: 4, End: 4}, source.LineCol{Line: 1, Col: 5}, "Parsing error: Unexpected token"),
	}
	res.Counts = diag.Count(res.Diagnostics)
	var buf bytes.Buffer
	if err := JSON(&buf, newRun(res), testOpts); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"ruleId": null`) || !strings.Contains(out, `"fatal": true`) {
		t.Errorf("fatal message not encoded as expected:\n%s", out)
	}
	if !strings.Contains(out, `"fatalErrorCount": 1`) {
		t.Errorf("fatal count missing:\n%s", out)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	if err := Render(&bytes.Buffer{}, newRun(), Format("xml"), testOpts); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, err := ParseFormat("XML"); err == nil {
		t.Fatal("ParseFormat accepted xml")
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat(JSON) = %q, %v", f, err)
	}
}
