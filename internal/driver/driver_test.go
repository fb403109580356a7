package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"typedlint/internal/ast"
	"typedlint/internal/config"
	"typedlint/internal/diag"
	"typedlint/internal/driver"
	"typedlint/internal/engine"
	"typedlint/internal/plugin"
	"typedlint/internal/plugin/typedjs"
	"typedlint/internal/rule"
)

// testPlugin carries rules used only by these tests.
func testPlugin() *plugin.Plugin {
	return &plugin.Plugin{
		Meta: plugin.Meta{Name: "test"},
		Rules: map[string]*rule.Rule{
			"functions": {
				Meta: rule.Meta{Type: rule.TypeProblem, Messages: map[string]string{"fn": "function here"}},
				Create: func(ctx *rule.Context) rule.Listeners {
					return rule.Listeners{
						"FunctionDeclaration": func(n ast.Node) {
							ctx.Report(rule.Descriptor{Node: n, MessageID: "fn"})
						},
					}
				},
			},
			"boom": {
				Create: func(ctx *rule.Context) rule.Listeners {
					return rule.Listeners{
						"DebuggerStatement": func(ast.Node) { panic("boom") },
					}
				},
			},
		},
	}
}

func newCatalog(t *testing.T) *plugin.Catalog {
	t.Helper()
	ts, err := typedjs.New()
	if err != nil {
		t.Fatalf("typedjs plugin: %v", err)
	}
	catalog, err := plugin.NewCatalog(plugin.Core(), ts, testPlugin())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return catalog
}

func newLinter(t *testing.T, presets []string, rules map[string]config.Level, opts driver.Options) *driver.Linter {
	t.Helper()
	catalog := newCatalog(t)
	base, err := config.Resolve(catalog, presets)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	user := config.Preset{Name: "test", Rules: map[string]config.RuleSetting{}}
	for id, lvl := range rules {
		user.Rules[id] = config.RuleSetting{Level: lvl}
	}
	cfg, err := config.Compose(catalog, base, user)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	l, err := driver.New(cfg, catalog, opts)
	if err != nil {
		t.Fatalf("driver.New: %v", err)
	}
	return l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTypedRecommendedIsSilent(t *testing.T) {
	l := newLinter(t, []string{"typedjs/recommended"}, nil, driver.Options{})
	res, err := l.LintText("a.ts", []byte("let x: number = 1;\n"))
	if err != nil {
		t.Fatalf("LintText: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", res.Diagnostics)
	}
}

func TestSyntaxErrorIsFatalDiagnostic(t *testing.T) {
	l := newLinter(t, nil, map[string]config.Level{"no-var": config.LevelError}, driver.Options{})
	res, err := l.LintText("a.js", []byte("let x: number = 1;\n"))
	if err != nil {
		t.Fatalf("LintText: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if !d.Fatal || d.RuleID != "" || d.Severity != diag.SevError {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
	if d.Start.Line != 1 || d.Start.Col != 6 || d.Primary.Start != 5 {
		t.Errorf("position = %d:%d (offset %d), want 1:6 (offset 5)", d.Start.Line, d.Start.Col, d.Primary.Start)
	}
	if !strings.HasPrefix(d.Message, "Parsing error: ") {
		t.Errorf("message = %q", d.Message)
	}
	if res.Counts.Errors != 1 || res.Counts.Fatal != 1 {
		t.Errorf("counts = %+v", res.Counts)
	}
}

func TestCountsBySeverity(t *testing.T) {
	l := newLinter(t, nil, map[string]config.Level{
		"no-var":   config.LevelError,
		"eqeqeq":   config.LevelWarn,
		"no-undef": config.LevelOff,
	}, driver.Options{})
	res, err := l.LintText("a.js", []byte("var a = 1;\nvar b = 2;\nif (a == b) {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Counts.Errors != 2 || res.Counts.Warnings != 1 {
		t.Errorf("counts = %+v, want 2 errors and 1 warning", res.Counts)
	}
	if res.Counts.FixableErrors != 2 {
		t.Errorf("fixable errors = %d, want 2", res.Counts.FixableErrors)
	}
	if res.Output != nil {
		t.Errorf("fixes applied without fixing enabled")
	}
}

func TestReportsEachFunction(t *testing.T) {
	l := newLinter(t, nil, map[string]config.Level{"test/functions": config.LevelError}, driver.Options{})
	res, err := l.LintText("a.js", []byte("function a() {}\n\n  function b() {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]uint32{{1, 1}, {3, 3}}
	if len(res.Diagnostics) != len(want) {
		t.Fatalf("diagnostics = %+v", res.Diagnostics)
	}
	for i, w := range want {
		d := res.Diagnostics[i]
		if d.Start.Line != w[0] || d.Start.Col != w[1] || d.RuleID != "test/functions" || d.Message != "function here" {
			t.Errorf("diagnostic %d = %+v, want %d:%d", i, d, w[0], w[1])
		}
	}
}

func TestUnknownRuleFailsBeforeLinting(t *testing.T) {
	catalog := newCatalog(t)
	cfg := &config.Effective{
		Parser: config.DefaultParser,
		Rules:  []config.RuleEntry{{ID: "no-such-rule", Level: config.LevelError}},
	}
	_, err := driver.New(cfg, catalog, driver.Options{})
	var cfgErr *config.Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *config.Error, got %v", err)
	}
	if len(cfgErr.UnknownRules) != 1 || cfgErr.UnknownRules[0] != "no-such-rule" {
		t.Errorf("unknown rules = %v", cfgErr.UnknownRules)
	}
}

func TestRuleCrashKeepsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "var x = 1;\ndebugger;\n")
	writeFile(t, filepath.Join(dir, "b.js"), "var y = 2;\n")

	l := newLinter(t, nil, map[string]config.Level{
		"no-var":    config.LevelError,
		"test/boom": config.LevelError,
	}, driver.Options{Jobs: 2})
	run, err := l.LintFiles(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("LintFiles: %v", err)
	}
	if len(run.Files) != 2 {
		t.Fatalf("files = %d", len(run.Files))
	}
	crashed := run.Files[0]
	var fault *engine.RuleFault
	if crashed.Fault == nil || !errors.As(crashed.Fault, &fault) || fault.RuleID != "test/boom" {
		t.Fatalf("expected test/boom fault, got %v", crashed.Fault)
	}
	var sawVar, sawCrash bool
	for _, d := range crashed.Diagnostics {
		switch {
		case d.RuleID == "no-var":
			sawVar = true
		case d.RuleID == "test/boom" && strings.Contains(d.Message, "Rule crashed"):
			sawCrash = true
		}
	}
	if !sawVar || !sawCrash {
		t.Errorf("diagnostics = %+v", crashed.Diagnostics)
	}
	if got := run.Files[1].Counts.Errors; got != 1 {
		t.Errorf("b.js errors = %d, want 1", got)
	}
	if !run.HasErrors() {
		t.Errorf("run should have errors")
	}
}

func TestFixWritesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFile(t, path, "var a = 1;\r\nconsole.log(a);\r\n")

	l := newLinter(t, nil, map[string]config.Level{"no-var": config.LevelError}, driver.Options{Fix: true})
	run, err := l.LintFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	res := run.Files[0]
	if res.WriteErr != nil {
		t.Fatalf("write: %v", res.WriteErr)
	}
	if len(res.Applied) != 1 || res.Counts.Errors != 0 {
		t.Errorf("applied = %d, counts = %+v", len(res.Applied), res.Counts)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "let a = 1;\r\nconsole.log(a);\r\n"; string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestFixKeepsMixedLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFile(t, path, "b();\r\nc();\nvar a = 1;\nd(a);\r\n")

	l := newLinter(t, nil, map[string]config.Level{"no-var": config.LevelError}, driver.Options{Fix: true})
	run, err := l.LintFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if res := run.Files[0]; res.WriteErr != nil || len(res.Applied) != 1 {
		t.Fatalf("write = %v, applied = %d", res.WriteErr, len(res.Applied))
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "b();\r\nc();\nlet a = 1;\nd(a);\r\n"; string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestFixDryRunLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	writeFile(t, path, "var a = 1;\n")

	l := newLinter(t, nil, map[string]config.Level{"no-var": config.LevelError}, driver.Options{FixDryRun: true})
	run, err := l.LintFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	res := run.Files[0]
	if string(res.Output) != "let a = 1;\n" || string(res.Source) != "var a = 1;\n" {
		t.Errorf("output = %q, source = %q", res.Output, res.Source)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "var a = 1;\n" {
		t.Errorf("dry run wrote the file: %q", got)
	}
}

func TestCacheServesUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "src", "a.js")
	writeFile(t, path, "var a = 1;\n")
	cache, err := driver.OpenCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	rules := map[string]config.Level{"no-var": config.LevelWarn}

	first, err := newLinter(t, nil, rules, driver.Options{Cache: cache}).LintFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	second, err := newLinter(t, nil, rules, driver.Options{Cache: cache}).LintFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cached flags = %v, %v", first.Files[0].Cached, second.Files[0].Cached)
	}
	a, b := first.Files[0].Diagnostics, second.Files[0].Diagnostics
	if len(a) != 1 || len(b) != 1 || a[0].Message != b[0].Message || a[0].Start != b[0].Start {
		t.Errorf("cached diagnostics differ: %+v vs %+v", a, b)
	}

	// другая конфигурация, кэш не подходит
	third, err := newLinter(t, nil, map[string]config.Level{"no-var": config.LevelError}, driver.Options{Cache: cache}).
		LintFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Errorf("cache hit across configurations")
	}
}

func TestProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "let a = 1;\n")
	writeFile(t, filepath.Join(dir, "b.js"), "let b = ;\n")

	var mu sync.Mutex
	last := map[string]driver.Status{}
	sink := driver.SinkFunc(func(ev driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		last[ev.File] = ev.Status
	})
	l := newLinter(t, nil, nil, driver.Options{Sink: sink})
	if _, err := l.LintFiles(context.Background(), []string{dir}); err != nil {
		t.Fatal(err)
	}
	if got := last[filepath.Join(dir, "a.js")]; got != driver.StatusDone {
		t.Errorf("a.js status = %s", got)
	}
	if got := last[filepath.Join(dir, "b.js")]; got != driver.StatusError {
		t.Errorf("b.js status = %s", got)
	}
	if got := last[""]; got != driver.StatusDone {
		t.Errorf("run status = %s", got)
	}
}

func TestTimings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "let a = 1;\n")
	l := newLinter(t, nil, map[string]config.Level{"no-var": config.LevelError}, driver.Options{Timings: true})
	run, err := l.LintFiles(context.Background(), []string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if run.Timing == nil || run.FileTimings == nil {
		t.Fatalf("timings not recorded")
	}
	names := map[string]bool{}
	for _, p := range run.FileTimings.Phases {
		names[p.Name] = true
	}
	for _, want := range []string{"read", "parse", "rules"} {
		if !names[want] {
			t.Errorf("missing phase %q in %+v", want, run.FileTimings.Phases)
		}
	}
	if len(run.RuleTimes) != 1 || run.RuleTimes[0].Rule != "no-var" {
		t.Fatalf("rule times = %+v", run.RuleTimes)
	}
}

func TestCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.js"), "let a = 1;\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := newLinter(t, nil, nil, driver.Options{})
	if _, err := l.LintFiles(ctx, []string{dir}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestQuietDropsWarnings(t *testing.T) {
	l := newLinter(t, nil, map[string]config.Level{
		"no-var": config.LevelError,
		"eqeqeq": config.LevelWarn,
	}, driver.Options{})
	res, err := l.LintText("a.js", []byte("var a = 1;\nif (a == 2) {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	run := &driver.RunResult{Files: []*driver.FileResult{res}, Counts: res.Counts}
	run.Quiet()
	if run.Counts.Warnings != 0 || run.Counts.Errors != 1 {
		t.Errorf("counts after Quiet = %+v", run.Counts)
	}
	for _, d := range res.Diagnostics {
		if d.Severity != diag.SevError {
			t.Errorf("warning kept: %+v", d)
		}
	}
}
