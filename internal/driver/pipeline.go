package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"typedlint/internal/diag"
	"typedlint/internal/directive"
	"typedlint/internal/engine"
	"typedlint/internal/fix"
	"typedlint/internal/observ"
	"typedlint/internal/parser"
	"typedlint/internal/source"
	"typedlint/internal/trace"
)

// LintText lints text under name without touching the file system. Fixes
// are computed when fixing is enabled and returned in Output.
func (l *Linter) LintText(name string, text []byte) (*FileResult, error) {
	return l.LintTextContext(context.Background(), name, text)
}

// LintTextContext is LintText with the tracer and span labels of ctx.
func (l *Linter) LintTextContext(ctx context.Context, name string, text []byte) (*FileResult, error) {
	content, flags := source.Normalize(text)
	timer := l.newTimer()
	res, err := l.lintSource(ctx, source.NewFileSet(), name, content, flags|source.FileVirtual, timer)
	if res != nil {
		res.Timing = timingReport(timer)
	}
	return res, err
}

// lintSource parses and lints content. With fixing on it converges over fix
// passes; Diagnostics are those of the final text. Syntax errors and rule
// faults become diagnostics, other failures are returned.
func (l *Linter) lintSource(ctx context.Context, fs *source.FileSet, path string, content []byte, flags source.FileFlags, timer *observ.Timer) (*FileResult, error) {
	res := &FileResult{Path: path, Source: content}
	tr := trace.FromContext(ctx)
	ctx = trace.WithFile(ctx, path)

	lint := func(pass int, text []byte) ([]diag.Diagnostic, error) {
		file := fs.Get(fs.Add(path, text, flags))
		res.File = file
		res.Fault = nil
		res.Suppressed = 0

		idx := timer.Begin("parse")
		l.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
		sp, _ := trace.Start(ctx, trace.ScopeFile, "parse")
		input, err := l.parser.ParseForLinting(file, l.parse)
		sp.End("")
		timer.End(idx, "")
		if err != nil {
			var se *parser.SyntaxError
			if errors.As(err, &se) {
				return []diag.Diagnostic{diag.NewFatal(se.Span, se.Pos, "Parsing error: "+se.Msg)}, nil
			}
			return nil, err
		}

		idx = timer.Begin("rules")
		l.emit(Event{File: path, Stage: StageLint, Status: StatusWorking})
		sp, _ = trace.Start(ctx, trace.ScopeFile, "rules")
		eopts := engine.Options{Globals: l.globals}
		if l.ruleTimes != nil {
			eopts.RuleTime = l.ruleTimes.Add
		}
		if tr.Level().ShouldEmit(trace.ScopeNode) {
			parent := sp.ID()
			eopts.Observer = func(ruleID, event string) {
				trace.Point(tr, trace.ScopeNode, ruleID, event, parent)
			}
		}
		diags, err := engine.Run(input, l.rules, eopts)
		if err != nil {
			var fault *engine.RuleFault
			if !errors.As(err, &fault) {
				sp.End(err.Error())
				timer.End(idx, "")
				return nil, err
			}
			res.Fault = fault
			trace.Error(tr, trace.ScopeFile, "rule-fault", fault.Error(), sp.ID())
			diags = append(diags, faultDiagnostic(file, fault))
		}
		sp.End(fmt.Sprintf("pass %d: %d problems", pass, len(diags)))
		timer.End(idx, "")

		kept := directive.Filter(file, input.AST.Comments, diags, l.opts.Directives)
		res.Suppressed = len(kept.Suppressed)
		return kept.Kept, nil
	}

	if l.opts.fixing() {
		out, err := fix.Converge(content, l.opts.MaxFixPasses, lint)
		if err != nil {
			return res, err
		}
		res.Diagnostics = out.Diagnostics
		res.Passes = out.Passes
		res.Applied = out.Applied
		if out.Changed() {
			res.Output = out.Output
		}
	} else {
		diags, err := lint(0, content)
		if err != nil {
			return res, err
		}
		res.Diagnostics = diags
	}
	diag.Sort(res.Diagnostics)
	res.Counts = diag.Count(res.Diagnostics)
	return res, nil
}

// lintFile runs the whole per-file pipeline. Failures are folded into the
// result so that one file never stops the run.
func (l *Linter) lintFile(ctx context.Context, fs *source.FileSet, path string) *FileResult {
	started := time.Now()
	sp, ctx := trace.Start(trace.WithFile(ctx, path), trace.ScopeFile, "file")
	timer := l.newTimer()

	idx := timer.Begin("read")
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from ExpandPaths
	timer.End(idx, "")
	if err != nil {
		res := l.failed(fs, path, nil, 0, fmt.Errorf("cannot read file: %w", err))
		l.finish(res, sp, timer, started)
		return res
	}
	content, flags := source.Normalize(raw)

	if res, ok := l.cached(fs, path, content, flags); ok {
		l.finish(res, sp, timer, started)
		return res
	}

	res, err := l.lintSource(ctx, fs, path, content, flags, timer)
	if err != nil {
		res = l.failed(fs, path, content, flags, err)
		l.finish(res, sp, timer, started)
		return res
	}

	if res.Fixed() && l.opts.Fix && !l.opts.FixDryRun {
		idx := timer.Begin("write")
		l.emit(Event{File: path, Stage: StageFix, Status: StatusWorking})
		unlock := l.locks.Lock(path)
		res.WriteErr = fix.Write(path, fix.RestoreEndings(source.ScanEndings(raw), content, res.Output))
		unlock()
		timer.End(idx, "")
		if res.WriteErr != nil {
			trace.Error(trace.FromContext(ctx), trace.ScopeFile, "fix-write", res.WriteErr.Error(), sp.ID())
		}
	}
	l.store(res)
	l.finish(res, sp, timer, started)
	return res
}

// cached serves a file from the result cache. When fixing, entries with
// fixable problems are linted again.
func (l *Linter) cached(fs *source.FileSet, path string, content []byte, flags source.FileFlags) (*FileResult, bool) {
	if l.opts.Cache == nil {
		return nil, false
	}
	file := fs.Get(fs.Add(path, content, flags))
	diags, ok, err := l.opts.Cache.Get(file, l.cacheKey)
	if err != nil || !ok {
		l.opts.Metrics.CacheLookup(false)
		return nil, false
	}
	counts := diag.Count(diags)
	if l.opts.fixing() && counts.Fixable() > 0 {
		l.opts.Metrics.CacheLookup(false)
		return nil, false
	}
	l.opts.Metrics.CacheLookup(true)
	return &FileResult{
		Path:        path,
		File:        file,
		Source:      content,
		Diagnostics: diags,
		Counts:      counts,
		Cached:      true,
	}, true
}

// store caches results that describe what is on disk now.
func (l *Linter) store(res *FileResult) {
	if l.opts.Cache == nil || res.Fault != nil || res.Err != nil || res.File == nil || res.File.Virtual() {
		return
	}
	if res.Fixed() && (l.opts.FixDryRun || res.WriteErr != nil) {
		return
	}
	_ = l.opts.Cache.Put(&CacheEntry{
		Path:        res.Path,
		ContentHash: res.File.Hash,
		ConfigKey:   l.cacheKey,
		Diagnostics: res.Diagnostics,
	})
}

// failed turns a read or internal error into a fatal result.
func (l *Linter) failed(fs *source.FileSet, path string, content []byte, flags source.FileFlags, err error) *FileResult {
	file := fs.Get(fs.Add(path, content, flags))
	d := diag.NewFatal(source.Span{File: file.ID}, source.LineCol{Line: 1, Col: 1}, err.Error())
	res := &FileResult{
		Path:        path,
		File:        file,
		Source:      content,
		Diagnostics: []diag.Diagnostic{d},
		Err:         err,
	}
	res.Counts = diag.Count(res.Diagnostics)
	return res
}

func (l *Linter) finish(res *FileResult, sp *trace.Span, timer *observ.Timer, started time.Time) {
	elapsed := time.Since(started)
	res.Timing = timingReport(timer)

	status := StatusDone
	if res.Counts.Fatal > 0 || res.WriteErr != nil {
		status = StatusError
	}
	err := res.Err
	if err == nil {
		err = res.WriteErr
	}
	l.emit(Event{File: res.Path, Stage: StageLint, Status: status, Err: err, Elapsed: elapsed})
	l.record(res, elapsed)

	detail := fmt.Sprintf("%d errors, %d warnings", res.Counts.Errors, res.Counts.Warnings)
	if res.Cached {
		detail += " (cached)"
	}
	if res.File != nil {
		sp.WithExtra("lines", strconv.Itoa(res.File.Lines()))
	}
	sp.End(detail)
}

func (l *Linter) record(res *FileResult, elapsed time.Duration) {
	m := l.opts.Metrics
	if m == nil {
		return
	}
	outcome := "ok"
	switch {
	case res.Cached:
		outcome = "cached"
	case res.Fault != nil:
		outcome = "crashed"
	case res.Counts.Fatal > 0:
		outcome = "fatal"
	}
	m.File(outcome, elapsed)
	for i := range res.Diagnostics {
		m.Problem(res.Diagnostics[i].RuleID, res.Diagnostics[i].Severity.String())
	}
	for _, a := range res.Applied {
		m.Fix(a.RuleID)
	}
}

// faultDiagnostic reports a crashed rule at the node it crashed on.
func faultDiagnostic(file *source.File, f *engine.RuleFault) diag.Diagnostic {
	sp := f.Span
	sp.File = file.ID
	d := diag.New(diag.SevError, f.RuleID, sp, fmt.Sprintf("Rule crashed: %v", f.Cause)).Locate(file)
	d.Fatal = true
	if f.NodeType != "" {
		d = d.WithNote(sp, "while visiting "+f.NodeType)
	}
	return d
}
