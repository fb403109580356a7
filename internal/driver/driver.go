// Package driver runs the lint pipeline over files: read, parse, rules,
// directive filtering and fix passes, in parallel per file.
package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"typedlint/internal/adapter"
	"typedlint/internal/config"
	"typedlint/internal/diag"
	"typedlint/internal/directive"
	"typedlint/internal/engine"
	"typedlint/internal/fix"
	"typedlint/internal/metrics"
	"typedlint/internal/observ"
	"typedlint/internal/parser"
	"typedlint/internal/plugin"
	"typedlint/internal/source"
	"typedlint/internal/version"
)

// Options tune a Linter.
type Options struct {
	// Jobs bounds the number of files linted at once; <= 0 means GOMAXPROCS.
	Jobs int
	// Fix writes fixed files back.
	Fix bool
	// FixDryRun computes fixes without writing; FileResult.Output holds them.
	FixDryRun bool
	// MaxFixPasses bounds re-linting per file; <= 0 means fix.MaxPasses.
	MaxFixPasses int
	Directives   directive.FilterConfig
	Cache        *Cache
	Metrics      *metrics.Collector
	Sink         Sink
	// Timings records per-phase durations in the results.
	Timings bool
	// RunID tags the run; empty generates one.
	RunID string
}

func (o Options) fixing() bool { return o.Fix || o.FixDryRun }

// Linter is immutable after New and safe for concurrent use.
type Linter struct {
	cfg      *config.Effective
	parser   *adapter.Adapter
	rules    []engine.Active
	globals  map[string]bool
	parse    adapter.Options
	opts     Options
	cacheKey string
	locks    *fix.Locker
	// ruleTimes is nil unless Options.Timings is set.
	ruleTimes *observ.RuleTimes
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path string
	// File is the last linted version; after fixes it holds the fixed text.
	File *source.File
	// Source is the content as read, after BOM and CRLF normalisation.
	Source []byte
	// Output is the fixed content, nil when no fix applied.
	Output      []byte
	Diagnostics []diag.Diagnostic
	Suppressed  int
	Counts      diag.Counts
	Passes      int
	Applied     []fix.AppliedFix
	Fault       *engine.RuleFault
	// Err is a read or internal failure; it is also reported as a fatal diagnostic.
	Err      error
	WriteErr error
	Cached   bool
	Timing   *observ.Report
}

// Fixed reports whether fixes changed the file.
func (r *FileResult) Fixed() bool { return r.Output != nil }

// RunResult is the outcome of LintFiles. Files are in path order.
type RunResult struct {
	RunID    string
	Files    []*FileResult
	Counts   diag.Counts
	Duration time.Duration
	// Timing covers the run phases; FileTimings sums the per-file phases.
	Timing      *observ.Report
	FileTimings *observ.Report
	// RuleTimes are the slowest rules of the run.
	RuleTimes []observ.RuleTime
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *RunResult) HasErrors() bool { return r.Counts.Errors > 0 }

// Quiet drops warnings from every file and recounts. Used by --quiet.
func (r *RunResult) Quiet() {
	r.Counts = diag.Counts{}
	for _, f := range r.Files {
		if f == nil {
			continue
		}
		kept := f.Diagnostics[:0]
		for _, d := range f.Diagnostics {
			if d.Severity == diag.SevError {
				kept = append(kept, d)
			}
		}
		f.Diagnostics = kept
		f.Counts = diag.Count(kept)
		r.Counts.Add(f.Counts)
	}
}

// WriteErrors collects the failed fix writes.
func (r *RunResult) WriteErrors() []error {
	var errs []error
	for _, f := range r.Files {
		if f != nil && f.WriteErr != nil {
			errs = append(errs, f.WriteErr)
		}
	}
	return errs
}

// New resolves the parser and the active rules of cfg against catalog.
func New(cfg *config.Effective, catalog *plugin.Catalog, opts Options) (*Linter, error) {
	if cfg == nil || catalog == nil {
		return nil, errors.New("driver: configuration and catalog are required")
	}
	p, ok := catalog.Parser(cfg.Parser)
	if !ok {
		return nil, &config.Error{UnknownParsers: []string{cfg.Parser}}
	}
	enabled := cfg.Enabled()
	rules := make([]engine.Active, 0, len(enabled))
	var unknown []string
	for _, entry := range enabled {
		r, ok := catalog.Rule(entry.ID)
		if !ok {
			unknown = append(unknown, entry.ID)
			continue
		}
		rules = append(rules, engine.Active{
			ID:       entry.ID,
			Rule:     r,
			Severity: entry.Level.Severity(),
			Options:  entry.Options,
		})
	}
	if len(unknown) > 0 {
		return nil, &config.Error{UnknownRules: unknown}
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}

	globals := cfg.ResolvedGlobals()
	l := &Linter{
		cfg:     cfg,
		parser:  p,
		rules:   rules,
		globals: globals,
		parse: adapter.Options{
			Options: parser.Options{
				EcmaVersion: cfg.LanguageOptions.EcmaVersion,
				SourceType:  cfg.LanguageOptions.SourceType,
			},
			Globals: globals,
		},
		opts:  opts,
		locks: &fix.Locker{},
	}
	if opts.Timings {
		l.ruleTimes = observ.NewRuleTimes()
	}
	l.cacheKey = fmt.Sprintf("%s/%s/%t/%d", version.Version, cfg.Hash(), opts.Directives.Disabled, opts.Directives.ReportUnused)
	return l, nil
}

// RunID tags this linter's runs.
func (l *Linter) RunID() string { return l.opts.RunID }

// Config is the effective configuration the linter was built from.
func (l *Linter) Config() *config.Effective { return l.cfg }

// Parser is the adapter selected by the configuration.
func (l *Linter) Parser() *adapter.Adapter { return l.parser }

// ParseOptions are the language options every file is parsed with.
func (l *Linter) ParseOptions() adapter.Options { return l.parse }

// WithSink returns a linter sharing l's rules and write locks that reports
// progress to sink.
func (l *Linter) WithSink(sink Sink) *Linter {
	clone := *l
	clone.opts.Sink = sink
	return &clone
}

// Rules are the active rules in id order.
func (l *Linter) Rules() []engine.Active { return l.rules }

func (l *Linter) newTimer() *observ.Timer {
	if !l.opts.Timings {
		return nil
	}
	return observ.NewTimer()
}

func timingReport(t *observ.Timer) *observ.Report {
	if t == nil {
		return nil
	}
	rep := t.Report()
	return &rep
}
