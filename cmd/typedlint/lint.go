package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"typedlint/internal/config"
	"typedlint/internal/diag"
	"typedlint/internal/diagfmt"
	"typedlint/internal/directive"
	"typedlint/internal/driver"
	"typedlint/internal/metrics"
	"typedlint/internal/plugin"
	"typedlint/internal/ui"
)

// lintOptions are the flags that shape one lint run.
type lintOptions struct {
	fix            bool
	fixDryRun      bool
	maxFixPasses   int
	format         diagfmt.Format
	outputFile     string
	pathMode       diagfmt.PathMode
	maxWarnings    int
	quiet          bool
	jobs           int
	cache          bool
	cacheLocation  string
	ui             switchMode
	watch          bool
	metricsOut     string
	timings        bool
	stdin          bool
	stdinFilename  string
	reportUnused   diag.Severity
	noInlineConfig bool
}

func addLintFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("fix", false, "automatically fix problems and write the files")
	f.Bool("fix-dry-run", false, "compute fixes and print them as a diff without writing")
	f.Int("max-fix-passes", 0, "max fix and re-lint passes per file (0=default)")
	f.StringP("format", "f", "stylish", "report format (stylish|compact|json)")
	f.StringP("output-file", "o", "", "write the report to a file")
	f.String("path-mode", "relative", "how file paths are shown (relative|absolute|basename|auto)")
	f.Int("max-warnings", -1, "fail when more warnings than this are found (-1 disables)")
	f.Bool("quiet", false, "report errors only")
	f.Int("jobs", 0, "max files linted in parallel (0=auto)")
	f.Bool("cache", false, "only lint files changed since the last run")
	f.String("cache-location", "", "cache directory (default: user cache dir)")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.Bool("watch", false, "re-lint when files change")
	f.String("metrics-out", "", "write Prometheus metrics in text format to file")
	f.Bool("stdin", false, "lint source read from standard input")
	f.String("stdin-filename", "<stdin>", "file name reported for --stdin")
	f.Bool("report-unused-disable-directives", false, "report disable directives that suppress nothing")
	f.String("report-unused-disable-directives-severity", "", "severity for unused directives (warn|error)")
	f.Bool("no-inline-config", false, "ignore typedlint-disable comments")
	addConfigFlags(cmd)
}

func readLintOptions(cmd *cobra.Command) (lintOptions, error) {
	var o lintOptions
	var err error
	f := cmd.Flags()
	if o.fix, err = f.GetBool("fix"); err != nil {
		return o, fmt.Errorf("failed to get fix flag: %w", err)
	}
	if o.fixDryRun, err = f.GetBool("fix-dry-run"); err != nil {
		return o, fmt.Errorf("failed to get fix-dry-run flag: %w", err)
	}
	if o.maxFixPasses, err = f.GetInt("max-fix-passes"); err != nil {
		return o, fmt.Errorf("failed to get max-fix-passes flag: %w", err)
	}
	formatStr, err := f.GetString("format")
	if err != nil {
		return o, fmt.Errorf("failed to get format flag: %w", err)
	}
	if o.format, err = diagfmt.ParseFormat(formatStr); err != nil {
		return o, err
	}
	if o.outputFile, err = f.GetString("output-file"); err != nil {
		return o, fmt.Errorf("failed to get output-file flag: %w", err)
	}
	pathMode, err := f.GetString("path-mode")
	if err != nil {
		return o, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if o.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return o, err
	}
	if o.maxWarnings, err = f.GetInt("max-warnings"); err != nil {
		return o, fmt.Errorf("failed to get max-warnings flag: %w", err)
	}
	if o.quiet, err = f.GetBool("quiet"); err != nil {
		return o, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if o.jobs, err = f.GetInt("jobs"); err != nil {
		return o, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if o.cache, err = f.GetBool("cache"); err != nil {
		return o, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if o.cacheLocation, err = f.GetString("cache-location"); err != nil {
		return o, fmt.Errorf("failed to get cache-location flag: %w", err)
	}
	uiStr, err := f.GetString("ui")
	if err != nil {
		return o, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if o.ui, err = parseSwitch("ui", uiStr); err != nil {
		return o, err
	}
	if o.watch, err = f.GetBool("watch"); err != nil {
		return o, fmt.Errorf("failed to get watch flag: %w", err)
	}
	if o.metricsOut, err = f.GetString("metrics-out"); err != nil {
		return o, fmt.Errorf("failed to get metrics-out flag: %w", err)
	}
	if o.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return o, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if o.stdin, err = f.GetBool("stdin"); err != nil {
		return o, fmt.Errorf("failed to get stdin flag: %w", err)
	}
	if o.stdinFilename, err = f.GetString("stdin-filename"); err != nil {
		return o, fmt.Errorf("failed to get stdin-filename flag: %w", err)
	}
	reportUnused, err := f.GetBool("report-unused-disable-directives")
	if err != nil {
		return o, fmt.Errorf("failed to get report-unused-disable-directives flag: %w", err)
	}
	severity, err := f.GetString("report-unused-disable-directives-severity")
	if err != nil {
		return o, fmt.Errorf("failed to get report-unused-disable-directives-severity flag: %w", err)
	}
	switch {
	case severity != "":
		if o.reportUnused, err = diag.ParseSeverity(severity); err != nil {
			return o, err
		}
	case reportUnused:
		o.reportUnused = diag.SevError
	}
	if o.noInlineConfig, err = f.GetBool("no-inline-config"); err != nil {
		return o, fmt.Errorf("failed to get no-inline-config flag: %w", err)
	}

	if o.fix && o.fixDryRun {
		return o, errors.New("--fix and --fix-dry-run are mutually exclusive")
	}
	if o.stdin && (o.fix || o.watch) {
		return o, errors.New("--stdin cannot be combined with --fix or --watch")
	}
	return o, nil
}

// runLint is the root command: compose configuration, lint, report.
func runLint(cmd *cobra.Command, args []string) error {
	opts, err := readLintOptions(cmd)
	if err != nil {
		return err
	}
	cf, err := readConfigFlags(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 && !opts.stdin {
		return errors.New("no files specified, see --help")
	}

	tracer, cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()
	defer dumpTraceOnPanic(tracer)

	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanupProf()

	catalog, err := newCatalog()
	if err != nil {
		return err
	}

	s := &session{cmd: cmd, catalog: catalog, opts: opts, cf: cf, args: args}
	if opts.metricsOut != "" {
		s.metrics = metrics.New(nil)
	}
	if opts.cache {
		if s.cache, err = openCache(opts.cacheLocation); err != nil {
			return err
		}
	}

	if opts.watch {
		return s.watch(cmd.Context())
	}
	run, err := s.lintOnce(cmd.Context())
	if err != nil {
		return err
	}
	return s.verdict(run)
}

// session carries what stays fixed across watch re-runs.
type session struct {
	cmd     *cobra.Command
	catalog *plugin.Catalog
	opts    lintOptions
	cf      configFlags
	args    []string
	metrics *metrics.Collector
	cache   *driver.Cache
	// configPath is the file found by the last lintOnce
	configPath string
}

func openCache(location string) (*driver.Cache, error) {
	if location == "" {
		var err error
		if location, err = driver.DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	return driver.OpenCache(location)
}

// lintOnce composes the configuration, lints and writes the report.
func (s *session) lintOnce(ctx context.Context) (*driver.RunResult, error) {
	cfg, path, err := loadConfig(s.cmd, s.catalog, s.cf)
	if err != nil {
		return nil, err
	}
	s.configPath = path
	linter, err := driver.New(cfg, s.catalog, driver.Options{
		Jobs:         s.opts.jobs,
		Fix:          s.opts.fix,
		FixDryRun:    s.opts.fixDryRun,
		MaxFixPasses: s.opts.maxFixPasses,
		Directives: directive.FilterConfig{
			Disabled:     s.opts.noInlineConfig,
			ReportUnused: s.opts.reportUnused,
		},
		Cache:   s.cache,
		Metrics: s.metrics,
		Timings: s.opts.timings,
	})
	if err != nil {
		return nil, err
	}

	var run *driver.RunResult
	if s.opts.stdin {
		run, err = s.lintStdin(linter)
	} else {
		run, err = s.lintPaths(ctx, linter, cfg)
	}
	if err != nil {
		return nil, err
	}
	if s.opts.quiet {
		run.Quiet()
	}
	if err := s.report(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *session) lintStdin(linter *driver.Linter) (*driver.RunResult, error) {
	text, err := io.ReadAll(s.cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	res, err := linter.LintText(s.opts.stdinFilename, text)
	if err != nil {
		return nil, err
	}
	return &driver.RunResult{RunID: linter.RunID(), Files: []*driver.FileResult{res}, Counts: res.Counts}, nil
}

func (s *session) lintPaths(ctx context.Context, linter *driver.Linter, cfg *config.Effective) (*driver.RunResult, error) {
	files, err := driver.ExpandPaths(s.args, cfg.Ignores...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, driver.ErrNoFiles
	}
	if !s.opts.watch && shouldUseTUI(s.opts.ui, len(files)) {
		return ui.Run(ctx, "linting", s.cmd.ErrOrStderr(), func(ctx context.Context, sink driver.Sink) (*driver.RunResult, error) {
			return linter.WithSink(sink).LintFiles(ctx, files)
		})
	}
	return linter.LintFiles(ctx, files)
}

// report renders run in the selected format, plus diffs, timings and metrics.
func (s *session) report(run *driver.RunResult) error {
	out := s.cmd.OutOrStdout()
	var buf *bytes.Buffer
	if s.opts.outputFile != "" {
		buf = &bytes.Buffer{}
		out = buf
	}
	color, err := useColor(s.cmd, out)
	if err != nil {
		return err
	}
	fmtOpts := diagfmt.Opts{Color: color, PathMode: s.opts.pathMode}
	// JSON carries the fixed text in "output"
	if s.opts.fixDryRun && s.opts.format != diagfmt.FormatJSON {
		if err := diagfmt.FixDiffs(out, run, fmtOpts); err != nil {
			return err
		}
	}
	if err := diagfmt.Render(out, run, s.opts.format, fmtOpts); err != nil {
		return err
	}
	if buf != nil {
		if dir := filepath.Dir(s.opts.outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		if err := os.WriteFile(s.opts.outputFile, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	errOut := s.cmd.ErrOrStderr()
	for _, werr := range run.WriteErrors() {
		fmt.Fprintf(errOut, "typedlint: %v\n", werr)
	}
	if s.opts.timings {
		printTimings(errOut, run)
	}
	if s.metrics != nil {
		if err := s.metrics.WriteFile(s.opts.metricsOut); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// verdict maps the run onto the exit status.
func (s *session) verdict(run *driver.RunResult) error {
	if run.HasErrors() || len(run.WriteErrors()) > 0 {
		return errProblems
	}
	if s.opts.maxWarnings >= 0 && run.Counts.Warnings > s.opts.maxWarnings {
		fmt.Fprintf(s.cmd.ErrOrStderr(), "typedlint found too many warnings (maximum: %d).\n", s.opts.maxWarnings)
		return errProblems
	}
	return nil
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.FileNames {
		if strings.EqualFold(base, name) {
			return true
		}
	}
	return false
}
