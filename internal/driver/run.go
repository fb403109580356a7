package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"typedlint/internal/observ"
	"typedlint/internal/source"
	"typedlint/internal/trace"
)

// topRules is how many rules --timings lists.
const topRules = 10

// LintFiles expands paths and lints every file. Files are independent: a
// syntax error, rule crash or failed write stays in that file's result.
// The returned error is limited to path expansion and cancellation.
func (l *Linter) LintFiles(ctx context.Context, paths []string) (*RunResult, error) {
	started := time.Now()
	runSpan, ctx := trace.Start(trace.WithRun(ctx, l.opts.RunID), trace.ScopeDriver, "lint")
	timer := l.newTimer()
	l.ruleTimes.Reset()

	idx := timer.Begin("expand")
	files, err := ExpandPaths(paths, l.cfg.Ignores...)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		runSpan.Fail(err)
		return nil, err
	}

	run := &RunResult{RunID: l.opts.RunID, Files: make([]*FileResult, len(files))}
	progress := trace.ProgressFrom(ctx)
	progress.Reset(len(files))
	l.emitQueued(files)

	jobs := l.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	fs := source.NewFileSet()

	passSpan, ctx := trace.Start(ctx, trace.ScopePass, "files")
	idx = timer.Begin("lint")
	if len(files) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(files)))

		// индексы уникальны для каждой горутины, мьютекс не нужен
		for i, path := range files {
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				progress.FileStarted(path)
				run.Files[i] = l.lintFile(gctx, fs, path)
				progress.FileDone(path)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			timer.End(idx, "cancelled")
			passSpan.End(err.Error())
			runSpan.End(err.Error())
			return nil, err
		}
	}
	timer.End(idx, fmt.Sprintf("%d jobs", min(jobs, max(len(files), 1))))
	passSpan.End("")

	var fileTimings observ.Report
	for _, f := range run.Files {
		run.Counts.Add(f.Counts)
		if f.Timing != nil {
			fileTimings.Merge(*f.Timing)
		}
	}
	run.Duration = time.Since(started)
	if timer != nil {
		run.Timing = timingReport(timer)
		run.FileTimings = &fileTimings
		run.RuleTimes = l.ruleTimes.Top(topRules)
	}
	l.opts.Metrics.Run(run.Duration)
	l.emit(Event{Stage: StageLint, Status: StatusDone, Elapsed: run.Duration})
	runSpan.End(fmt.Sprintf("%d files, %d errors, %d warnings", len(files), run.Counts.Errors, run.Counts.Warnings))
	return run, nil
}
