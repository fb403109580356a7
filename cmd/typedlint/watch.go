package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"typedlint/internal/config"
	"typedlint/internal/driver"
	"typedlint/internal/observ"
	"typedlint/internal/trace"
	"typedlint/internal/watch"
)

const clearScreen = "\x1b[H\x1b[2J"

// watch lints once, then again after every batch of changes until ctx ends.
// Lint errors are reported but never stop the loop.
func (s *session) watch(ctx context.Context) error {
	out := s.cmd.ErrOrStderr()
	if _, err := s.lintOnce(ctx); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}

	paths := append([]string(nil), s.args...)
	if s.configPath != "" {
		paths = append(paths, s.configPath)
	}
	w, err := watch.New(watch.Config{
		Paths:      paths,
		Extensions: append(append([]string(nil), driver.Extensions...), configExtensions()...),
		SkipDirs:   []string{"node_modules", ".git"},
		SkipHidden: true,
	}, trace.FromContext(ctx))
	if err != nil {
		return err
	}
	defer w.Close()

	color, err := useColor(s.cmd, out)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "watching for changes, press ctrl+c to stop")
	err = w.Run(ctx, func(ctx context.Context, changed []string) error {
		if color {
			fmt.Fprint(s.cmd.OutOrStdout(), clearScreen)
		}
		fmt.Fprintf(out, "%d file(s) changed%s\n", len(changed), configNote(changed))
		if _, err := s.lintOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func configNote(changed []string) string {
	for _, path := range changed {
		if isConfigFile(path) {
			return ", reloading " + filepath.Base(path)
		}
	}
	return ""
}

func configExtensions() []string {
	seen := map[string]bool{}
	var exts []string
	for _, name := range config.FileNames {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != "" && !seen[ext] {
			seen[ext] = true
			exts = append(exts, ext)
		}
	}
	return exts
}

func printTimings(w io.Writer, run *driver.RunResult) {
	if run.Timing != nil {
		fmt.Fprint(w, run.Timing.Summary())
	}
	if run.FileTimings != nil && len(run.FileTimings.Phases) > 0 {
		fmt.Fprintln(w, "per file (summed):")
		fmt.Fprint(w, run.FileTimings.Summary())
	}
	if len(run.RuleTimes) > 0 {
		fmt.Fprint(w, observ.FormatRuleTimes(run.RuleTimes))
	}
	fmt.Fprintf(w, "%d files in %s\n", len(run.Files), run.Duration.Round(time.Millisecond))
}
