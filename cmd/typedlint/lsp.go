package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"typedlint/internal/driver"
	"typedlint/internal/lsp"
	"typedlint/internal/trace"
	"typedlint/internal/version"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdio",
		Long: `Serve diagnostics and quick fixes to editors over the Language Server
Protocol. The configuration is composed once at startup from the working
directory, like a lint run.`,
		Args: cobra.NoArgs,
		RunE: runLSP,
	}
	cmd.Flags().Duration("debounce", 0, "delay before linting after an edit (0=default)")
	addConfigFlags(cmd)
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	cf, err := readConfigFlags(cmd)
	if err != nil {
		return err
	}
	tracer, cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()
	defer dumpTraceOnPanic(tracer)

	catalog, err := newCatalog()
	if err != nil {
		return err
	}
	cfg, _, err := loadConfig(cmd, catalog, cf)
	if err != nil {
		return err
	}
	linter, err := driver.New(cfg, catalog, driver.Options{})
	if err != nil {
		return err
	}

	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.ServerOptions{
		Debounce: debounce,
		Lint:     linter.LintTextContext,
		Tracer:   trace.FromContext(cmd.Context()),
		Log:      cmd.ErrOrStderr(),
		Version:  version.Version,
	})
	err = server.Run(cmd.Context())
	if errors.Is(err, lsp.ErrExitWithoutShutdown) {
		// протокол требует код 1
		return errProblems
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

