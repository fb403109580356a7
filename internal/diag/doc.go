// Package diag defines the diagnostic model shared by the parser, the rule
// engine, the fixer and the formatters.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - RuleID: the reporting rule; empty for parse errors.
//   - Severity: warning or error, the numeric values of the config levels.
//   - Message: human oriented text, already interpolated.
//   - Primary: the source.Span the finding points to; Start/End hold the
//     resolved 1-based line and column.
//   - Fatal: set for files that could not be parsed.
//   - Fix: optional text edits the fixer may apply.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. BagReporter collects into a Bag,
// which supports sorting, deduplication and severity counts (Counts).
// Formatting lives in internal/diagfmt; applying fixes lives in internal/fix.
package diag
