package diagfmt

import (
	"encoding/json"
	"io"

	"typedlint/internal/diag"
	"typedlint/internal/driver"
	"typedlint/internal/source"
)

// FixEditJSON is one replacement, offsets into the linted text.
type FixEditJSON struct {
	Range       [2]uint32 `json:"range"`
	Text        string    `json:"text"`
	BeforeLines []string  `json:"before_lines,omitempty"`
	AfterLines  []string  `json:"after_lines,omitempty"`
}

// FixJSON describes an automatic fix.
type FixJSON struct {
	Title string        `json:"title,omitempty"`
	Edits []FixEditJSON `json:"edits"`
}

// MessageJSON is one problem.
type MessageJSON struct {
	RuleID    *string  `json:"ruleId"`
	Severity  uint8    `json:"severity"`
	Message   string   `json:"message"`
	MessageID string   `json:"messageId,omitempty"`
	Line      uint32   `json:"line"`
	Column    uint32   `json:"column"`
	EndLine   uint32   `json:"endLine,omitempty"`
	EndColumn uint32   `json:"endColumn,omitempty"`
	Fatal     bool     `json:"fatal,omitempty"`
	Fix       *FixJSON `json:"fix,omitempty"`
}

// FileJSON is the report for one file.
type FileJSON struct {
	FilePath            string        `json:"filePath"`
	Messages            []MessageJSON `json:"messages"`
	SuppressedCount     int           `json:"suppressedCount"`
	ErrorCount          int           `json:"errorCount"`
	FatalErrorCount     int           `json:"fatalErrorCount"`
	WarningCount        int           `json:"warningCount"`
	FixableErrorCount   int           `json:"fixableErrorCount"`
	FixableWarningCount int           `json:"fixableWarningCount"`
	Cached              bool          `json:"cached,omitempty"`
	Source              string        `json:"source,omitempty"`
	Output              string        `json:"output,omitempty"`
}

// ReportJSON is the root of the JSON output.
type ReportJSON struct {
	RunID               string     `json:"runId"`
	Results             []FileJSON `json:"results"`
	ErrorCount          int        `json:"errorCount"`
	WarningCount        int        `json:"warningCount"`
	FixableErrorCount   int        `json:"fixableErrorCount"`
	FixableWarningCount int        `json:"fixableWarningCount"`
}

// BuildReport формирует структуру JSON-вывода без сериализации.
func BuildReport(run *driver.RunResult, opts Opts) ReportJSON {
	out := ReportJSON{
		RunID:               run.RunID,
		Results:             make([]FileJSON, 0, len(run.Files)),
		ErrorCount:          run.Counts.Errors,
		WarningCount:        run.Counts.Warnings,
		FixableErrorCount:   run.Counts.FixableErrors,
		FixableWarningCount: run.Counts.FixableWarnings,
	}
	for _, res := range run.Files {
		if res == nil {
			continue
		}
		f := FileJSON{
			FilePath:            displayPath(res, opts),
			Messages:            make([]MessageJSON, 0, len(res.Diagnostics)),
			SuppressedCount:     res.Suppressed,
			ErrorCount:          res.Counts.Errors,
			FatalErrorCount:     res.Counts.Fatal,
			WarningCount:        res.Counts.Warnings,
			FixableErrorCount:   res.Counts.FixableErrors,
			FixableWarningCount: res.Counts.FixableWarnings,
			Cached:              res.Cached,
		}
		for i := range res.Diagnostics {
			f.Messages = append(f.Messages, makeMessage(&res.Diagnostics[i], res.File, opts))
		}
		if opts.IncludeSource {
			f.Source = string(res.Source)
		}
		if res.Output != nil {
			f.Output = string(res.Output)
		}
		out.Results = append(out.Results, f)
	}
	return out
}

func makeMessage(d *diag.Diagnostic, file *source.File, opts Opts) MessageJSON {
	m := MessageJSON{
		Severity:  uint8(d.Severity),
		Message:   d.Message,
		MessageID: d.MessageID,
		Line:      d.Start.Line,
		Column:    d.Start.Col,
		Fatal:     d.Fatal,
	}
	if d.RuleID != "" {
		id := d.RuleID
		m.RuleID = &id
	}
	if !d.Fatal {
		m.EndLine, m.EndColumn = d.End.Line, d.End.Col
	}
	if d.Fixable() {
		fix := &FixJSON{Title: d.Fix.Title, Edits: make([]FixEditJSON, 0, len(d.Fix.Edits))}
		for _, edit := range d.Fix.Edits {
			e := FixEditJSON{Range: [2]uint32{edit.Span.Start, edit.Span.End}, Text: edit.NewText}
			if opts.IncludePreviews && file != nil {
				if preview, err := buildFixEditPreview(file, edit); err == nil {
					e.BeforeLines = preview.before
					e.AfterLines = preview.after
				}
			}
			fix.Edits = append(fix.Edits, e)
		}
		m.Fix = fix
	}
	return m
}

// JSON writes the run as indented JSON.
func JSON(w io.Writer, run *driver.RunResult, opts Opts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildReport(run, opts))
}
