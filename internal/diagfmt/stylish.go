package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"typedlint/internal/diag"
	"typedlint/internal/driver"
)

// Stylish печатает группы по файлам:
//
//	path/to/file.js:
//	  1:1  error  Unexpected var, use let or const instead. (no-var)
//
// и итог с числом ошибок, предупреждений и исправимых проблем.
func Stylish(w io.Writer, run *driver.RunResult, opts Opts) error {
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)

	for _, res := range run.Files {
		if res == nil || len(res.Diagnostics) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\n%s:\n", p.path.Sprint(displayPath(res, opts)))
		for i := range res.Diagnostics {
			d := &res.Diagnostics[i]
			sev := p.warning.Sprint(d.Severity.String())
			if d.Severity == diag.SevError {
				sev = p.err.Sprint(d.Severity.String())
			}
			fmt.Fprintf(bw, "  %d:%d  %s  %s", d.Start.Line, d.Start.Col, sev, d.Message)
			if d.RuleID != "" {
				fmt.Fprintf(bw, " %s", p.rule.Sprintf("(%s)", d.RuleID))
			}
			bw.WriteByte('\n')
		}
	}

	c := run.Counts
	fmt.Fprintf(bw, "\n%s\n", p.summary.Sprint("✨ Done."))
	if c.Errors == 0 && c.Warnings == 0 {
		fmt.Fprintln(bw, p.ok.Sprint("No issues found! 🎉"))
		return bw.Flush()
	}
	line := fmt.Sprintf("Found %s and %s", plural(c.Errors, "error"), plural(c.Warnings, "warning"))
	if n := c.Fixable(); n > 0 {
		line += fmt.Sprintf(" (%d fixable)", n)
	}
	line += "."
	if c.Errors > 0 {
		fmt.Fprintln(bw, p.err.Sprint(line))
	} else {
		fmt.Fprintln(bw, p.warning.Sprint(line))
	}
	return bw.Flush()
}
