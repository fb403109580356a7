package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"typedlint/internal/driver"
)

// Compact prints one line per problem:
//
//	path: line 1, col 1, Error - message (rule)
func Compact(w io.Writer, run *driver.RunResult, opts Opts) error {
	bw := bufio.NewWriter(w)
	total := 0
	for _, res := range run.Files {
		if res == nil {
			continue
		}
		path := displayPath(res, opts)
		for i := range res.Diagnostics {
			d := &res.Diagnostics[i]
			sev := d.Severity.String()
			fmt.Fprintf(bw, "%s: line %d, col %d, %s - %s", path, d.Start.Line, d.Start.Col,
				strings.ToUpper(sev[:1])+sev[1:], d.Message)
			if d.RuleID != "" {
				fmt.Fprintf(bw, " (%s)", d.RuleID)
			}
			bw.WriteByte('\n')
			total++
		}
	}
	if total > 0 {
		fmt.Fprintf(bw, "\n%s\n", plural(total, "problem"))
	}
	return bw.Flush()
}
