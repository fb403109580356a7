// Package diagfmt renders lint results: stylish (default), compact and
// JSON reports, and unified diffs of computed fixes.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"typedlint/internal/driver"
)

// Render writes run in format.
func Render(w io.Writer, run *driver.RunResult, format Format, opts Opts) error {
	switch format {
	case FormatStylish, "":
		return Stylish(w, run, opts)
	case FormatCompact:
		return Compact(w, run, opts)
	case FormatJSON:
		return JSON(w, run, opts)
	}
	return fmt.Errorf("unknown format %q", format)
}

func displayPath(res *driver.FileResult, opts Opts) string {
	if res.File == nil {
		return res.Path
	}
	return res.File.FormatPath(opts.PathMode.String(), opts.BaseDir)
}

type palette struct {
	path    *color.Color
	err     *color.Color
	warning *color.Color
	rule    *color.Color
	ok      *color.Color
	summary *color.Color
}

// newPalette builds per-call colours so concurrent renders do not share state.
func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Underline),
		err:     color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		rule:    color.New(color.FgHiBlack),
		ok:      color.New(color.FgGreen),
		summary: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.err, p.warning, p.rule, p.ok, p.summary} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
