package fix

import (
	"errors"

	"typedlint/internal/diag"
)

// MaxPasses bounds how many times a file is re-linted while fixes keep applying.
const MaxPasses = 10

// LintFunc lints one version of a file. Parse failures should come back as
// a fatal diagnostic, not an error.
type LintFunc func(pass int, content []byte) ([]diag.Diagnostic, error)

// Outcome is the state after the last pass.
type Outcome struct {
	Output      []byte
	Passes      int
	Applied     []AppliedFix
	Diagnostics []diag.Diagnostic
}

// Changed reports whether any fix was applied.
func (o *Outcome) Changed() bool { return len(o.Applied) > 0 }

// Converge alternates lint and Apply until no fix applies or maxPasses fix
// passes ran; Diagnostics are those of the final text.
func Converge(content []byte, maxPasses int, lint LintFunc) (*Outcome, error) {
	if maxPasses <= 0 {
		maxPasses = MaxPasses
	}
	out := &Outcome{Output: content}
	for {
		diags, err := lint(out.Passes, out.Output)
		if err != nil {
			return out, err
		}
		out.Diagnostics = diags
		if out.Passes >= maxPasses {
			return out, nil
		}
		res, err := Apply(out.Output, diags)
		if errors.Is(err, ErrNoFixes) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out.Applied = append(out.Applied, res.Applied...)
		out.Output = res.Output
		out.Passes++
	}
}
