package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// switchMode is the value of a tri-state flag such as --ui or --color.
type switchMode uint8

const (
	switchAuto switchMode = iota
	switchOn
	switchOff
)

// parseSwitch accepts auto|on|off plus the always/never spellings
// other linters use for --color.
func parseSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return switchAuto, nil
	case "on", "always":
		return switchOn, nil
	case "off", "never":
		return switchOff, nil
	}
	return switchAuto, fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
}

// resolve returns the decision for on/off and asks auto otherwise.
func (m switchMode) resolve(auto func() bool) bool {
	switch m {
	case switchOn:
		return true
	case switchOff:
		return false
	}
	return auto()
}

// autoUIMinFiles: below this a run ends before the progress view is useful.
const autoUIMinFiles = 20

// shouldUseTUI decides whether the progress view runs. It draws on stderr.
func shouldUseTUI(mode switchMode, files int) bool {
	return mode.resolve(func() bool {
		return files >= autoUIMinFiles && isTerminal(os.Stderr) && isTerminal(os.Stdin)
	})
}

// colorFor is the auto rule for --color: a terminal and no NO_COLOR.
func colorFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
