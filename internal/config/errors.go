package config

import (
	"fmt"
	"strings"
)

// Error is a configuration problem found before linting starts. It lists
// every unresolved name, not only the first.
type Error struct {
	UnknownRules   []string
	UnknownParsers []string
	UnknownPresets []string
	Conflicts      []string
	Invalid        []string
}

func (e *Error) Error() string {
	parts := make([]string, 0, 5)
	add := func(label string, items []string) {
		if len(items) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", label, strings.Join(items, ", ")))
		}
	}
	add("unknown rules", e.UnknownRules)
	add("unknown parsers", e.UnknownParsers)
	add("unknown presets", e.UnknownPresets)
	add("conflicts", e.Conflicts)
	add("invalid", e.Invalid)
	if len(parts) == 0 {
		return "configuration error"
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

func (e *Error) empty() bool {
	return len(e.UnknownRules)+len(e.UnknownParsers)+len(e.UnknownPresets)+len(e.Conflicts)+len(e.Invalid) == 0
}
