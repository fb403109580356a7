// Package rules holds the core rules that ship with typedlint.
package rules

import (
	"maps"
	"slices"

	"typedlint/internal/rule"
)

var core = map[string]*rule.Rule{
	"eqeqeq":         &Eqeqeq,
	"max-params":     &MaxParams,
	"no-debugger":    &NoDebugger,
	"no-empty":       &NoEmpty,
	"no-undef":       &NoUndef,
	"no-unused-vars": &NoUnusedVars,
	"no-var":         &NoVar,
}

// Core returns the core rules keyed by id. The map is a fresh copy.
func Core() map[string]*rule.Rule {
	return maps.Clone(core)
}

// IDs returns the core rule ids in order.
func IDs() []string {
	return slices.Sorted(maps.Keys(core))
}
