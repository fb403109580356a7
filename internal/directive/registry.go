package directive

import (
	"slices"

	"typedlint/internal/ast"
	"typedlint/internal/diag"
	"typedlint/internal/source"
)

// Registry holds the directives of one file and records which of them
// suppressed something.
type Registry struct {
	file       *source.File
	directives []Directive
	problems   []Problem
	used       map[int][]string // directive index -> rule ids it suppressed
}

// NewRegistry parses the comments of a file.
func NewRegistry(file *source.File, comments []ast.Comment) *Registry {
	dirs, problems := Parse(file, comments)
	slices.SortStableFunc(dirs, func(a, b Directive) int {
		return int(a.Span.Start) - int(b.Span.Start)
	})
	return &Registry{file: file, directives: dirs, problems: problems, used: make(map[int][]string)}
}

// All returns the directives in source order.
func (r *Registry) All() []Directive { return slices.Clone(r.directives) }

// Len returns the number of directives.
func (r *Registry) Len() int { return len(r.directives) }

// Problems returns malformed directives.
func (r *Registry) Problems() []Problem { return slices.Clone(r.problems) }

// Suppresses reports whether d is switched off by a directive and marks
// that directive as used. Fatal diagnostics are never suppressed.
func (r *Registry) Suppresses(d diag.Diagnostic) bool {
	if d.Fatal || d.RuleID == "" {
		return false
	}
	by := -1
	for i := range r.directives {
		dir := &r.directives[i]
		if !dir.Applies(d.RuleID) {
			continue
		}
		switch dir.Kind {
		case DisableLine, DisableNextLine:
			if dir.Line == d.Start.Line {
				r.mark(i, d.RuleID)
				return true
			}
		case Disable:
			if dir.Span.Start <= d.Primary.Start {
				by = i
			}
		case Enable:
			if dir.Span.Start <= d.Primary.Start {
				by = -1
			}
		}
	}
	if by >= 0 {
		r.mark(by, d.RuleID)
		return true
	}
	return false
}

func (r *Registry) mark(i int, ruleID string) {
	if !slices.Contains(r.used[i], ruleID) {
		r.used[i] = append(r.used[i], ruleID)
	}
}

// Unused returns disable directives that suppressed nothing, and for
// directives naming rules, the names that suppressed nothing.
func (r *Registry) Unused() []Unused {
	var out []Unused
	for i, dir := range r.directives {
		if dir.Kind == Enable {
			continue
		}
		used := r.used[i]
		if len(dir.Rules) == 0 {
			if len(used) == 0 {
				out = append(out, Unused{Directive: dir})
			}
			continue
		}
		for _, name := range dir.Rules {
			if !slices.Contains(used, name) {
				out = append(out, Unused{Directive: dir, Rule: name})
			}
		}
	}
	return out
}

// Unused is a directive, or one rule of it, that had no effect.
type Unused struct {
	Directive Directive
	Rule      string
}
