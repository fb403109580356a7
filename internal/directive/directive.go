package directive

import (
	"strings"

	"typedlint/internal/ast"
	"typedlint/internal/source"
)

// Kind of an inline directive comment.
type Kind uint8

const (
	Disable Kind = iota + 1
	Enable
	DisableLine
	DisableNextLine
)

var kindNames = map[string]Kind{
	"eslint-disable":           Disable,
	"eslint-enable":            Enable,
	"eslint-disable-line":      DisableLine,
	"eslint-disable-next-line": DisableNextLine,
}

func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "invalid"
}

// Directive is one parsed comment such as
// `// eslint-disable-next-line no-var, eqeqeq -- legacy code`.
type Directive struct {
	Kind Kind
	// Rules is empty when the directive applies to every rule.
	Rules         []string
	Justification string
	Span          source.Span
	// Line is the line the directive targets for line kinds, otherwise the
	// line the comment starts on.
	Line uint32
}

// Applies reports whether the directive names ruleID or names no rules.
func (d *Directive) Applies(ruleID string) bool {
	if len(d.Rules) == 0 {
		return true
	}
	for _, r := range d.Rules {
		if r == ruleID {
			return true
		}
	}
	return false
}

// Problem is a malformed directive comment.
type Problem struct {
	Span    source.Span
	Message string
}

// Parse extracts directives from comments. Block comments accept every
// kind, line comments only the line kinds.
func Parse(file *source.File, comments []ast.Comment) ([]Directive, []Problem) {
	var (
		out      []Directive
		problems []Problem
	)
	for _, c := range comments {
		text := strings.TrimSpace(c.Value)
		head, rest, _ := strings.Cut(text, " ")
		if i := strings.IndexAny(head, "\t\n"); i >= 0 {
			head, rest = head[:i], head[i+1:]+" "+rest
		}
		kind, ok := kindNames[head]
		if !ok {
			continue
		}
		if c.Kind == "Line" && (kind == Disable || kind == Enable) {
			continue
		}
		body, justification, _ := strings.Cut(rest, "--")
		d := Directive{
			Kind:          kind,
			Rules:         splitRules(body),
			Justification: strings.TrimSpace(justification),
			Span:          c.Loc,
		}
		start := file.Position(c.Loc.Start).Line
		end := file.Position(c.Loc.End).Line
		switch kind {
		case DisableLine:
			if start != end {
				problems = append(problems, Problem{Span: c.Loc, Message: "eslint-disable-line comment should not span multiple lines."})
				continue
			}
			d.Line = start
		case DisableNextLine:
			d.Line = end + 1
		default:
			d.Line = start
		}
		out = append(out, d)
	}
	return out, problems
}

func splitRules(s string) []string {
	var rules []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			rules = append(rules, name)
		}
	}
	return rules
}
