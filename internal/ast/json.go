package ast

import (
	"reflect"

	"typedlint/internal/source"
)

// ToMap converts a tree into plain maps in ESTree layout: every node gets
// "type", "start", "end" and, when file is given, "loc" with 1-based lines
// and 0-based columns. The result marshals directly with encoding/json and
// compares structurally with reflect.DeepEqual.
func ToMap(n Node, file *source.File) map[string]any {
	if isNilNode(n) {
		return nil
	}
	sp := n.Span()
	out := map[string]any{
		"type":  n.Type(),
		"start": sp.Start,
		"end":   sp.End,
	}
	if file != nil {
		s, e := file.Position(sp.Start), file.Position(sp.End)
		out["loc"] = map[string]any{
			"start": map[string]any{"line": s.Line, "column": s.Col - 1},
			"end":   map[string]any{"line": e.Line, "column": e.Col - 1},
		}
	}

	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return out
	}
	for name, idx := range fieldIndex(v.Type()) {
		out[name] = plain(v.FieldByIndex(idx), file)
	}
	if p, ok := n.(*Program); ok && len(p.Comments) > 0 {
		comments := make([]any, 0, len(p.Comments))
		for _, c := range p.Comments {
			comments = append(comments, map[string]any{
				"type": c.Kind, "value": c.Value, "start": c.Loc.Start, "end": c.Loc.End,
			})
		}
		out["comments"] = comments
	}
	return out
}

func plain(v reflect.Value, file *source.File) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		if n, ok := v.Interface().(Node); ok {
			return ToMap(n, file)
		}
		if v.Kind() == reflect.Interface {
			return plain(v.Elem(), file)
		}
		return v.Interface()
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		items := make([]any, v.Len())
		for i := range v.Len() {
			items[i] = plain(v.Index(i), file)
		}
		return items
	default:
		return v.Interface()
	}
}
