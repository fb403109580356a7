package ast

import (
	"reflect"
	"strings"
	"sync"
)

var (
	nodeType   = reflect.TypeFor[Node]()
	fieldCache sync.Map // reflect.Type -> map[string][]int
)

// fieldIndex maps json field names to struct field index paths, descending
// into embedded structs the way encoding/json does.
func fieldIndex(t reflect.Type) map[string][]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string][]int)
	}
	out := make(map[string][]int)
	collectFields(t, nil, out)
	fieldCache.Store(t, out)
	return out
}

func collectFields(t reflect.Type, prefix []int, out map[string][]int) {
	for i := range t.NumField() {
		f := t.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		tag := f.Tag.Get("json")
		if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct {
			collectFields(f.Type, idx, out)
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" || name == "-" {
			continue
		}
		if _, dup := out[name]; !dup {
			out[name] = idx
		}
	}
}

// field returns the value stored under the json name key.
func field(n Node, key string) (reflect.Value, bool) {
	v := reflect.ValueOf(n)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	idx, ok := fieldIndex(v.Type())[key]
	if !ok {
		return reflect.Value{}, false
	}
	return v.FieldByIndex(idx), true
}

// Children returns the nodes stored under key, in order. Missing fields,
// nil values and array holes produce no entries.
func Children(n Node, key string) []Node {
	v, ok := field(n, key)
	if !ok {
		return nil
	}
	return appendNodes(nil, v)
}

// HasField reports whether the node type has a field with the json name key.
func HasField(n Node, key string) bool {
	_, ok := field(n, key)
	return ok
}

func appendNodes(out []Node, v reflect.Value) []Node {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return out
		}
		if v.Type().Implements(nodeType) || v.Elem().Type().Implements(nodeType) {
			if n, ok := v.Interface().(Node); ok && !isNilNode(n) {
				out = append(out, n)
			}
		}
	case reflect.Slice:
		for i := range v.Len() {
			out = appendNodes(out, v.Index(i))
		}
	}
	return out
}

// isNilNode catches typed nil pointers stored in interfaces.
func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool { return isNilNode(n) }
