package rule

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Interpolate replaces {{name}} with data[name]. Unknown names are kept.
func Interpolate(msg string, data map[string]any) string {
	if len(data) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		v, ok := data[name]
		if !ok {
			return m
		}
		return fmt.Sprint(v)
	})
}
