package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeRelative shows paths relative to the working directory.
	PathModeRelative PathMode = iota
	PathModeAbsolute
	PathModeBasename
	// PathModeAuto keeps short paths and shortens long absolute ones.
	PathModeAuto
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeBasename:
		return "basename"
	case PathModeAuto:
		return "auto"
	default:
		return "relative"
	}
}

// ParsePathMode accepts relative, absolute, basename and auto.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(s) {
	case "", "relative":
		return PathModeRelative, nil
	case "absolute":
		return PathModeAbsolute, nil
	case "basename":
		return PathModeBasename, nil
	case "auto":
		return PathModeAuto, nil
	}
	return 0, fmt.Errorf("invalid path mode %q (expected: relative|absolute|basename|auto)", s)
}

// Format selects a report renderer.
type Format string

const (
	FormatStylish Format = "stylish"
	FormatCompact Format = "compact"
	FormatJSON    Format = "json"
)

// Formats lists the supported report formats.
var Formats = []Format{FormatStylish, FormatCompact, FormatJSON}

// ParseFormat accepts the names in Formats; empty means stylish.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatStylish, nil
	case FormatStylish, FormatCompact, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected: stylish|compact|json)", s)
}

// Opts configures every renderer.
type Opts struct {
	Color    bool
	PathMode PathMode
	// BaseDir anchors relative paths; empty means the working directory.
	BaseDir string
	// JSON only
	IncludeSource   bool
	IncludePreviews bool
}
