package config

import (
	"fmt"
	"strings"

	"typedlint/internal/diag"
)

// Level is a configured rule level.
type Level uint8

const (
	LevelOff   Level = 0
	LevelWarn  Level = 1
	LevelError Level = 2
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("Level(%d)", uint8(l))
}

// Severity maps an enabled level to a diagnostic severity.
func (l Level) Severity() diag.Severity {
	if l == LevelWarn {
		return diag.SevWarning
	}
	return diag.SevError
}

// ParseLevel accepts "off", "warn", "error" and 0, 1, 2 in any numeric type
// the decoders produce.
func ParseLevel(v any) (Level, error) {
	switch x := v.(type) {
	case Level:
		if x <= LevelError {
			return x, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "off", "0":
			return LevelOff, nil
		case "warn", "warning", "1":
			return LevelWarn, nil
		case "error", "2":
			return LevelError, nil
		}
	case int:
		return ParseLevel(int64(x))
	case int64:
		if x >= 0 && x <= 2 {
			return Level(x), nil
		}
	case uint64:
		if x <= 2 {
			return Level(x), nil
		}
	case float64:
		if x == 0 || x == 1 || x == 2 {
			return Level(x), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid rule level %v: use off, warn, error or 0, 1, 2", v)
}

// RuleSetting is a level with optional rule options.
type RuleSetting struct {
	Level   Level
	Options []any
}

// ParseRuleSetting accepts a level or a list [level, options...].
func ParseRuleSetting(v any) (RuleSetting, error) {
	switch x := v.(type) {
	case RuleSetting:
		return x, nil
	case []any:
		if len(x) == 0 {
			return RuleSetting{}, fmt.Errorf("empty rule setting")
		}
		lvl, err := ParseLevel(x[0])
		if err != nil {
			return RuleSetting{}, err
		}
		return RuleSetting{Level: lvl, Options: x[1:]}, nil
	default:
		lvl, err := ParseLevel(v)
		if err != nil {
			return RuleSetting{}, err
		}
		return RuleSetting{Level: lvl}, nil
	}
}

// Global is the access mode of a predeclared name.
type Global string

const (
	GlobalReadonly Global = "readonly"
	GlobalWritable Global = "writable"
	GlobalOff      Global = "off"
)

// ParseGlobal accepts the mode names, their legacy spellings and booleans.
func ParseGlobal(v any) (Global, error) {
	switch x := v.(type) {
	case Global:
		return ParseGlobal(string(x))
	case bool:
		if x {
			return GlobalWritable, nil
		}
		return GlobalReadonly, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "readonly", "readable", "false":
			return GlobalReadonly, nil
		case "writable", "writeable", "true":
			return GlobalWritable, nil
		case "off":
			return GlobalOff, nil
		}
	}
	return "", fmt.Errorf("invalid global setting %v: use readonly, writable or off", v)
}
