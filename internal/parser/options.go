package parser

import (
	"fmt"
	"strconv"
)

// Source types.
const (
	SourceScript   = "script"
	SourceModule   = "module"
	SourceCommonJS = "commonjs"
)

// DefaultEcmaVersion is used when Options.EcmaVersion is zero.
const DefaultEcmaVersion = 2024

type Options struct {
	// EcmaVersion is a year (2015...) or an edition number (5, 6...). Zero means DefaultEcmaVersion.
	EcmaVersion int
	// SourceType is script, module or commonjs. Empty means module.
	SourceType string
	// AllowReturnOutsideFunction is implied by commonjs.
	AllowReturnOutsideFunction bool
}

// NormalizeEcmaVersion converts edition numbers to years and validates the result.
func NormalizeEcmaVersion(v int) (int, error) {
	switch {
	case v == 0:
		return DefaultEcmaVersion, nil
	case v == 3:
		return 1999, nil
	case v == 5:
		return 2009, nil
	case v >= 6 && v <= 16:
		return 2009 + v, nil
	case v >= 2015 && v <= 2025:
		return v, nil
	default:
		return 0, fmt.Errorf("unsupported ecmaVersion %s", strconv.Itoa(v))
	}
}

func (o Options) normalize() (Options, error) {
	ver, err := NormalizeEcmaVersion(o.EcmaVersion)
	if err != nil {
		return o, err
	}
	o.EcmaVersion = ver
	switch o.SourceType {
	case "":
		o.SourceType = SourceModule
	case SourceScript, SourceModule:
	case SourceCommonJS:
		o.AllowReturnOutsideFunction = true
	default:
		return o, fmt.Errorf("unsupported sourceType %q", o.SourceType)
	}
	if o.SourceType == SourceModule && o.EcmaVersion < 2015 {
		return o, fmt.Errorf("sourceType module requires ecmaVersion 2015 or later")
	}
	return o, nil
}

func (o Options) isModule() bool { return o.SourceType == SourceModule }
