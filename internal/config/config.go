// Package config composes the effective lint configuration from built-in
// defaults, plugin presets and user overrides.
//
// Precedence is per field: user override, then presets (later presets win
// over earlier ones), then defaults. Globals and rules merge key by key.
// Every rule name and parser name is checked against a Registry before any
// file is parsed.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	DefaultParser      = "espree"
	DefaultEcmaVersion = 2024
	DefaultSourceType  = "module"
)

// LanguageOptions of a layer. Zero values mean "not set".
type LanguageOptions struct {
	EcmaVersion int
	SourceType  string
	Globals     map[string]Global
}

// Preset is one configuration layer: a plugin preset, a config file or
// command line overrides.
type Preset struct {
	Name            string
	Parser          string
	LanguageOptions LanguageOptions
	Rules           map[string]RuleSetting
	Ignores         []string
}

// Registry answers what exists. It is passed in explicitly; there is no
// process-wide rule registry.
type Registry interface {
	HasRule(id string) bool
	HasParser(name string) bool
	Preset(name string) (Preset, bool)
}

// RuleEntry is a rule as it will run.
type RuleEntry struct {
	ID      string `msgpack:"id"`
	Level   Level  `msgpack:"level"`
	Options []any  `msgpack:"options"`
}

// Language is the resolved language configuration.
type Language struct {
	EcmaVersion int             `msgpack:"ecmaVersion"`
	SourceType  string          `msgpack:"sourceType" validate:"oneof=script module commonjs"`
	Globals     map[string]bool `msgpack:"globals"`
}

// Effective is the immutable result of Compose.
type Effective struct {
	Parser          string      `msgpack:"parser" validate:"required"`
	LanguageOptions Language    `msgpack:"languageOptions"`
	Rules           []RuleEntry `msgpack:"rules"`
	Ignores         []string    `msgpack:"ignores"`
}

// Enabled returns the rules whose level is not off, in id order.
func (e *Effective) Enabled() []RuleEntry {
	out := make([]RuleEntry, 0, len(e.Rules))
	for _, r := range e.Rules {
		if r.Level != LevelOff {
			out = append(out, r)
		}
	}
	return out
}

// Rule looks up a configured rule.
func (e *Effective) Rule(id string) (RuleEntry, bool) {
	i, ok := slices.BinarySearchFunc(e.Rules, id, func(r RuleEntry, id string) int {
		switch {
		case r.ID < id:
			return -1
		case r.ID > id:
			return 1
		}
		return 0
	})
	if !ok {
		return RuleEntry{}, false
	}
	return e.Rules[i], true
}

// Hash identifies the configuration for result caching. Map keys are
// encoded sorted so equal configurations hash equally.
func (e *Effective) Hash() string {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(e); err != nil {
		return ""
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
