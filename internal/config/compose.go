package config

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"typedlint/internal/parser"
)

// Resolve looks up preset names such as "typedjs/recommended". All unknown
// names are reported together.
func Resolve(reg Registry, names []string) ([]Preset, error) {
	out := make([]Preset, 0, len(names))
	var missing []string
	for _, name := range names {
		p, ok := reg.Preset(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		if p.Name == "" {
			p.Name = name
		}
		out = append(out, p)
	}
	if len(missing) > 0 {
		return out, &Error{UnknownPresets: missing}
	}
	return out, nil
}

// Compose merges defaults, presets and user layers into an Effective
// configuration. Later entries in presets and user win over earlier ones.
// Every rule id named at any level, including off, must be known to reg.
func Compose(reg Registry, presets []Preset, user ...Preset) (*Effective, error) {
	cfgErr := &Error{}
	eff := &Effective{
		Parser: DefaultParser,
		LanguageOptions: Language{
			EcmaVersion: DefaultEcmaVersion,
			SourceType:  DefaultSourceType,
		},
	}

	parserFrom := ""
	for _, p := range presets {
		if p.Parser == "" {
			continue
		}
		if parserFrom != "" && p.Parser != eff.Parser {
			cfgErr.Conflicts = append(cfgErr.Conflicts,
				fmt.Sprintf("presets %s and %s select different parsers (%s, %s)", parserFrom, p.Name, eff.Parser, p.Parser))
		}
		eff.Parser = p.Parser
		parserFrom = p.Name
	}
	userParser := false
	for _, u := range user {
		if u.Parser != "" {
			eff.Parser = u.Parser
			userParser = true
		}
	}
	if userParser {
		cfgErr.Conflicts = nil
	}

	globals := map[string]Global{}
	rules := map[string]RuleSetting{}
	unknown := map[string]struct{}{}
	var ignores []string

	layers := make([]Preset, 0, len(presets)+len(user))
	layers = append(layers, presets...)
	layers = append(layers, user...)
	for _, l := range layers {
		if v := l.LanguageOptions.EcmaVersion; v != 0 {
			eff.LanguageOptions.EcmaVersion = v
		}
		if st := l.LanguageOptions.SourceType; st != "" {
			eff.LanguageOptions.SourceType = st
		}
		maps.Copy(globals, l.LanguageOptions.Globals)
		for id, s := range l.Rules {
			if !reg.HasRule(id) {
				unknown[id] = struct{}{}
				continue
			}
			rules[id] = s
		}
		ignores = append(ignores, l.Ignores...)
	}

	if !reg.HasParser(eff.Parser) {
		cfgErr.UnknownParsers = append(cfgErr.UnknownParsers, eff.Parser)
	}
	cfgErr.UnknownRules = slices.Sorted(maps.Keys(unknown))

	if v, err := parser.NormalizeEcmaVersion(eff.LanguageOptions.EcmaVersion); err != nil {
		cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("ecmaVersion: %v", err))
	} else {
		eff.LanguageOptions.EcmaVersion = v
	}
	if err := configValidate.Struct(eff); err != nil {
		cfgErr.Invalid = append(cfgErr.Invalid, err.Error())
	}

	if len(globals) > 0 {
		eff.LanguageOptions.Globals = make(map[string]bool, len(globals))
		for name, g := range globals {
			if g == GlobalOff {
				continue
			}
			eff.LanguageOptions.Globals[name] = g == GlobalWritable
		}
	}

	eff.Rules = make([]RuleEntry, 0, len(rules))
	for id, s := range rules {
		eff.Rules = append(eff.Rules, RuleEntry{ID: id, Level: s.Level, Options: s.Options})
	}
	sort.Slice(eff.Rules, func(i, j int) bool { return eff.Rules[i].ID < eff.Rules[j].ID })
	eff.Ignores = slices.Compact(slices.Sorted(slices.Values(ignores)))

	if !cfgErr.empty() {
		return nil, cfgErr
	}
	return eff, nil
}
