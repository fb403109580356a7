// Package typedjs is the TypedJS plugin: the typedjs parser, rules for
// type syntax and the recommended preset.
package typedjs

import (
	"fmt"

	"typedlint/internal/adapter"
	"typedlint/internal/config"
	"typedlint/internal/plugin"
	"typedlint/internal/rule"
	syntax "typedlint/internal/typedjs"
)

const (
	Name       = "typedjs"
	Version    = "0.1.0"
	ParserName = "typedjs"
)

// NodeGlobals are predeclared by the recommended preset.
var NodeGlobals = []string{
	"process", "Buffer", "console", "global", "__dirname", "__filename",
	"exports", "module", "require",
}

// New builds the plugin. It fails only if the TypedJS extensions do not
// compose.
func New() (*plugin.Plugin, error) {
	g, err := syntax.Grammar()
	if err != nil {
		return nil, fmt.Errorf("typedjs plugin: %w", err)
	}
	globals := make(map[string]config.Global, len(NodeGlobals))
	for _, name := range NodeGlobals {
		globals[name] = config.GlobalReadonly
	}
	return &plugin.Plugin{
		Meta: plugin.Meta{Name: Name, Version: Version},
		Rules: map[string]*rule.Rule{
			"no-op":              &NoOp,
			"no-explicit-any":    &NoExplicitAny,
			"no-empty-interface": &NoEmptyInterface,
		},
		Configs: map[string]config.Preset{
			"recommended": {
				Parser: ParserName,
				LanguageOptions: config.LanguageOptions{
					EcmaVersion: 2024,
					SourceType:  "module",
					Globals:     globals,
				},
				Rules: map[string]config.RuleSetting{
					Name + "/no-op": {Level: config.LevelError},
				},
			},
		},
		Parsers: map[string]*adapter.Adapter{
			ParserName: adapter.New(ParserName, g, adapter.WithScopeAnalysis()),
		},
	}, nil
}
