package plugin

import (
	"typedlint/internal/adapter"
	"typedlint/internal/config"
	"typedlint/internal/rules"
)

// CoreParser is the parser for plain JavaScript.
const CoreParser = config.DefaultParser

// Core returns the built-in rules, the plain JavaScript parser and the
// "js/recommended" and "js/all" presets.
func Core() *Plugin {
	all := rules.Core()
	recommended := make(map[string]config.RuleSetting)
	every := make(map[string]config.RuleSetting, len(all))
	for id, r := range all {
		every[id] = config.RuleSetting{Level: config.LevelError}
		if r.Meta.Recommended {
			recommended[id] = config.RuleSetting{Level: config.LevelError}
		}
	}
	return &Plugin{
		Rules: all,
		Configs: map[string]config.Preset{
			"js/recommended": {Rules: recommended},
			"js/all":         {Rules: every},
		},
		Parsers: map[string]*adapter.Adapter{
			CoreParser: adapter.New(CoreParser, nil, adapter.WithScopeAnalysis()),
		},
	}
}
