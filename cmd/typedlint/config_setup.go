package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"typedlint/internal/config"
	"typedlint/internal/plugin"
	"typedlint/internal/plugin/typedjs"
	"typedlint/internal/trace"
)

// defaultExtends applies when no config file names presets.
var defaultExtends = []string{typedjs.Name + "/recommended"}

// configFlags are the command line pieces of the configuration.
type configFlags struct {
	path        string
	noConfig    bool
	parser      string
	ecmaVersion int
	sourceType  string
	rules       []string
	globals     []string
	ignores     []string
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("config", "c", "", "use this configuration file instead of searching for typedlint.toml/.yaml")
	f.Bool("no-config", false, "ignore configuration files")
	f.String("parser", "", "parser name (espree|typedjs)")
	f.Int("ecma-version", 0, "ECMAScript version (e.g. 2024 or 15)")
	f.String("source-type", "", "source type (script|module|commonjs)")
	f.StringArray("rule", nil, `rule override "name:level" or 'name:["level", options...]'`)
	f.StringArray("global", nil, `predeclared global "name" or "name:writable"`)
	f.StringArray("ignore-pattern", nil, "additional ignore pattern (gitignore-like)")
}

func readConfigFlags(cmd *cobra.Command) (configFlags, error) {
	var cf configFlags
	var err error
	f := cmd.Flags()
	if cf.path, err = f.GetString("config"); err != nil {
		return cf, fmt.Errorf("failed to get config flag: %w", err)
	}
	if cf.noConfig, err = f.GetBool("no-config"); err != nil {
		return cf, fmt.Errorf("failed to get no-config flag: %w", err)
	}
	if cf.parser, err = f.GetString("parser"); err != nil {
		return cf, fmt.Errorf("failed to get parser flag: %w", err)
	}
	if cf.ecmaVersion, err = f.GetInt("ecma-version"); err != nil {
		return cf, fmt.Errorf("failed to get ecma-version flag: %w", err)
	}
	if cf.sourceType, err = f.GetString("source-type"); err != nil {
		return cf, fmt.Errorf("failed to get source-type flag: %w", err)
	}
	if cf.rules, err = f.GetStringArray("rule"); err != nil {
		return cf, fmt.Errorf("failed to get rule flag: %w", err)
	}
	if cf.globals, err = f.GetStringArray("global"); err != nil {
		return cf, fmt.Errorf("failed to get global flag: %w", err)
	}
	if cf.ignores, err = f.GetStringArray("ignore-pattern"); err != nil {
		return cf, fmt.Errorf("failed to get ignore-pattern flag: %w", err)
	}
	if cf.noConfig && cf.path != "" {
		return cf, fmt.Errorf("--config and --no-config are mutually exclusive")
	}
	return cf, nil
}

// newCatalog registers the built-in plugins.
func newCatalog() (*plugin.Catalog, error) {
	ts, err := typedjs.New()
	if err != nil {
		return nil, err
	}
	return plugin.NewCatalog(plugin.Core(), ts)
}

// loadConfig composes presets, the config file and command line overrides.
// It returns the config file path used, if any.
func loadConfig(cmd *cobra.Command, catalog *plugin.Catalog, cf configFlags) (*config.Effective, string, error) {
	span, _ := trace.Start(cmd.Context(), trace.ScopeDriver, "config")

	path := cf.path
	if path == "" && !cf.noConfig {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		if path, err = config.Discover(wd); err != nil {
			return nil, "", fmt.Errorf("failed to discover configuration: %w", err)
		}
	}

	extends := defaultExtends
	var layers []config.Preset
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		layer, err := file.Preset()
		if err != nil {
			return nil, "", err
		}
		if len(file.Extends) > 0 {
			extends = file.Extends
		}
		layers = append(layers, layer)
	}

	cli, err := cf.preset()
	if err != nil {
		return nil, "", err
	}
	layers = append(layers, cli)

	presets, err := config.Resolve(catalog, extends)
	if err != nil {
		return nil, "", err
	}
	eff, err := config.Compose(catalog, presets, layers...)
	if err != nil {
		return nil, "", err
	}
	span.WithExtra("parser", eff.Parser).End(fmt.Sprintf("%d rules", len(eff.Enabled())))
	return eff, path, nil
}

// preset turns the overrides into the last configuration layer.
func (cf configFlags) preset() (config.Preset, error) {
	p := config.Preset{
		Name:    "command line",
		Parser:  cf.parser,
		Ignores: slices.Clone(cf.ignores),
		LanguageOptions: config.LanguageOptions{
			EcmaVersion: cf.ecmaVersion,
			SourceType:  cf.sourceType,
		},
	}
	cfgErr := &config.Error{}
	if len(cf.rules) > 0 {
		p.Rules = make(map[string]config.RuleSetting, len(cf.rules))
		for _, spec := range cf.rules {
			id, setting, err := parseRuleFlag(spec)
			if err != nil {
				cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("--rule %s: %v", spec, err))
				continue
			}
			p.Rules[id] = setting
		}
	}
	if len(cf.globals) > 0 {
		p.LanguageOptions.Globals = make(map[string]config.Global, len(cf.globals))
		for _, spec := range cf.globals {
			name, mode, hasMode := strings.Cut(spec, ":")
			g := config.GlobalReadonly
			if hasMode {
				var err error
				if g, err = config.ParseGlobal(mode); err != nil {
					cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("--global %s: %v", spec, err))
					continue
				}
			}
			p.LanguageOptions.Globals[strings.TrimSpace(name)] = g
		}
	}
	if len(cfgErr.Invalid) > 0 {
		return p, cfgErr
	}
	return p, nil
}

// parseRuleFlag splits "name:level" or 'name:["level", {...}]'.
func parseRuleFlag(spec string) (string, config.RuleSetting, error) {
	id, value, ok := strings.Cut(spec, ":")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", config.RuleSetting{}, fmt.Errorf("expected name:level")
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "[") {
		var raw []any
		if err := json.Unmarshal([]byte(value), &raw); err != nil {
			return "", config.RuleSetting{}, fmt.Errorf("invalid JSON setting: %w", err)
		}
		s, err := config.ParseRuleSetting(raw)
		return id, s, err
	}
	s, err := config.ParseRuleSetting(value)
	return id, s, err
}
