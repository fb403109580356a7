package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"typedlint/internal/parser"
)

// FileNames are searched in this order in every directory.
var FileNames = []string{"typedlint.toml", "typedlint.yaml", "typedlint.yml"}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	_ = configValidate.RegisterValidation("ecmaversion", func(fl validator.FieldLevel) bool {
		_, err := parser.NormalizeEcmaVersion(int(fl.Field().Int()))
		return err == nil
	})
}

// FileLanguage is the languageOptions table of a config file.
type FileLanguage struct {
	EcmaVersion int            `toml:"ecmaVersion" yaml:"ecmaVersion" validate:"omitempty,ecmaversion"`
	SourceType  string         `toml:"sourceType" yaml:"sourceType" validate:"omitempty,oneof=script module commonjs"`
	Globals     map[string]any `toml:"globals" yaml:"globals"`
}

// File is a decoded typedlint.toml / typedlint.yaml.
type File struct {
	Path            string         `toml:"-" yaml:"-"`
	Parser          string         `toml:"parser" yaml:"parser"`
	Extends         []string       `toml:"extends" yaml:"extends" validate:"dive,required"`
	LanguageOptions FileLanguage   `toml:"languageOptions" yaml:"languageOptions"`
	Rules           map[string]any `toml:"rules" yaml:"rules"`
	Ignores         []string       `toml:"ignores" yaml:"ignores" validate:"dive,required"`
}

// Discover walks from startDir up to the filesystem root and returns the
// first config file found, or "" when there is none.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			st, statErr := os.Stat(candidate)
			if statErr == nil && !st.IsDir() {
				return candidate, nil
			}
			if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
				return "", statErr
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads and validates a config file. The format follows the extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	f, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// Decode parses config bytes; name selects TOML or YAML by extension.
func Decode(name string, data []byte) (*File, error) {
	var f File
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", name, err)
		}
	default:
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", name, err)
		}
		if undec := meta.Undecoded(); len(undec) > 0 {
			keys := make([]string, 0, len(undec))
			for _, k := range undec {
				// rules and globals are free-form tables.
				if top := k[0]; top == "rules" || (len(k) > 1 && top == "languageOptions" && k[1] == "globals") {
					continue
				}
				keys = append(keys, k.String())
			}
			if len(keys) > 0 {
				return nil, fmt.Errorf("configuration file %q: unknown keys: %s", name, strings.Join(keys, ", "))
			}
		}
	}
	if err := configValidate.Struct(&f); err != nil {
		return nil, fmt.Errorf("configuration file %q: %w", name, err)
	}
	return &f, nil
}

// Preset converts the file into a configuration layer. Extends is kept on
// the file; the caller resolves it against the plugin catalog.
func (f *File) Preset() (Preset, error) {
	p := Preset{
		Name:    f.Path,
		Parser:  f.Parser,
		Ignores: slices.Clone(f.Ignores),
		LanguageOptions: LanguageOptions{
			EcmaVersion: f.LanguageOptions.EcmaVersion,
			SourceType:  f.LanguageOptions.SourceType,
		},
	}
	cfgErr := &Error{}
	if len(f.LanguageOptions.Globals) > 0 {
		p.LanguageOptions.Globals = make(map[string]Global, len(f.LanguageOptions.Globals))
		for name, v := range f.LanguageOptions.Globals {
			g, err := ParseGlobal(v)
			if err != nil {
				cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("globals.%s: %v", name, err))
				continue
			}
			p.LanguageOptions.Globals[name] = g
		}
	}
	if len(f.Rules) > 0 {
		p.Rules = make(map[string]RuleSetting, len(f.Rules))
		for id, v := range f.Rules {
			s, err := ParseRuleSetting(v)
			if err != nil {
				cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("rules.%s: %v", id, err))
				continue
			}
			p.Rules[id] = s
		}
	}
	if !cfgErr.empty() {
		slices.Sort(cfgErr.Invalid)
		return p, cfgErr
	}
	return p, nil
}
