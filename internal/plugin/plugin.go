// Package plugin bundles rules, parsers and presets under one name and
// collects plugins into a Catalog that configuration and the driver query.
package plugin

import (
	"fmt"
	"maps"
	"slices"

	"typedlint/internal/adapter"
	"typedlint/internal/config"
	"typedlint/internal/rule"
)

type Meta struct {
	Name    string
	Version string
}

// Plugin contributes rules and presets under "<name>/<id>" and parsers
// under their own names. The core plugin has an empty name and its ids
// carry no prefix.
type Plugin struct {
	Meta    Meta
	Rules   map[string]*rule.Rule
	Configs map[string]config.Preset
	Parsers map[string]*adapter.Adapter
}

// Qualify returns the id a plugin-local name is registered under.
func (p *Plugin) Qualify(name string) string {
	if p.Meta.Name == "" {
		return name
	}
	return p.Meta.Name + "/" + name
}

// Catalog is the explicit set of what a run may use.
type Catalog struct {
	plugins []*Plugin
	rules   map[string]*rule.Rule
	parsers map[string]*adapter.Adapter
	presets map[string]config.Preset
}

var _ config.Registry = (*Catalog)(nil)

// NewCatalog registers plugins in order.
func NewCatalog(plugins ...*Plugin) (*Catalog, error) {
	c := &Catalog{
		rules:   make(map[string]*rule.Rule),
		parsers: make(map[string]*adapter.Adapter),
		presets: make(map[string]config.Preset),
	}
	for _, p := range plugins {
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds a plugin. Names already taken are an error and leave the
// catalog unchanged.
func (c *Catalog) Register(p *Plugin) error {
	for _, other := range c.plugins {
		if other.Meta.Name == p.Meta.Name {
			return fmt.Errorf("plugin %q registered twice", p.Meta.Name)
		}
	}
	for name := range p.Rules {
		if _, dup := c.rules[p.Qualify(name)]; dup {
			return fmt.Errorf("plugin %q: rule %q already registered", p.Meta.Name, p.Qualify(name))
		}
	}
	for name := range p.Parsers {
		if _, dup := c.parsers[name]; dup {
			return fmt.Errorf("plugin %q: parser %q already registered", p.Meta.Name, name)
		}
	}
	for name, r := range p.Rules {
		c.rules[p.Qualify(name)] = r
	}
	maps.Copy(c.parsers, p.Parsers)
	for name, preset := range p.Configs {
		id := p.Qualify(name)
		preset.Name = id
		c.presets[id] = preset
	}
	c.plugins = append(c.plugins, p)
	return nil
}

func (c *Catalog) HasRule(id string) bool {
	_, ok := c.rules[id]
	return ok
}

func (c *Catalog) HasParser(name string) bool {
	_, ok := c.parsers[name]
	return ok
}

func (c *Catalog) Preset(name string) (config.Preset, bool) {
	p, ok := c.presets[name]
	return p, ok
}

func (c *Catalog) Rule(id string) (*rule.Rule, bool) {
	r, ok := c.rules[id]
	return r, ok
}

func (c *Catalog) Parser(name string) (*adapter.Adapter, bool) {
	a, ok := c.parsers[name]
	return a, ok
}

// RuleIDs returns all registered rule ids, sorted.
func (c *Catalog) RuleIDs() []string { return slices.Sorted(maps.Keys(c.rules)) }

// PresetNames returns all registered preset names, sorted.
func (c *Catalog) PresetNames() []string { return slices.Sorted(maps.Keys(c.presets)) }

// ParserNames returns all registered parser names, sorted.
func (c *Catalog) ParserNames() []string { return slices.Sorted(maps.Keys(c.parsers)) }

func (c *Catalog) Plugins() []*Plugin { return slices.Clone(c.plugins) }
