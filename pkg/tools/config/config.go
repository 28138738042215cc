// Package config models toolbox configuration: which tools are exposed
// in which scopes, plus typed data entries, loadable from YAML or TOML
// files.
package config

import (
	"fmt"
)

// FactoryConfig is the root of a toolbox configuration.
type FactoryConfig struct {
	Toolboxes []ToolboxConfig `yaml:"toolboxes" toml:"toolboxes"`
	Data      []Data          `yaml:"data" toml:"data"`
}

// ToolboxConfig selects the tools one scope exposes. An empty scope
// falls back to the factory's default scope.
type ToolboxConfig struct {
	Scope string       `yaml:"scope,omitempty" toml:"scope,omitempty"`
	Tools []ToolConfig `yaml:"tools" toml:"tools"`
}

// ToolConfig names one registered tool, optionally re-keying it for
// templates.
type ToolConfig struct {
	Tool string `yaml:"tool" toml:"tool"`
	Key  string `yaml:"key,omitempty" toml:"key,omitempty"`
}

// Validate checks every part of the configuration and reports all
// problems found, not just the first.
func (c *FactoryConfig) Validate() error {
	errs := NewMultiError()

	for i := range c.Data {
		errs.Add(c.Data[i].Validate())
	}

	for _, tb := range c.Toolboxes {
		if len(tb.Tools) == 0 {
			errs.Add(NewConfigurationError("", fmt.Sprintf("toolbox '%s' has no tools", tb.Scope), nil))
		}
		for _, tc := range tb.Tools {
			if tc.Tool == "" {
				errs.Add(NewConfigurationError("", fmt.Sprintf("toolbox '%s' has a tool entry with no tool name", tb.Scope), nil))
			}
		}
	}

	return errs.Err()
}

// Merge folds another configuration into this one. Toolbox blocks are
// appended; data entries from other replace entries here that share a
// key.
func (c *FactoryConfig) Merge(other *FactoryConfig) {
	if other == nil {
		return
	}
	c.Toolboxes = append(c.Toolboxes, other.Toolboxes...)
	for _, d := range other.Data {
		c.setData(d)
	}
}

func (c *FactoryConfig) setData(d Data) {
	for i := range c.Data {
		if c.Data[i].Key == d.Key {
			c.Data[i] = d
			return
		}
	}
	c.Data = append(c.Data, d)
}
