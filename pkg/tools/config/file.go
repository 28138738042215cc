package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// LoadFile reads a toolbox configuration from a YAML (.yml, .yaml) or
// TOML (.toml) file, dispatching on the file extension.
func LoadFile(path string) (*FactoryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewConfigurationError(path, "cannot read configuration file", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(raw)
	case ".toml":
		return ParseTOML(raw)
	default:
		return nil, NewConfigurationError(path, fmt.Sprintf("unsupported configuration format '%s'", filepath.Ext(path)), nil)
	}
}

// ParseYAML parses a YAML toolbox configuration.
func ParseYAML(raw []byte) (*FactoryConfig, error) {
	cfg := &FactoryConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, NewConfigurationError("", "malformed YAML configuration", err)
	}
	return cfg, nil
}

// ParseTOML parses a TOML toolbox configuration.
func ParseTOML(raw []byte) (*FactoryConfig, error) {
	cfg := &FactoryConfig{}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, NewConfigurationError("", "malformed TOML configuration", err)
	}
	return cfg, nil
}
