package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Templates == nil {
		cfg.Templates = make(map[string]string)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration, including CLI-only fields.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Targets = slices.Clone(c.Targets)
	clone.Exclude = slices.Clone(c.Exclude)
	if c.Backups.Enabled != nil {
		enabled := *c.Backups.Enabled
		clone.Backups.Enabled = &enabled
	}
	if c.Templates != nil {
		clone.Templates = maps.Clone(c.Templates)
	}

	return &clone
}
