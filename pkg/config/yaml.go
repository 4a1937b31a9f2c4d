package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToJSON serializes the configuration to indented JSON.
func (c *Config) ToJSON() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return append(data, '\n'), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// FromJSONC parses a configuration from JSON that may contain comments and
// trailing commas.
func FromJSONC(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return cfg, nil
}

// Parse decodes data according to the extension of path: .json and .jsonc are
// read as JSONC, everything else as YAML.
func Parse(path string, data []byte) (*Config, error) {
	if IsJSONPath(path) {
		return FromJSONC(data)
	}
	return FromYAML(data)
}

// IsJSONPath returns true if the path names a JSON or JSONC file.
func IsJSONPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".json" || ext == ".jsonc"
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := &Config{
		Comment: c.Comment.clone(),
		Style:   c.Style.clone(),
		Width:   c.Width,
	}

	if c.Breakpoints != nil {
		clone.Breakpoints = make([]Breakpoint, len(c.Breakpoints))
		copy(clone.Breakpoints, c.Breakpoints)
	}

	if c.ExcludedKinds != nil {
		clone.ExcludedKinds = make([]string, len(c.ExcludedKinds))
		copy(clone.ExcludedKinds, c.ExcludedKinds)
	}

	return clone
}

func (cc CommentConfig) clone() CommentConfig {
	clone := CommentConfig{}

	if cc.Text != nil {
		clone.Text = String(*cc.Text)
	}

	if cc.Threshold != nil {
		clone.Threshold = Int(*cc.Threshold)
	}
	if cc.Auto != nil {
		clone.Auto = Bool(*cc.Auto)
	}
	if cc.RemoveAboveUpper != nil {
		clone.RemoveAboveUpper = Bool(*cc.RemoveAboveUpper)
	}
	if cc.RemoveBelowLower != nil {
		clone.RemoveBelowLower = Bool(*cc.RemoveBelowLower)
	}
	if cc.LineMarkers != nil {
		clone.LineMarkers = make([]string, len(cc.LineMarkers))
		copy(clone.LineMarkers, cc.LineMarkers)
	}

	return clone
}

func (s StyleConfig) clone() StyleConfig {
	clone := s
	if s.Margin != nil {
		clone.Margin = Int(*s.Margin)
	}
	return clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
