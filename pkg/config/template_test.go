package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linewidth/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   config.TemplateOptions
		parse  func([]byte) (*config.Config, error)
		header bool
	}{
		{"minimal yaml", config.TemplateOptions{Format: "yaml"}, config.FromYAML, true},
		{"full yaml", config.TemplateOptions{Format: "yaml", Full: true}, config.FromYAML, true},
		{"default format is yaml", config.TemplateOptions{}, config.FromYAML, true},
		{"minimal json", config.TemplateOptions{Format: "json"}, config.FromJSONC, false},
		{"full json", config.TemplateOptions{Format: "json", Full: true}, config.FromJSONC, false},
	}

	defaults := config.NewConfig()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)

			if tt.header {
				assert.True(t, strings.HasPrefix(string(content), "# linewidth configuration"))
			}

			cfg, err := tt.parse(content)
			require.NoError(t, err, string(content))

			assert.Equal(t, defaults.Breakpoints, cfg.Breakpoints)
			assert.Equal(t, defaults.Comment.Text, cfg.Comment.Text)
			assert.Equal(t, defaults.Comment.ThresholdValue(), cfg.Comment.ThresholdValue())

			if tt.opts.Full {
				assert.Equal(t, defaults.ExcludedKinds, cfg.ExcludedKinds)
				assert.Equal(t, defaults.Width.Unit, cfg.Width.Unit)
				assert.Equal(t, defaults.Style.FontWeight, cfg.Style.FontWeight)
			}
		})
	}
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
	require.Error(t, err)
}

func TestJSONSchema(t *testing.T) {
	t.Parallel()

	data, err := config.JSONSchema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, config.SchemaID, doc["$id"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "breakpoints")
	assert.Contains(t, props, "comment")
	assert.Contains(t, props, "excluded_kinds")
}
