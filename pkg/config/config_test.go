package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linewidth/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	require.Len(t, cfg.Breakpoints, 4)
	assert.Equal(t, 120, cfg.LastColumn())
	assert.Nil(t, cfg.Comment.Text, "the text follows the document kind unless configured")
	assert.Equal(t, config.DefaultThreshold, cfg.Comment.ThresholdValue())
	assert.True(t, cfg.Comment.AutoEnabled())
	assert.True(t, cfg.Comment.RemoveAbove())
	assert.True(t, cfg.Comment.RemoveBelow())
	assert.Equal(t, config.DefaultMargin, cfg.Style.MarginValue())
	assert.Equal(t, config.UnitChars, cfg.Width.Unit)
}

func TestConfig_LastColumn(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Equal(t, -1, nilCfg.LastColumn())
	assert.Equal(t, -1, (&config.Config{}).LastColumn())
	assert.Equal(t, 7, (&config.Config{Breakpoints: []config.Breakpoint{{Column: 7, Color: "red"}}}).LastColumn())
}

func TestConfig_IsExcluded(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{ExcludedKinds: []string{"Markdown", "json"}}

	tests := []struct {
		kind string
		want bool
	}{
		{"markdown", true},
		{"MARKDOWN", true},
		{"json", true},
		{"go", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cfg.IsExcluded(tt.kind))
		})
	}
}

func TestCommentConfig_UnsetDefaults(t *testing.T) {
	t.Parallel()

	var cc config.CommentConfig
	assert.Equal(t, config.DefaultThreshold, cc.ThresholdValue())
	assert.True(t, cc.AutoEnabled())
	assert.True(t, cc.RemoveAbove())
	assert.True(t, cc.RemoveBelow())

	cc.Auto = config.Bool(false)
	cc.Threshold = config.Int(0)
	assert.False(t, cc.AutoEnabled())
	assert.Equal(t, 0, cc.ThresholdValue())
}

func TestWidthUnit_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.UnitChars.IsValid())
	assert.True(t, config.UnitCells.IsValid())
	assert.False(t, config.WidthUnit("bytes").IsValid())
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	err := config.NewConfigurationError("breakpoints", nil, config.MsgBreakpointsEmpty)
	assert.Equal(t, "breakpoints: breakpoints must be a non-empty ordered list", err.Error())
	assert.True(t, errors.Is(err, config.ErrConfiguration))

	err.FilePath = ".linewidth.yml"
	assert.Equal(t, ".linewidth.yml: breakpoints: breakpoints must be a non-empty ordered list", err.Error())

	var wrapped error = errors.Join(errors.New("load"), err)
	var target *config.ConfigurationError
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "breakpoints", target.Field)
}
