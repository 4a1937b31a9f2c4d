package indicator_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/indicator"
)

func traffic() []config.Breakpoint {
	return []config.Breakpoint{
		{Column: 80, Color: "green"},
		{Column: 100, Color: "yellow"},
		{Column: 120, Color: "red"},
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		width     int
		wantColor string
		wantLabel string
		wantIndex int
	}{
		{"empty line", 0, "green", "80", 0},
		{"below first breakpoint", 50, "green", "30", 0},
		{"at first breakpoint", 80, "green", "0", 0},
		{"just past first breakpoint", 81, "yellow", "19", 1},
		{"between first and second", 90, "yellow", "10", 1},
		{"at second breakpoint", 100, "yellow", "0", 1},
		{"between second and third", 110, "red", "10", 2},
		{"at last breakpoint", 120, "red", "0", 2},
		{"past last breakpoint", 121, "red", "-1", 2},
		{"far past last breakpoint", 500, "red", "-380", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := indicator.Resolve(tt.width, traffic())
			require.NoError(t, err)
			assert.Equal(t, tt.wantColor, got.Color)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantIndex, got.Index)
		})
	}
}

// Mirrors the original extension's stepped walk across four tiers where the
// label counts down to the selected tier and goes negative past the last.
func TestResolve_SteppedWalk(t *testing.T) {
	t.Parallel()

	breakpoints := []config.Breakpoint{
		{Column: 110, Color: "rgb(0, 255, 0, 0.6)"},
		{Column: 115, Color: "rgb(255, 255, 0, 0.6)"},
		{Column: 120, Color: "rgb(255, 165, 0, 0.6)"},
		{Column: 125, Color: "rgb(255, 0, 0, 0.6)"},
	}

	text := strings.Repeat("x", 95)
	steps := []struct {
		extra string
		color string
		label string
	}{
		{"", "rgb(0, 255, 0, 0.6)", "15"},
		{"12345", "rgb(0, 255, 0, 0.6)", "10"},
		{"1234567890", "rgb(0, 255, 0, 0.6)", "0"},
		{"1", "rgb(255, 255, 0, 0.6)", "4"},
		{"1234", "rgb(255, 255, 0, 0.6)", "0"},
		{"12", "rgb(255, 165, 0, 0.6)", "3"},
		{"345", "rgb(255, 165, 0, 0.6)", "0"},
		{"67", "rgb(255, 0, 0, 0.6)", "3"},
		{"890", "rgb(255, 0, 0, 0.6)", "0"},
		{"12345678", "rgb(255, 0, 0, 0.6)", "-8"},
	}

	for _, step := range steps {
		text += step.extra
		got, err := indicator.Resolve(len(text), breakpoints)
		require.NoError(t, err)
		assert.Equal(t, step.color, got.Color, "width %d", len(text))
		assert.Equal(t, step.label, got.Label, "width %d", len(text))
	}
}

func TestResolve_Monotonic(t *testing.T) {
	t.Parallel()

	breakpoints := traffic()
	prev := 0
	for width := 0; width <= 400; width++ {
		got, err := indicator.Resolve(width, breakpoints)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Index, prev, "index decreased at width %d", width)
		prev = got.Index
	}
	assert.Equal(t, len(breakpoints)-1, prev, "index stabilises at the last breakpoint")
}

func TestResolve_SingleBreakpoint(t *testing.T) {
	t.Parallel()

	breakpoints := []config.Breakpoint{{Column: 72, Color: "white"}}

	for _, width := range []int{0, 72, 73, 1000} {
		got, err := indicator.Resolve(width, breakpoints)
		require.NoError(t, err)
		assert.Equal(t, "white", got.Color)
		assert.Equal(t, 0, got.Index)
		assert.Equal(t, 72-width, got.Remaining)
	}
}

func TestResolve_EmptyBreakpoints(t *testing.T) {
	t.Parallel()

	_, err := indicator.Resolve(10, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrConfiguration))
	assert.Contains(t, err.Error(), config.MsgBreakpointsEmpty)
}

func BenchmarkResolve(b *testing.B) {
	breakpoints := traffic()
	for i := 0; i < b.N; i++ {
		_, _ = indicator.Resolve(i%200, breakpoints)
	}
}
