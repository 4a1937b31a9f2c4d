package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linewidth/pkg/config"
)

func TestRunInit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		full   bool
	}{
		{name: "minimal yaml", format: "yaml"},
		{name: "full yaml", format: "yaml", full: true},
		{name: "json", format: "json"},
		{name: "full json", format: "json", full: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), ".linewidth."+tt.format)
			cmd := newInitCommand()

			err := runInit(cmd, &initFlags{format: tt.format, full: tt.full, output: output}, false)
			require.NoError(t, err)

			data, err := os.ReadFile(output)
			require.NoError(t, err)

			cfg, err := config.Parse(output, data)
			require.NoError(t, err)
			assert.Equal(t, config.DefaultBreakpoints(), cfg.Breakpoints)
			assert.Nil(t, cfg.Comment.Text, "the generated file leaves the text to the document kind")
		})
	}
}

func TestRunInit_InvalidFormat(t *testing.T) {
	t.Parallel()

	err := runInit(newInitCommand(), &initFlags{format: "toml"}, false)
	require.ErrorIs(t, err, ErrInvalidUsage)
}

func TestRunInit_Existing(t *testing.T) {
	t.Parallel()

	const existing = "# keep me\n"

	tests := []struct {
		name        string
		force       bool
		interactive bool
		answer      string
		wantErr     bool
		wantKept    bool
	}{
		{name: "non-interactive refuses", wantErr: true, wantKept: true},
		{name: "force overwrites", force: true},
		{name: "prompt yes overwrites", interactive: true, answer: "y\n"},
		{name: "prompt no keeps", interactive: true, answer: "n\n", wantKept: true},
		{name: "prompt eof keeps", interactive: true, answer: "", wantKept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := filepath.Join(t.TempDir(), ".linewidth.yml")
			require.NoError(t, os.WriteFile(output, []byte(existing), 0o644))

			cmd := newInitCommand()
			cmd.SetIn(strings.NewReader(tt.answer))
			cmd.SetErr(io.Discard)

			err := runInit(cmd, &initFlags{format: "yaml", force: tt.force, output: output}, tt.interactive)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "already exists")
			} else {
				require.NoError(t, err)
			}

			data, err := os.ReadFile(output)
			require.NoError(t, err)
			if tt.wantKept {
				assert.Equal(t, existing, string(data))
			} else {
				assert.NotEqual(t, existing, string(data))
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	for answer, want := range map[string]bool{
		"y\n":   true,
		"YES\n": true,
		" yes ": true,
		"n\n":   false,
		"\n":    false,
		"maybe": false,
		"":      false,
	} {
		assert.Equal(t, want, confirm(strings.NewReader(answer), io.Discard, "?"), "answer %q", answer)
	}
}
