package reporter

import (
	"io"

	"github.com/yaklabco/linewidth/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// AllLines reports every non-empty line instead of only lines past the
	// first breakpoint and toggled lines.
	AllLines bool

	// ShowSummary appends a one-line summary (text and table formats).
	ShowSummary bool

	// Style is the overlay style used to draw labels.
	Style config.StyleConfig

	// Breakpoints label the tiers in summary output.
	Breakpoints []config.Breakpoint

	// TermWidth bounds table output; 0 uses a default.
	TermWidth int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}
