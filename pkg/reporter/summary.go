package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/linewidth/internal/ui/pretty"
	"github.com/yaklabco/linewidth/pkg/runner"
)

// SummaryReporter writes only aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	if _, err := fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats, r.opts.Breakpoints)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}
	return result.Stats.LinesOver, nil
}
