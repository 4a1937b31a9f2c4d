package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/linewidth/internal/ui/pretty"
	"github.com/yaklabco/linewidth/pkg/runner"
)

// TableReporter writes one aligned table per file.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, opts.Style, opts.TermWidth, !opts.AllLines),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil {
			continue
		}

		res := *file.Result
		res.Path = path
		if table := r.formatter.FormatFile(&res); table != "" {
			fmt.Fprintln(r.bw, table)
		}
		total += file.Result.LinesOver()
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}
