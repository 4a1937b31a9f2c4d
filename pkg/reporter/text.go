package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/linewidth/internal/ui/pretty"
	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/runner"
)

// TextReporter writes one line per finding:
//
//	main.go:3  width 123  -3  insert
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}

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
		if file.Result.Skipped {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path), r.styles.Warning.Render(file.Result.SkipReason))
		}

		for _, line := range file.Result.Lines {
			if !shown(line, r.opts.AllLines) {
				continue
			}
			r.writeLine(path, line)
			if line.Over() {
				total++
			}
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) writeLine(path string, line runner.LineReport) {
	location := r.styles.Location.Render(path + ":" + strconv.Itoa(line.Number))
	out := fmt.Sprintf("%s  width %d%s", location, line.Width, r.styles.RenderLabel(line.Display, r.opts.Style))
	if line.Action != comment.None {
		out += "  " + r.styles.Action.Render(line.Action.String())
	}
	fmt.Fprintln(r.bw, out)
}
