package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/linewidth/internal/ui/pretty"
	"github.com/yaklabco/linewidth/pkg/fix"
	"github.com/yaklabco/linewidth/pkg/runner"
)

// DiffReporter writes the pending comment toggles as unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter. It returns the number of changed lines.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	files, changed := 0, 0
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		files++
		changed += len(file.Result.Diff.Changes)
		r.writeDiff(file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		fmt.Fprintf(r.out, "%d %s changed, %d %s\n",
			files, plural(files, "file", "files"), changed, plural(changed, "line", "lines"))
	}

	return changed, nil
}

func (r *DiffReporter) writeDiff(diff *fix.Diff) {
	path := strings.TrimPrefix(displayPath(r.opts.WorkingDir, diff.Path), "/")
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))

	shown := *diff
	shown.Path = path
	for _, line := range strings.Split(strings.TrimSuffix(shown.String(), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			fmt.Fprintln(r.out, r.styles.DiffHeader.Render(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(r.out, r.styles.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(r.out, r.styles.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(r.out, r.styles.DiffRemove.Render(line))
		default:
			fmt.Fprintln(r.out, line)
		}
	}
	fmt.Fprintln(r.out)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
