package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/runner"
)

const (
	tablePadding     = 2
	defaultTermWidth = 100
	minTextWidth     = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	ellipsis         = "…"
)

var tableHeaders = [...]string{"LINE", "WIDTH", "LEFT", "ACTION", "TEXT"}

// TableFormatter lays out per-line reports as aligned columns, one group
// per file.
type TableFormatter struct {
	styles    *Styles
	style     config.StyleConfig
	termWidth int
	overOnly  bool
}

// NewTableFormatter creates a table formatter. overOnly drops lines within
// the first breakpoint.
func NewTableFormatter(styles *Styles, style config.StyleConfig, termWidth int, overOnly bool) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, style: style, termWidth: termWidth, overOnly: overOnly}
}

// FormatFile renders one file's lines. It returns "" when no line qualifies.
func (t *TableFormatter) FormatFile(res *runner.FileResult) string {
	if res == nil {
		return ""
	}

	var lines []runner.LineReport
	for _, line := range res.Lines {
		if t.overOnly && !line.Over() && line.Action == comment.None {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}

	widths := make([]int, len(tableHeaders))
	for i, header := range tableHeaders {
		widths[i] = len(header)
	}
	for _, line := range lines {
		widths[0] = max(widths[0], len(strconv.Itoa(line.Number)))
		widths[1] = max(widths[1], len(strconv.Itoa(line.Width)))
		widths[2] = max(widths[2], len(line.Display.Label))
		widths[3] = max(widths[3], len(line.Action.String()))
	}
	fixed := 0
	for _, w := range widths[:4] {
		fixed += w + tablePadding
	}
	widths[4] = max(minTextWidth, t.termWidth-fixed)

	var builder strings.Builder
	total := fixed + widths[4]

	builder.WriteString(t.styles.FilePath.Render(res.Path) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)) + "\n")

	headers := make([]string, len(tableHeaders))
	for i, header := range tableHeaders {
		headers[i] = t.styles.TableHeader.Render(pad(header, widths[i]))
	}
	builder.WriteString(strings.TrimRight(strings.Join(headers, strings.Repeat(" ", tablePadding)), " ") + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, total)) + "\n")

	for _, line := range lines {
		action := ""
		if line.Action != comment.None {
			action = line.Action.String()
		}
		cells := []string{
			padLeft(strconv.Itoa(line.Number), widths[0]),
			padLeft(strconv.Itoa(line.Width), widths[1]),
			t.styles.LabelStyle(line.Display, t.style).Render(padLeft(line.Display.Label, widths[2])),
			t.styles.Action.Render(pad(action, widths[3])),
			runewidth.Truncate(strings.TrimSpace(line.Before), widths[4], ellipsis),
		}
		builder.WriteString(strings.TrimRight(strings.Join(cells, strings.Repeat(" ", tablePadding)), " ") + "\n")
	}

	return builder.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
