package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "4 lines over in 12 files, 2 comments to insert, 1 to remove".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := fmt.Sprintf("%d %s", stats.FilesProcessed-stats.FilesExcluded,
		plural(stats.FilesProcessed-stats.FilesExcluded, wordFile, wordFiles))

	var parts []string
	if stats.LinesOver == 0 {
		parts = append(parts, s.Success.Render("All lines within the first breakpoint")+s.Dim.Render(" ("+checked+" checked)"))
	} else {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s over", stats.LinesOver, plural(stats.LinesOver, "line", "lines")))+
			" in "+checked)
	}

	verb := "to insert"
	removeVerb := "to remove"
	if stats.FilesModified > 0 {
		verb, removeVerb = "inserted", "removed"
	}
	if stats.CommentsInserted > 0 {
		parts = append(parts, s.Action.Render(fmt.Sprintf("%d %s %s", stats.CommentsInserted,
			plural(stats.CommentsInserted, "comment", "comments"), verb)))
	}
	if stats.CommentsRemoved > 0 {
		parts = append(parts, s.Action.Render(fmt.Sprintf("%d %s", stats.CommentsRemoved, removeVerb)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed", stats.FilesErrored,
			plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block, with one row per
// breakpoint tier.
func (s *Styles) FormatSummary(stats runner.Stats, breakpoints []config.Breakpoint) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", stats.FilesProcessed-stats.FilesExcluded, s.SummaryValue.Render)
	if stats.FilesExcluded > 0 {
		row("Files excluded", stats.FilesExcluded, s.Dim.Render)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped, s.Warning.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}
	if stats.FilesModified > 0 {
		row("Files modified", stats.FilesModified, s.Success.Render)
	}

	builder.WriteString("\n")
	row("Lines", stats.LinesTotal, s.SummaryValue.Render)

	tiers := make([]int, 0, len(stats.LinesByTier))
	for tier := range stats.LinesByTier {
		tiers = append(tiers, tier)
	}
	slices.Sort(tiers)
	for _, tier := range tiers {
		label := fmt.Sprintf("  tier %d", tier)
		if tier < len(breakpoints) {
			label = fmt.Sprintf("  <= %d", breakpoints[tier].Column)
			if tier == len(breakpoints)-1 && tier > 0 {
				label = fmt.Sprintf("  > %d", breakpoints[tier-1].Column)
			}
		}
		row(label, stats.LinesByTier[tier], s.SummaryValue.Render)
	}

	if stats.CommentsInserted+stats.CommentsRemoved > 0 {
		builder.WriteString("\n")
		row("Comments inserted", stats.CommentsInserted, s.Action.Render)
		row("Comments removed", stats.CommentsRemoved, s.Action.Render)
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some files could not be processed"))
	case stats.LinesOver > 0:
		builder.WriteString(s.Warning.Render("Lines past the first breakpoint"))
	default:
		builder.WriteString(s.Success.Render("All lines fit"))
	}
	builder.WriteString("\n")

	return builder.String()
}
