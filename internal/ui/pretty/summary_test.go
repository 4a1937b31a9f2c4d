package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/linewidth/internal/ui/pretty"
	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/indicator"
	"github.com/yaklabco/linewidth/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	t.Run("clean", func(t *testing.T) {
		got := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 3})
		assert.Equal(t, "All lines within the first breakpoint (3 files checked)\n", got)
	})

	t.Run("pending toggles", func(t *testing.T) {
		got := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed:   2,
			FilesExcluded:    1,
			LinesOver:        4,
			CommentsInserted: 1,
			CommentsRemoved:  2,
		})
		assert.Equal(t, "4 lines over in 1 file, 1 comment to insert, 2 to remove\n", got)
	})

	t.Run("written", func(t *testing.T) {
		got := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed:   1,
			FilesModified:    1,
			LinesOver:        1,
			CommentsInserted: 2,
			FilesErrored:     1,
		})
		assert.Equal(t, "1 line over in 1 file, 2 comments inserted, 1 file failed\n", got)
	})
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)
	breakpoints := []config.Breakpoint{{Column: 80, Color: "green"}, {Column: 120, Color: "red"}}

	got := styles.FormatSummary(runner.Stats{
		FilesProcessed:   2,
		LinesTotal:       10,
		LinesOver:        3,
		LinesByTier:      map[int]int{0: 7, 1: 3},
		CommentsInserted: 1,
	}, breakpoints)

	assert.Contains(t, got, "Files checked:     2\n")
	assert.Contains(t, got, "<= 80:           7\n")
	assert.Contains(t, got, "> 80:            3\n")
	assert.Contains(t, got, "Comments inserted: 1\n")
	assert.True(t, strings.HasSuffix(got, "Lines past the first breakpoint\n"))
}

func TestTableFormatter(t *testing.T) {
	styles := pretty.NewStyles(false)
	res := &runner.FileResult{
		Path: "main.go",
		Lines: []runner.LineReport{
			{Number: 1, Before: "package main", Width: 12, Display: indicator.Display{Label: "68"}},
			{
				Number:  3,
				Before:  "\tx := " + strings.Repeat("a", 117),
				Width:   123,
				Display: indicator.Display{Label: "-3", Index: 2, Remaining: -3},
				Action:  comment.Insert,
			},
		},
	}

	out := pretty.NewTableFormatter(styles, config.StyleConfig{}, 60, false).FormatFile(res)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "main.go", lines[0])
	assert.Equal(t, "LINE  WIDTH  LEFT  ACTION  TEXT", lines[2])
	assert.Equal(t, "   1     12    68          package main", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], "   3    123    -3  insert  x := aaa"))
	assert.True(t, strings.HasSuffix(lines[5], "…"))

	overOnly := pretty.NewTableFormatter(styles, config.StyleConfig{}, 60, true).FormatFile(res)
	assert.NotContains(t, overOnly, "package main")

	assert.Empty(t, pretty.NewTableFormatter(styles, config.StyleConfig{}, 60, true).FormatFile(&runner.FileResult{}))
}
