package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/runner"
)

// JSONVersion is bumped whenever JSONOutput changes incompatibly.
const JSONVersion = "1"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string     `json:"path"`
	Kind     string     `json:"kind,omitempty"`
	Excluded bool       `json:"excluded,omitempty"`
	Binary   bool       `json:"binary,omitempty"`
	Lines    []JSONLine `json:"lines"`
	Modified bool       `json:"modified,omitempty"`
	Written  bool       `json:"written,omitempty"`
	Skipped  string     `json:"skipped,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// JSONLine is one annotated line.
type JSONLine struct {
	Line      int    `json:"line"`
	Width     int    `json:"width"`
	Remaining int    `json:"remaining"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	Tier      int    `json:"tier"`
	Action    string `json:"action,omitempty"`
	Text      string `json:"text,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked     int         `json:"filesChecked"`
	FilesExcluded    int         `json:"filesExcluded"`
	FilesModified    int         `json:"filesModified"`
	FilesErrored     int         `json:"filesErrored"`
	Lines            int         `json:"lines"`
	LinesOver        int         `json:"linesOver"`
	ByTier           map[int]int `json:"byTier"`
	CommentsInserted int         `json:"commentsInserted"`
	CommentsRemoved  int         `json:"commentsRemoved"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{Version: JSONVersion, Files: []JSONFileResult{}}
	if result == nil {
		return 0, r.encode(output)
	}

	total := 0
	for _, file := range result.Files {
		entry := JSONFileResult{Path: displayPath(r.opts.WorkingDir, file.Path), Lines: []JSONLine{}}
		if file.Error != nil {
			entry.Error = file.Error.Error()
			output.Files = append(output.Files, entry)
			continue
		}
		if res := file.Result; res != nil {
			entry.Kind = res.Kind
			entry.Excluded = res.Excluded
			entry.Binary = res.Binary
			entry.Modified = res.Changed()
			entry.Written = res.Written
			entry.Skipped = res.SkipReason

			for _, line := range res.Lines {
				if !shown(line, r.opts.AllLines) {
					continue
				}
				jl := JSONLine{
					Line:      line.Number,
					Width:     line.Width,
					Remaining: line.Display.Remaining,
					Label:     line.Display.Label,
					Color:     line.Display.Color,
					Tier:      line.Display.Index,
				}
				if line.Action != comment.None {
					jl.Action = line.Action.String()
					jl.Text = line.Text
				}
				entry.Lines = append(entry.Lines, jl)
				if line.Over() {
					total++
				}
			}
		}
		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:     stats.FilesProcessed - stats.FilesExcluded,
		FilesExcluded:    stats.FilesExcluded,
		FilesModified:    stats.FilesModified,
		FilesErrored:     stats.FilesErrored,
		Lines:            stats.LinesTotal,
		LinesOver:        stats.LinesOver,
		ByTier:           stats.LinesByTier,
		CommentsInserted: stats.CommentsInserted,
		CommentsRemoved:  stats.CommentsRemoved,
	}

	return total, r.encode(output)
}

func (r *JSONReporter) encode(output JSONOutput) error {
	encoder := json.NewEncoder(r.bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
