package runner

import (
	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/fix"
	"github.com/yaklabco/linewidth/pkg/indicator"
)

// LineReport is the indicator and toggle outcome for one line.
type LineReport struct {
	// Number is the 1-based line number.
	Number int

	// Before is the line as read.
	Before string

	// Text is the line after any comment toggle.
	Text string

	// Width is the measured width of Before.
	Width int

	Display indicator.Display

	// Action is the toggle applied to the line, if any.
	Action comment.Kind
}

// Over reports whether the line is past the first breakpoint.
func (l LineReport) Over() bool {
	return l.Display.Index > 0 || l.Display.Remaining < 0
}

// FileResult is the outcome of annotating one file.
type FileResult struct {
	Path string
	Kind string

	// Excluded is set when the kind is in excluded_kinds; no lines are reported.
	Excluded bool

	// Binary is set for files that are not text; no lines are reported.
	Binary bool

	// Lines holds one report per non-empty line.
	Lines []LineReport

	// Inserted and Removed count comment toggles.
	Inserted int
	Removed  int

	// Original and Modified are the file content before and after toggles.
	// Modified is nil when nothing changed.
	Original []byte
	Modified []byte

	// Diff is set in dry-run mode when the content changed.
	Diff *fix.Diff

	// Written is set when the modified content was saved.
	Written bool

	// BackupCreated is set when a backup was written before saving.
	BackupCreated bool

	// Skipped is set when the file changed on disk during processing.
	Skipped    bool
	SkipReason string
}

// Changed reports whether any toggle was applied in memory.
func (r *FileResult) Changed() bool {
	return r != nil && r.Modified != nil
}

// LinesOver counts lines past the first breakpoint.
func (r *FileResult) LinesOver() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, line := range r.Lines {
		if line.Over() {
			count++
		}
	}
	return count
}

// FileOutcome pairs a path with its result or error.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result is nil if the file could not be processed.
	Result *FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesExcluded   int
	FilesSkipped    int
	FilesErrored    int
	FilesModified   int

	// LinesTotal counts annotated (non-empty) lines.
	LinesTotal int

	// LinesOver counts lines past the first breakpoint.
	LinesOver int

	// LinesByTier counts lines per selected breakpoint index.
	LinesByTier map[int]int

	CommentsInserted int
	CommentsRemoved  int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasChanges reports whether any file needs, or received, a comment toggle.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.CommentsInserted+r.Stats.CommentsRemoved > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{LinesByTier: make(map[int]int)}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++

	if res.Excluded || res.Binary {
		r.Stats.FilesExcluded++
		return
	}
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Written {
		r.Stats.FilesModified++
	}

	r.Stats.CommentsInserted += res.Inserted
	r.Stats.CommentsRemoved += res.Removed
	r.Stats.LinesTotal += len(res.Lines)

	for _, line := range res.Lines {
		r.Stats.LinesByTier[line.Display.Index]++
		if line.Over() {
			r.Stats.LinesOver++
		}
	}
}
