package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/linewidth/internal/logging"
	"github.com/yaklabco/linewidth/pkg/adapter"
	"github.com/yaklabco/linewidth/pkg/comment"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/document"
	"github.com/yaklabco/linewidth/pkg/fix"
	"github.com/yaklabco/linewidth/pkg/fsutil"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrWriteFailure     = errors.New("write failed")
)

// Annotate runs the adapter over every line of content, as if the cursor
// were placed at the end of each line in turn, and reports the indicator
// and the comment toggles. Toggles are applied to the returned Modified
// content only; nothing is written.
func Annotate(ctx context.Context, path string, content []byte, cfg *config.Config, logger *log.Logger) (*FileResult, error) {
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	result := &FileResult{Path: path, Original: content}

	if enry.IsBinary(content) {
		result.Binary = true
		return result, nil
	}

	doc := document.New(path, string(content))
	result.Kind = doc.Kind()
	if cfg.IsExcluded(result.Kind) {
		result.Excluded = true
		return result, nil
	}

	annotator := adapter.New(doc, adapter.WithLogger(logger))
	if err := annotator.Reload(ctx, cfg); err != nil {
		return nil, err
	}

	event := adapter.Event{Kind: adapter.EventTextChanged}
	for i := range doc.LineCount() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("annotate cancelled: %w", ctx.Err())
		default:
		}

		before := doc.Line(i)
		if before == "" {
			continue
		}

		doc.MoveToEnd(i)
		if err := annotator.HandleEvent(ctx, event); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		overlay, ok := doc.Overlay()
		if !ok || overlay.Line != i {
			continue
		}

		report := LineReport{
			Number:  i + 1,
			Before:  before,
			Text:    doc.Line(i),
			Width:   overlay.Width,
			Display: overlay.Display,
		}
		switch {
		case len(report.Text) > len(before):
			report.Action = comment.Insert
			result.Inserted++
		case len(report.Text) < len(before):
			report.Action = comment.Remove
			result.Removed++
		}
		result.Lines = append(result.Lines, report)
	}

	if result.Inserted+result.Removed > 0 {
		result.Modified = []byte(doc.Content())
	}

	logger.Debug("annotated",
		logging.FieldPath, path,
		logging.FieldKind, result.Kind,
		logging.FieldLinesOver, result.LinesOver(),
		logging.FieldEdits, result.Inserted+result.Removed)

	return result, nil
}

// ProcessFile reads, annotates and, in fix mode, safely rewrites one file.
//
// The write path:
//  1. Read and snapshot the original file.
//  2. Annotate in memory.
//  3. In dry-run mode, build the diff and stop.
//  4. Skip the file if it changed on disk since step 1.
//  5. Create a backup (if enabled).
//  6. Write the modified content atomically.
func ProcessFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	content, snapshot, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := Annotate(ctx, path, content, opts.Config, opts.Logger)
	if err != nil {
		return nil, err
	}

	if !result.Changed() || !(opts.Fix || opts.DryRun) {
		return result, nil
	}

	if opts.DryRun {
		diff, err := fix.GenerateDiff(path, splitLines(result.Original), splitLines(result.Modified))
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", path, err)
		}
		result.Diff = diff
		return result, nil
	}

	modified, err := snapshot.Changed(ctx)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.Modified, snapshot.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

func splitLines(content []byte) []string {
	return strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
}

// categorizeError wraps an error with the matching sentinel.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}
