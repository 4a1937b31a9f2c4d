package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/linewidth/internal/logging"
	"github.com/yaklabco/linewidth/pkg/fsutil"
	"github.com/yaklabco/linewidth/pkg/reporter"
)

// defaultDebounce collapses the burst of events an editor save produces.
const defaultDebounce = 150 * time.Millisecond

type watchFlags struct {
	annotate annotateFlags
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-annotate a file every time it is saved",
		Long: `Annotate a file, then watch it and annotate it again after every save.
The configuration is reloaded on each run, so edits to .linewidth.yml apply
on the next save.

With --fix the ignore comments are written back; the resulting write is
picked up once more and settles without further changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.annotate.fix, "fix", false, "write comment toggles back after each save")
	cmd.Flags().BoolVar(&flags.annotate.over, "over", false,
		"only report lines past the first breakpoint and toggled lines")
	cmd.Flags().StringVar(&flags.annotate.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().BoolVar(&flags.annotate.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before re-annotating")
	addConfigFlags(cmd.Flags(), &flags.annotate.config)

	return cmd
}

func runWatch(cmd *cobra.Command, path string, flags *watchFlags) error {
	format, err := reporter.ParseFormat(flags.annotate.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	cliCfg, err := flags.annotate.config.toConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	info, err := os.Stat(absPath)
	switch {
	case err != nil:
		return fmt.Errorf("watch %s: %w", path, fsutil.ErrNotFound)
	case info.IsDir():
		return fmt.Errorf("watch %s: %w", path, fsutil.ErrIsDirectory)
	}

	w := &fileWatcher{
		path:     absPath,
		debounce: flags.debounce,
		logger:   logging.FromContext(commandContext(cmd)),
		annotate: func(_ context.Context) error {
			return annotatePaths(cmd, []string{absPath}, cliCfg, &flags.annotate, format)
		},
	}
	return w.run(commandContext(cmd))
}

// fileWatcher calls annotate once at start and again after each burst of
// writes to path. It watches the parent directory so that editors which save
// by renaming a temporary file over the original are still seen.
type fileWatcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
	annotate func(ctx context.Context) error

	// ready is closed once the watch is established.
	ready chan struct{}
}

func (w *fileWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.pass(ctx)
	if w.ready != nil {
		close(w.ready)
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("file changed", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			w.pass(ctx)
		}
	}
}

func (w *fileWatcher) pass(ctx context.Context) {
	err := w.annotate(ctx)
	if err == nil || errors.Is(err, ErrPendingComments) || errors.Is(err, ErrLinesOver) {
		return
	}
	w.logger.Warn("annotate failed", logging.FieldPath, w.path, logging.FieldError, err)
}
