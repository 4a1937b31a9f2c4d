package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/linewidth/internal/logging"
	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/fsutil"
	"github.com/yaklabco/linewidth/pkg/reporter"
	"github.com/yaklabco/linewidth/pkg/runner"
)

type annotateFlags struct {
	config         configFlags
	fix            bool
	dryRun         bool
	format         string
	over           bool
	noSummary      bool
	jobs           int
	noBackups      bool
	restore        bool
	strict         bool
	extensions     []string
	exclude        []string
	followSymlinks bool
}

func newAnnotateCommand() *cobra.Command {
	flags := &annotateFlags{}

	cmd := &cobra.Command{
		Use:   "annotate [paths...]",
		Short: "Annotate every line of the given files with its remaining width",
		Long:  annotateLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, args, flags)
		},
	}

	addAnnotateFlags(cmd, flags)

	return cmd
}

const annotateLongDescription = `Run the width indicator over every line of each file, as if the cursor
were placed at the end of the line, and print the remaining-width label.

Lines that run slightly past the last breakpoint get the ignore comment;
lines that left the tolerance band lose it. Without --fix those toggles are
only reported and the command exits with status 1.

Examples:
  linewidth annotate src/              # Annotate a directory
  linewidth annotate main.ts --over    # Only lines past the first breakpoint
  linewidth annotate --fix             # Insert and remove ignore comments
  linewidth annotate --dry-run         # Show the comment toggles as a diff
  linewidth annotate --format json     # Machine-readable output
  linewidth annotate --restore         # Put back the files saved by --fix`

func addAnnotateFlags(cmd *cobra.Command, flags *annotateFlags) {
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "write comment toggles back to the files")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show comment toggles as a diff without writing")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, diff, summary")
	cmd.Flags().BoolVar(&flags.over, "over", false, "only report lines past the first breakpoint and toggled lines")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.restore, "restore", false, "restore files from the backups written by --fix")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 2 when any line is past the first breakpoint")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "only walk files with these extensions (e.g. .ts,.go)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")

	addConfigFlags(cmd.Flags(), &flags.config)

	cmd.MarkFlagsMutuallyExclusive("fix", "dry-run", "restore")
}

func runAnnotate(cmd *cobra.Command, args []string, flags *annotateFlags) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	cliCfg, err := flags.config.toConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	if flags.restore {
		return runRestore(cmd, args, flags)
	}
	if flags.dryRun && format == reporter.FormatText {
		format = reporter.FormatDiff
	}

	return annotatePaths(cmd, args, cliCfg, flags, format)
}

// annotatePaths loads the configuration, annotates paths and writes the
// report. The returned error selects the exit code.
func annotatePaths(
	cmd *cobra.Command,
	paths []string,
	cliCfg *config.Config,
	flags *annotateFlags,
	format reporter.Format,
) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	loadResult, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loadResult.Config

	runOpts, err := flags.runnerOptions(paths)
	if err != nil {
		return err
	}
	runOpts.Config = cfg
	runOpts.Logger = logger

	logger.Debug("starting annotate run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldFix, runOpts.Fix,
		logging.FieldDryRun, runOpts.DryRun,
		logging.FieldUnit, cfg.Width.Unit)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("annotate run failed"), err)
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("file failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		AllLines:    !flags.over,
		ShowSummary: !flags.noSummary,
		Style:       cfg.Style,
		Breakpoints: cfg.Breakpoints,
		TermWidth:   terminalWidth(),
		WorkingDir:  runOpts.WorkingDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("annotate run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldLinesOver, result.Stats.LinesOver)

	return errorForCode(ExitCodeFromResult(result, flags.fix || flags.dryRun, flags.strict))
}

// runnerOptions maps the flags onto runner options without a config.
func (f *annotateFlags) runnerOptions(paths []string) (runner.Options, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return runner.Options{}, fmt.Errorf("get working directory: %w", err)
	}
	return runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(f.extensions),
		ExcludeGlobs:   f.exclude,
		FollowSymlinks: f.followSymlinks,
		Jobs:           f.jobs,
		Fix:            f.fix,
		DryRun:         f.dryRun,
		Backup:         fsutil.BackupConfig{Enabled: !f.noBackups},
	}, nil
}

// runRestore puts back the backups of the files the paths resolve to.
func runRestore(cmd *cobra.Command, paths []string, flags *annotateFlags) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	opts, err := flags.runnerOptions(paths)
	if err != nil {
		return err
	}

	files, err := runner.Discover(ctx, opts)
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	var errs []error
	restored := 0
	for _, path := range files {
		ok, err := fsutil.RestoreBackup(ctx, path, opts.Backup)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if ok {
			restored++
			logger.Info("restored", logging.FieldPath, path)
		}
	}

	logger.Info("restore finished", logging.FieldFiles, restored)
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrFilesFailed}, errs...)...)
	}
	return nil
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// terminalWidth returns the width of stdout, or 0 when it is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
