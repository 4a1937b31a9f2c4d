package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/fsutil"
	"github.com/yaklabco/linewidth/pkg/runner"
)

// Exit codes for linewidth.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitPendingComments indicates comment toggles are due but --fix was not given.
	ExitPendingComments = 1

	// ExitLinesOver indicates lines past the first breakpoint (with --strict).
	ExitLinesOver = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Errors returned by commands to select an exit code.
var (
	ErrPendingComments = errors.New("ignore comments need updating; run with --fix")
	ErrLinesOver       = errors.New("lines exceed the first breakpoint")
	ErrInvalidUsage    = errors.New("invalid usage")
	ErrFilesFailed     = errors.New("some files could not be processed")
)

// ExitCodeFromResult determines the exit code of an annotate run.
func ExitCodeFromResult(result *runner.Result, fix, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.HasErrors():
		return ExitIOError
	case !fix && result.HasChanges():
		return ExitPendingComments
	case strict && result.Stats.LinesOver > 0:
		return ExitLinesOver
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrPendingComments):
		return ExitPendingComments
	case errors.Is(err, ErrLinesOver):
		return ExitLinesOver
	case errors.Is(err, ErrInvalidUsage), errors.Is(err, runner.ErrInvalidPattern):
		return ExitInvalidUsage
	case errors.Is(err, config.ErrConfiguration):
		return ExitConfigError
	case errors.Is(err, ErrFilesFailed),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, runner.ErrFileNotFound),
		errors.Is(err, runner.ErrPermissionDenied),
		errors.Is(err, runner.ErrWriteFailure):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// errorForCode converts a non-zero result code back into the error that
// produces it.
func errorForCode(code int) error {
	switch code {
	case ExitPendingComments:
		return ErrPendingComments
	case ExitLinesOver:
		return ErrLinesOver
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}
