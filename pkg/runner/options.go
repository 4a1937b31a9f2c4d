// Package runner annotates many files concurrently: every line is fed
// through the adapter against an in-memory document, and comment toggles
// are optionally written back.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/linewidth/pkg/config"
	"github.com/yaklabco/linewidth/pkg/fsutil"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified files or directories.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (lowercase,
	// with leading dot). Empty means every non-vendored file. Files named
	// explicitly in Paths are always processed.
	Extensions []string

	// ExcludeGlobs skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the validated configuration for this run.
	Config *config.Config

	// Fix writes comment toggles back to disk.
	Fix bool

	// DryRun computes the diff of the toggles without writing.
	DryRun bool

	// Backup controls sidecar backups before writing.
	Backup fsutil.BackupConfig

	// Logger receives adapter and runner logs. Defaults to the logger carried
	// by the run context.
	Logger *log.Logger
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
