package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned when an exclude glob does not compile.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

// excludeSet holds compiled exclude globs. Patterns without a slash match the
// base name; the rest match the slash-separated path relative to the working
// directory, where "**" crosses directories and "*" does not.
type excludeSet struct {
	byName []glob.Glob
	byPath []glob.Glob
}

func compileExcludes(patterns []string) (*excludeSet, error) {
	set := &excludeSet{}
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidPattern, pattern, err)
		}
		if strings.Contains(pattern, "/") {
			set.byPath = append(set.byPath, g)
		} else {
			set.byName = append(set.byName, g)
		}
	}
	return set, nil
}

// matches reports whether relPath is excluded. Directories also match
// patterns written for their contents, so "testdata/**" prunes testdata.
func (s *excludeSet) matches(relPath string, dir bool) bool {
	relPath = filepath.ToSlash(relPath)
	base := relPath[strings.LastIndex(relPath, "/")+1:]
	for _, g := range s.byName {
		if g.Match(base) {
			return true
		}
	}
	for _, g := range s.byPath {
		if g.Match(relPath) || (dir && g.Match(relPath+"/")) {
			return true
		}
	}
	return false
}

// walker collects files under one Discover call.
type walker struct {
	workDir    string
	extensions []string
	excludes   *excludeSet
	follow     bool

	seen  map[string]struct{}
	files []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// skipped reports hidden entries and vendored or generated trees.
func (w *walker) skipped(name, relPath string, dir bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	slashed := filepath.ToSlash(relPath)
	if dir {
		slashed += "/"
	}
	return enry.IsVendor(slashed) || w.excludes.matches(relPath, dir)
}

func (w *walker) wantsExtension(path string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path)))
}

// Discover expands opts.Paths into files. Directories are walked, skipping
// hidden and vendored entries; files named explicitly are always kept unless
// excluded. It returns a sorted list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	excludes, err := compileExcludes(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions = append(extensions, strings.ToLower(ext))
	}

	w := &walker{
		workDir:    workDir,
		extensions: extensions,
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		switch {
		case info.IsDir():
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
		case !excludes.matches(w.rel(absPath), false):
			w.add(absPath)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk adds every matching file under root. Unreadable directories are
// skipped; broken symlinks are ignored.
func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)

		if entry.IsDir() {
			if path != root && w.skipped(entry.Name(), relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlink
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable target
			}
			if info.IsDir() {
				if !w.follow || w.skipped(entry.Name(), relPath, true) {
					return nil
				}
				// Walk the target; WalkDir does not descend into a symlinked root.
				return w.walk(ctx, target)
			}
		}

		if !w.skipped(entry.Name(), relPath, false) && w.wantsExtension(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}
