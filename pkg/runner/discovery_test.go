package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linewidth/pkg/runner"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.go": "package main\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"main.go"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "main.go")}, files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.go":               "package main\n",
		"app/handler.ts":        "export {}\n",
		"README.md":             "# readme\n",
		".hidden/secret.go":     "package hidden\n",
		".env":                  "KEY=1\n",
		"vendor/lib/lib.go":     "package lib\n",
		"node_modules/x/x.js":   "module.exports = 1\n",
		"testdata/generated.go": "package testdata\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"testdata/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "app/handler.ts"),
		filepath.Join(dir, "main.go"),
	}, files)
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.go":        "package main\n",
		"app/handler.TS": "export {}\n",
		"README.md":      "# readme\n",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".go", ".ts"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "app/handler.TS"),
		filepath.Join(dir, "main.go"),
	}, files)
}

func TestDiscover_ExplicitFileIgnoresExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"script": "#!/bin/sh\necho hi\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"script"},
		WorkingDir: dir,
		Extensions: []string{".go"},
	})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"main.go": "package main\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "main.go", "./main.go"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"does-not-exist.go"},
		WorkingDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.go":              "package main\n",
		"api/api.pb.go":        "package api\n",
		"api/api.go":           "package api\n",
		"internal/gen/gen.go":  "package gen\n",
		"internal/core/x.go":   "package core\n",
		"docs/guide/readme.md": "# guide\n",
	}

	tests := []struct {
		name    string
		exclude []string
		want    []string
	}{
		{
			name:    "base name pattern",
			exclude: []string{"*.pb.go"},
			want:    []string{"api/api.go", "docs/guide/readme.md", "internal/core/x.go", "internal/gen/gen.go", "main.go"},
		},
		{
			name:    "directory tree",
			exclude: []string{"internal/gen/**"},
			want:    []string{"api/api.go", "api/api.pb.go", "docs/guide/readme.md", "internal/core/x.go", "main.go"},
		},
		{
			name:    "anywhere",
			exclude: []string{"**/*.md"},
			want:    []string{"api/api.go", "api/api.pb.go", "internal/core/x.go", "internal/gen/gen.go", "main.go"},
		},
		{
			name:    "single star stays in one directory",
			exclude: []string{"internal/*.go"},
			want:    []string{"api/api.go", "api/api.pb.go", "docs/guide/readme.md", "internal/core/x.go", "internal/gen/gen.go", "main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFiles(t, dir, files)

			got, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: tt.exclude,
			})
			require.NoError(t, err)

			want := make([]string, 0, len(tt.want))
			for _, rel := range tt.want {
				want = append(want, filepath.Join(dir, rel))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestDiscover_InvalidExclude(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[abc"},
	})
	require.ErrorIs(t, err, runner.ErrInvalidPattern)
}
