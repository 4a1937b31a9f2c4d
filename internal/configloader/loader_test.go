package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/linewidth/pkg/config"
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		LookupEnv:          noEnv,
	}
}

func noEnv(string) (string, bool) { return "", false }

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}

func textOf(cfg *config.Config) string {
	text, _ := cfg.Comment.TextValue()
	return text
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.LastColumn() != 120 {
		t.Errorf("LastColumn() = %d, want 120", result.Config.LastColumn())
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
	if got := result.Sources["comment.text"]; got != SourceDefault {
		t.Errorf("Sources[comment.text] = %q, want %q", got, SourceDefault)
	}
}

func TestLoad_ProjectConfigUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(root, ".linewidth.yml")
	writeConfig(t, configPath, `
breakpoints:
  - column: 72
    color: green
  - column: 100
    color: red
comment:
  text: "// nolint:lll"
  threshold: 3
`)
	nested := filepath.Join(root, "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.LastColumn() != 100 || textOf(cfg) != "// nolint:lll" || cfg.Comment.ThresholdValue() != 3 {
		t.Errorf("config = %+v", cfg)
	}
	if !cfg.Comment.AutoEnabled() {
		t.Error("unset auto should keep the default")
	}
	if result.Paths.Project != configPath {
		t.Errorf("Project = %q, want %q", result.Paths.Project, configPath)
	}
	if result.Sources["breakpoints"] != configPath || result.Sources["width.unit"] != SourceDefault {
		t.Errorf("Sources = %v", result.Sources)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, filepath.Join(root, ".linewidth.yml"), "comment:\n  text: outer\n")
	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolated(repo))
	if err != nil {
		t.Fatal(err)
	}
	if result.Paths.Project != "" {
		t.Errorf("Project = %q, want none past the VCS root", result.Paths.Project)
	}
}

func TestLoad_JSONC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".linewidth.jsonc"), `{
  // editors write these
  "excluded_kinds": ["markdown", "json",],
  "width": {"unit": "cells"}
}`)

	result, err := Load(context.Background(), isolated(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Width.Unit != config.UnitCells || !result.Config.IsExcluded("json") {
		t.Errorf("config = %+v", result.Config)
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".linewidth.yml"), "comment:\n  text: project\n  threshold: 1\nstyle:\n  margin: 1\n")
	explicit := filepath.Join(dir, "ci", "linewidth.yaml")
	writeConfig(t, explicit, "comment:\n  text: explicit\n  threshold: 2\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit
	opts.LookupEnv = envFrom(map[string]string{"LINEWIDTH_COMMENT_THRESHOLD": "7"})
	opts.CLIConfig = &config.Config{Comment: config.CommentConfig{Auto: config.Bool(false)}}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if textOf(cfg) != "explicit" {
		t.Errorf("text = %q, want explicit", textOf(cfg))
	}
	if cfg.Comment.ThresholdValue() != 7 {
		t.Errorf("threshold = %d, want 7 from env", cfg.Comment.ThresholdValue())
	}
	if cfg.Comment.AutoEnabled() {
		t.Error("auto should be disabled by flags")
	}
	if cfg.Style.MarginValue() != 1 {
		t.Errorf("margin = %d, want 1 from project", cfg.Style.MarginValue())
	}

	want := map[string]string{
		"comment.text":      explicit,
		"comment.threshold": SourceEnv,
		"comment.auto":      SourceFlags,
		"style.margin":      filepath.Join(dir, ".linewidth.yml"),
	}
	for field, source := range want {
		if result.Sources[field] != source {
			t.Errorf("Sources[%s] = %q, want %q", field, result.Sources[field], source)
		}
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".linewidth.yml")
	writeConfig(t, configPath, `
breakpoints:
  - column: 100
    color: red
  - column: 80
    color: green
`)

	_, err := Load(context.Background(), isolated(dir))
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %v, want *config.ConfigurationError", err)
	}
	if cfgErr.Field != "breakpoints[1].column" || cfgErr.FilePath != configPath {
		t.Errorf("error = %+v", cfgErr)
	}
	if !errors.Is(err, config.ErrConfiguration) {
		t.Error("error should match ErrConfiguration")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, ".linewidth.yml"), "breakpoints: [unterminated\n")

	_, err := Load(context.Background(), isolated(dir))
	if !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("error = %v, want a configuration error", err)
	}
}

func TestLoad_MissingExplicit(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "missing.yml")

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.LookupEnv = envFrom(map[string]string{"LINEWIDTH_COMMENT_AUTO": "sometimes"})

	_, err := Load(context.Background(), opts)
	if !errors.Is(err, config.ErrConfiguration) {
		t.Fatalf("error = %v, want a configuration error", err)
	}
}

func TestDiscoverPaths_UserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	userPath := filepath.Join(home, "linewidth", "config.yaml")
	writeConfig(t, userPath, "width:\n  unit: cells\n")

	paths, err := DiscoverPaths(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if paths.User != userPath {
		t.Errorf("User = %q, want %q", paths.User, userPath)
	}
}

func TestLoad_EmptyCommentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(t *testing.T, opts *LoadOptions)
	}{
		{
			name: "file",
			setup: func(t *testing.T, opts *LoadOptions) {
				opts.ExplicitPath = filepath.Join(t.TempDir(), "linewidth.yml")
				writeConfig(t, opts.ExplicitPath, "comment:\n  text: \"\"\n")
			},
		},
		{
			name: "jsonc file",
			setup: func(t *testing.T, opts *LoadOptions) {
				opts.ExplicitPath = filepath.Join(t.TempDir(), "linewidth.jsonc")
				writeConfig(t, opts.ExplicitPath, "{\n  // cleared\n  \"comment\": {\"text\": \"\"}\n}\n")
			},
		},
		{
			name: "flags",
			setup: func(_ *testing.T, opts *LoadOptions) {
				opts.CLIConfig = &config.Config{Comment: config.CommentConfig{Text: config.String("")}}
			},
		},
		{
			name: "env",
			setup: func(_ *testing.T, opts *LoadOptions) {
				opts.LookupEnv = envFrom(map[string]string{"LINEWIDTH_COMMENT_TEXT": ""})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(t.TempDir())
			tt.setup(t, &opts)

			result, err := Load(context.Background(), opts)
			if err == nil {
				t.Fatalf("Load() = %q, want a configuration error", textOf(result.Config))
			}
			var cfgErr *config.ConfigurationError
			if !errors.As(err, &cfgErr) || cfgErr.Field != "comment.text" {
				t.Fatalf("error = %v, want comment.text configuration error", err)
			}
		})
	}
}

func TestLoad_UnsetEmptyEnvIgnored(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.LookupEnv = envFrom(map[string]string{"LINEWIDTH_COMMENT_THRESHOLD": "", "LINEWIDTH_WIDTH_UNIT": ""})

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Sources["comment.threshold"] != SourceDefault {
		t.Errorf("empty LINEWIDTH_COMMENT_THRESHOLD should be ignored, source = %q", result.Sources["comment.threshold"])
	}
	if _, ok := result.Config.Comment.TextValue(); ok {
		t.Error("comment text should stay unset")
	}
}
