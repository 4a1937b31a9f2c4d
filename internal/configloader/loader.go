// Package configloader resolves the linewidth configuration: XDG-style
// discovery, layered merging with environment and flag overrides, and
// validation.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/linewidth/pkg/config"
)

// Source names recorded in LoadResult.Sources.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceFlags   = "flags"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config. It is layered above
	// the discovered files.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv overrides os.LookupEnv for environment lookups.
	LookupEnv func(string) (string, bool)

	// CLIConfig holds settings from command-line flags. These take highest
	// precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and where it came from.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were loaded, lowest precedence first.
	LoadedFrom []string

	// Sources maps each field path to the source that last set it: a file
	// path, SourceEnv, SourceFlags or SourceDefault.
	Sources map[string]string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (LINEWIDTH_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.linewidth.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/linewidth/config.yaml)
//  6. System config (/etc/linewidth/config.yaml)
//  7. Defaults
//
// Invalid configuration is returned as a *config.ConfigurationError.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{
		Paths:   paths,
		Sources: make(map[string]string),
	}

	cfg := config.NewConfig()
	for _, field := range defaultFields {
		result.Sources[field] = SourceDefault
	}

	apply := func(override *config.Config, source string) {
		var set []string
		cfg, set = merge(cfg, override)
		for _, field := range set {
			result.Sources[field] = source
		}
	}

	files := []struct {
		path    string
		skip    bool
		explain string
	}{
		{paths.System, opts.IgnoreSystemConfig, "system"},
		{paths.User, opts.IgnoreUserConfig, "user"},
		{paths.Project, opts.IgnoreProjectConfig, "project"},
		{opts.ExplicitPath, false, "explicit"},
	}
	for _, file := range files {
		if file.path == "" || file.skip {
			continue
		}
		fileCfg, err := LoadFile(file.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", file.explain, err)
		}
		apply(fileCfg, file.path)
		result.LoadedFrom = append(result.LoadedFrom, file.path)
	}

	if !opts.IgnoreEnv {
		envCfg, err := FromEnv(opts.LookupEnv)
		if err != nil {
			return nil, err
		}
		apply(envCfg, SourceEnv)
	}

	if opts.CLIConfig != nil {
		apply(opts.CLIConfig, SourceFlags)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		first := validation.Errors[0]
		if source := result.Sources[rootField(first.Field)]; source != SourceDefault {
			first.FilePath = source
		}
		return nil, first
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads and parses one configuration file. It does not validate:
// a file may legitimately hold only part of a configuration.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.Parse(path, content)
	if err != nil {
		return nil, &config.ConfigurationError{FilePath: path, Message: err.Error()}
	}
	return cfg, nil
}

//nolint:gochecknoglobals // Read-only lookup table.
var defaultFields = []string{
	"breakpoints",
	"comment.text", "comment.threshold", "comment.auto",
	"comment.remove_above_upper", "comment.remove_below_lower",
	"style.margin", "style.font_style", "style.font_weight",
	"excluded_kinds",
	"width.unit",
}

// rootField maps "breakpoints[2].column" to "breakpoints", the granularity
// sources are tracked at.
func rootField(field string) string {
	for _, known := range []string{"breakpoints", "excluded_kinds", "comment.line_markers"} {
		if len(field) >= len(known) && field[:len(known)] == known {
			return known
		}
	}
	return field
}
