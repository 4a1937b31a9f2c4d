package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/linewidth/internal/configloader"
	"github.com/yaklabco/linewidth/internal/logging"
	"github.com/yaklabco/linewidth/pkg/config"
)

// configFlags are the configuration overrides shared by commands that run
// the indicator.
type configFlags struct {
	breakpoints   string
	commentText   string
	threshold     int
	noAuto        bool
	excludedKinds []string
	unit          string
	margin        int
}

func addConfigFlags(flags *pflag.FlagSet, cf *configFlags) {
	flags.StringVar(&cf.breakpoints, "breakpoints", "",
		`breakpoints as "column:color" pairs, e.g. "80:green,120:red"`)
	flags.StringVar(&cf.commentText, "comment-text", "", "ignore comment text (default: the line-comment marker + \" prettier-ignore\")")
	flags.IntVar(&cf.threshold, "threshold", config.DefaultThreshold,
		"width past the last breakpoint within which the comment is inserted")
	flags.BoolVar(&cf.noAuto, "no-auto", false, "never insert or remove the ignore comment")
	flags.StringSliceVar(&cf.excludedKinds, "exclude-kinds", nil, "document kinds to skip")
	flags.StringVar(&cf.unit, "unit", "", "width unit: chars or cells")
	flags.IntVar(&cf.margin, "margin", config.DefaultMargin, "cells between the line end and the label")
}

// toConfig returns a partial config holding only the flags the user set.
func (cf *configFlags) toConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := &config.Config{}

	if flags.Changed("breakpoints") {
		breakpoints, err := configloader.ParseBreakpoints(cf.breakpoints)
		if err != nil {
			return nil, fmt.Errorf("--breakpoints: %w", err)
		}
		cfg.Breakpoints = breakpoints
	}
	if flags.Changed("comment-text") {
		cfg.Comment.Text = config.String(cf.commentText)
	}
	if flags.Changed("threshold") {
		cfg.Comment.Threshold = config.Int(cf.threshold)
	}
	if flags.Changed("no-auto") {
		cfg.Comment.Auto = config.Bool(!cf.noAuto)
	}
	if flags.Changed("exclude-kinds") {
		cfg.ExcludedKinds = cf.excludedKinds
		if cfg.ExcludedKinds == nil {
			cfg.ExcludedKinds = []string{}
		}
	}
	if flags.Changed("unit") {
		cfg.Width.Unit = config.WidthUnit(cf.unit)
	}
	if flags.Changed("margin") {
		cfg.Style.Margin = config.Int(cf.margin)
	}
	return cfg, nil
}

// loadConfig resolves the configuration for cmd, layering cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(commandContext(cmd))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
