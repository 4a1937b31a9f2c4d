package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/linewidth/internal/configloader"
	"github.com/yaklabco/linewidth/internal/ui/pretty"
)

type configCmdFlags struct {
	config  configFlags
	format  string
	sources bool
	env     bool
}

func newConfigCommand() *cobra.Command {
	flags := &configCmdFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Resolve the configuration the way annotate does (defaults, system, user and
project files, --config, LINEWIDTH_* variables and flags), validate it and
print the result. Invalid configuration exits with status 65.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or json")
	cmd.Flags().BoolVar(&flags.sources, "sources", false, "show where each setting came from")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list the supported environment variables")
	addConfigFlags(cmd.Flags(), &flags.config)

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configCmdFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		writeEnvVars(out)
		return nil
	}

	cliCfg, err := flags.config.toConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}

	loadResult, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	var data []byte
	switch flags.format {
	case "yaml":
		data, err = loadResult.Config.ToYAML()
	case "json":
		data, err = loadResult.Config.ToJSON()
	default:
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}

	if flags.sources {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
		writeSources(out, styles, loadResult)
	}
	return nil
}

func writeSources(out io.Writer, styles *pretty.Styles, result *configloader.LoadResult) {
	fields := make([]string, 0, len(result.Sources))
	for field := range result.Sources {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.SummaryTitle.Render("Sources"))
	for _, field := range fields {
		fmt.Fprintf(out, "  %-28s%s\n", field, styles.Dim.Render(result.Sources[field]))
	}
	if len(result.LoadedFrom) > 0 {
		fmt.Fprintf(out, "\nLoaded files: %s\n", strings.Join(result.LoadedFrom, ", "))
	}
}

func writeEnvVars(out io.Writer) {
	for _, envVar := range configloader.ListEnvVars() {
		fmt.Fprintf(out, "%-30s %-28s %s\n", envVar.Name, envVar.Field, envVar.Description)
	}
}
