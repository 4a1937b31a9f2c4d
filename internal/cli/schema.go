package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/linewidth/pkg/config"
)

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Long: `Print the JSON Schema describing .linewidth.yml and .linewidth.json.
Point an editor's YAML or JSON language server at it for completion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := config.JSONSchema()
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(schema); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			return nil
		},
	}
}
