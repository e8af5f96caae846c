// =============================================================================
// Catalog to HTML Converter - Config Command
// =============================================================================
//
// This file defines the 'config' command, which prints the effective
// configuration (file, defaults and environment overrides applied) as YAML.
// The output is a valid catalog.yaml.
//
// COMMAND USAGE:
//   converter config
//   CATALOG_INPUT_CSV_ENCODING=windows-1251 converter config
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd represents the 'config' command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)

		if err := enc.Encode(appConfig); err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
