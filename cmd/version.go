// =============================================================================
// Catalog to HTML Converter - Version Command
// =============================================================================
//
// This file defines the 'version' command.
//
// COMMAND USAGE:
//   converter version           # full build report
//   converter version --short   # version string only, for scripts
//
// OUTPUT:
//   Catalog to HTML Converter 1.0.0
//   Build Date:  2026-01-01
//   Go Version:  go1.24.11
//   Config File: catalog.yaml
//   Env Prefix:  CATALOG_
//
// A binary built without the mage ldflags reports the module version that
// `go install` recorded in its build info.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
)

// These variables are set at build time using ldflags, see magefiles.
var (
	// Version is the application version.
	Version = "dev"

	// BuildDate is the date the application was built.
	BuildDate = "unknown"
)

var shortVersion bool

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		version := resolveVersion()

		if shortVersion {
			fmt.Fprintln(out, version)
			return
		}

		fmt.Fprintf(out, "Catalog to HTML Converter %s\n", version)
		fmt.Fprintf(out, "Build Date:  %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version:  %s\n", runtime.Version())
		fmt.Fprintf(out, "Config File: %s\n", cfgFile)
		fmt.Fprintf(out, "Env Prefix:  %s_\n", config.EnvPrefix)
	},
}

// resolveVersion prefers the ldflags stamp, then the main module version
// from the build info.
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Version
	}
	return info.Main.Version
}

func init() {
	versionCmd.Flags().BoolVar(&shortVersion, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}
