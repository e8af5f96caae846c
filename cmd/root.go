// =============================================================================
// Catalog to HTML Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── processCmd (converter process)
//   ├── configCmd  (converter config)
//   └── versionCmd (converter version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the YAML configuration (--config, default catalog.yaml)
//   2. Applies CATALOG_* environment overrides through Viper
//   3. Builds the slog logger (log_level, log_format, --verbose)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
	"github.com/ginjaninja78/catalog-html-converter/internal/types"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// appConfig is the effective configuration, set by PersistentPreRunE.
var appConfig *config.Config

// logger is the run logger, set by PersistentPreRunE.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Catalog to HTML Converter - Render a category/product catalog as nested lists",
	Long: `Catalog to HTML Converter reads a category file and a product file,
links them into one tree and writes the tree as a nested <ul>/<li> fragment.

Key Features:
  - Categories nest to any depth, in any file order
  - Product bodies are rendered from %field% templates inherited down the tree
  - Delimited text in any common character set, or Excel workbooks
  - Stable error codes: 1 file open, 2 parse, 3 save

Example Usage:
  converter process                                   # groups.csv + products.csv -> result.txt
  converter process cats.csv items.xlsx catalog.html  # explicit files
  converter config                                    # print the effective configuration`,

	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}

		if err := config.ApplyEnv(cfg, config.NewEnv()); err != nil {
			return err
		}

		log, err := newLogger(cfg, verbose, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		appConfig = cfg
		logger = log
		return nil
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. Stage failures are printed as
// "Error code :N (message)"; every failure exits with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine formats err for the terminal.
func errorLine(err error) string {
	var stageErr *types.StageError
	if errors.As(err, &stageErr) {
		return stageErr.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

// =============================================================================
// LOGGING
// =============================================================================

// newLogger builds the run logger. Every record carries the run_id of this
// invocation.
func newLogger(cfg *config.Config, verbose bool, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch cfg.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("run_id", uuid.New().String()), nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file; a missing default file means built-in defaults",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}
