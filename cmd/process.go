// =============================================================================
// Catalog to HTML Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs one conversion.
//
// COMMAND USAGE:
//   converter process [categories [products [output]]]
//
// ARGUMENTS:
//   Each omitted argument falls back to the configuration:
//     categories -> input.categories_file (groups.csv)
//     products   -> input.products_file   (products.csv)
//     output     -> output.result_file    (result.txt)
//
// PROCESSING PIPELINE:
//   0. Check that both input files exist
//   1. Load the category file
//   2. Load the product file
//   3. Link the catalog tree
//   4. Render and write the result
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
	"github.com/ginjaninja78/catalog-html-converter/internal/converter"
	"github.com/ginjaninja78/catalog-html-converter/internal/types"
	"github.com/ginjaninja78/catalog-html-converter/pkg/utils"
)

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process [categories [products [output]]]",
	Short: "Convert a category file and a product file into a nested list document",
	Long: `The process command loads the category and product files, links products
under their categories and categories under each other, and writes the
resulting <ul>/<li> fragment to the output file.

Products whose category is unknown are left out without an error, as are
categories that never reach a root.

On error the command prints "Error code :N (message)" and exits with status 1:
  1 - a source file could not be opened
  2 - a source file could not be parsed
  3 - the result could not be saved`,

	Args: cobra.MaximumNArgs(3),

	RunE: func(cmd *cobra.Command, args []string) error {
		categories, products, output := resolvePaths(args, appConfig)

		if err := checkInputs(categories, products); err != nil {
			return err
		}

		conv := converter.New(categories, products, appConfig, logger)
		result := conv.Run(output)
		if !result.Success {
			return result.Error
		}

		stats := result.Stats
		fmt.Fprintf(cmd.OutOrStdout(), "  ✓ %s + %s -> %s\n", categories, products, output)
		fmt.Fprintf(cmd.OutOrStdout(), "Categories: %d (roots %d, unrooted %d)\n",
			stats.Link.Categories, stats.Link.Roots, stats.Link.Unrooted)
		fmt.Fprintf(cmd.OutOrStdout(), "Products:   %d (orphaned %d)\n",
			stats.Link.Products, stats.Link.OrphanProducts)
		fmt.Fprintf(cmd.OutOrStdout(), "Time:       %s\n", stats.ProcessingTime)

		return nil
	},
}

// resolvePaths fills omitted positional arguments from the configuration.
func resolvePaths(args []string, cfg *config.Config) (categories, products, output string) {
	categories = cfg.Input.CategoriesFile
	products = cfg.Input.ProductsFile
	output = cfg.Output.ResultFile

	if len(args) > 0 {
		categories = args[0]
	}
	if len(args) > 1 {
		products = args[1]
	}
	if len(args) > 2 {
		output = args[2]
	}

	return categories, products, output
}

// checkInputs fails with the open-stage code before any file is read when
// an input path is not a regular file.
func checkInputs(paths ...string) error {
	for _, path := range paths {
		if !utils.FileExists(path) {
			logger.Error("input file not found", "file", path)
			return &types.StageError{
				Code:    types.ErrorFileOpen,
				Message: fmt.Sprintf("input file not found: %s", path),
			}
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(processCmd)
}
