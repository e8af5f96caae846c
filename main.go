// =============================================================================
// Catalog to HTML Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Catalog to HTML Converter CLI. It
// delegates command execution to the cmd package.
//
// USAGE:
//   converter process [categories [products [output]]]
//   converter config
//   converter version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : catalog model, linking, rendering, input readers
//   - pkg/           : shared file utilities
//   - magefiles/     : build, test and lint targets
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/catalog-html-converter/cmd"
)

func main() {
	cmd.Execute()
}
