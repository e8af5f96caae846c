// =============================================================================
// Catalog to HTML Converter - Converter Module
// =============================================================================
//
// This module orchestrates one conversion: two catalog files in, one nested
// list document out.
//
// CONVERSION PIPELINE:
//   1. Load the category file (header row discarded, rows are positional)
//   2. Load the product file (header row defines the column layout)
//   3. Link products under categories, then categories under each other
//   4. Render the document from the root categories
//   5. Write the document to the result file
//
// ERROR SURFACE:
//   Stages never panic or return errors across this package boundary. A
//   failing stage records a (code, message) pair, see types.StageError,
//   and the caller checks HasError after each stage:
//
//     conv := converter.New(categoriesPath, productsPath, cfg, logger)
//     if !conv.ParseData() {
//         return conv.Err()
//     }
//     if !conv.FlushResult(outputPath) {
//         return conv.Err()
//     }
//
// CONCURRENCY:
//   A Converter is single-use and not safe for concurrent use.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
	"github.com/ginjaninja78/catalog-html-converter/internal/htmlwriter"
	"github.com/ginjaninja78/catalog-html-converter/internal/linker"
	"github.com/ginjaninja78/catalog-html-converter/internal/model"
	"github.com/ginjaninja78/catalog-html-converter/internal/types"
	"github.com/ginjaninja78/catalog-html-converter/pkg/utils"
)

// Sentinel errors classifying load failures.
var (
	// ErrInvalidFormat marks a source file whose rows cannot be decoded.
	ErrInvalidFormat = errors.New("Invalid file format")

	// ErrInvalidProductHeader marks a products header that is malformed or
	// disagrees with the built-in product layout.
	ErrInvalidProductHeader = errors.New("Invalid products header")
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one Run.
type Result struct {
	// CategoriesFile and ProductsFile are the inputs that were read.
	CategoriesFile string
	ProductsFile   string

	// OutputFile is the written document. Empty if processing failed.
	OutputFile string

	// Success indicates whether every stage completed.
	Success bool

	// Error is the *types.StageError of the failing stage, nil on success.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// CategoryRows and ProductRows count data rows read, excluding headers
	// and blank rows. Rows with a repeated identifier are counted too.
	CategoryRows int
	ProductRows  int

	// Warnings counts non-fatal validation findings.
	Warnings int

	// Link is the outcome of tree linking.
	Link linker.Stats

	// OutputBytes is the size of the rendered document.
	OutputBytes int

	// ProcessingTime is the time taken by Run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter loads, links and renders one catalog.
type Converter struct {
	categoriesPath string
	productsPath   string

	cfg    *config.Config
	logger *slog.Logger

	tree       *model.Tree
	categories *model.Collection
	products   *model.Collection

	stats ProcessingStats
	err   *types.StageError
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter.
//
// PARAMETERS:
//   - categoriesPath: The category file (.csv or .xlsx).
//   - productsPath: The product file (.csv or .xlsx).
//   - cfg: The configuration. nil means config.Default().
//   - logger: Receives stage progress. nil means slog.Default().
func New(categoriesPath, productsPath string, cfg *config.Config, logger *slog.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Converter{
		categoriesPath: categoriesPath,
		productsPath:   productsPath,
		cfg:            cfg,
		logger:         logger,
	}
	c.reset()

	return c
}

// reset discards every loaded record.
func (c *Converter) reset() {
	c.tree = model.NewTree()
	c.categories = model.NewCollection(c.tree)
	c.products = model.NewCollection(c.tree)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the whole pipeline and writes the document to outputPath.
func (c *Converter) Run(outputPath string) Result {
	startTime := time.Now()
	result := Result{
		CategoriesFile: c.categoriesPath,
		ProductsFile:   c.productsPath,
	}

	// =========================================================================
	// STEPS 1-3: LOAD AND LINK
	// =========================================================================

	if !c.ParseData() {
		result.Error = c.Err()
		result.Stats = c.Stats()
		return result
	}

	// =========================================================================
	// STEPS 4-5: RENDER AND WRITE
	// =========================================================================

	if !c.FlushResult(outputPath) {
		result.Error = c.Err()
		result.Stats = c.Stats()
		return result
	}

	// =========================================================================
	// COMPLETE
	// =========================================================================

	c.stats.ProcessingTime = time.Since(startTime)
	result.OutputFile = outputPath
	result.Success = true
	result.Stats = c.Stats()

	return result
}

// ParseData loads both files and links them into one tree.
//
// RETURNS:
//   - true when both files loaded. On failure the error is recorded, the
//     loaded records are discarded and later stages render nothing.
//
// Records from an earlier call are discarded first.
func (c *Converter) ParseData() bool {
	c.clearError()
	c.reset()
	c.stats = ProcessingStats{}

	c.logger.Info("loading categories", "file", c.categoriesPath)
	if !c.loadCategories() {
		return false
	}

	c.logger.Info("loading products", "file", c.productsPath)
	if !c.loadProducts() {
		return false
	}

	c.stats.Link = linker.Link(c.categories, c.products)
	c.logger.Debug("linked catalog",
		"categories", c.stats.Link.Categories,
		"products", c.stats.Link.Products,
		"roots", c.stats.Link.Roots,
		"passes", c.stats.Link.Passes,
		"orphan_products", c.stats.Link.OrphanProducts,
		"unrooted_categories", c.stats.Link.Unrooted,
	)

	return true
}

// Result renders the document from the loaded catalog. It is the empty
// string when no categories are loaded.
func (c *Converter) Result() string {
	options := htmlwriter.Options{
		CategoryBody: htmlwriter.CategoryBody(c.cfg.Render.CategoryBody),
	}
	return htmlwriter.Generate(c.categories, options)
}

// FlushResult renders the document and writes it to path.
func (c *Converter) FlushResult(path string) bool {
	c.clearError()

	document := c.Result()
	c.stats.OutputBytes = len(document)

	if err := utils.WriteFileAtomic(path, []byte(document)); err != nil {
		return c.fail(types.ErrorFileSave, fmt.Errorf("failed to save result to %s: %w", path, err))
	}

	c.logger.Info("wrote result", "file", path, "bytes", len(document))
	return true
}

// =============================================================================
// ERROR STATE
// =============================================================================

// HasError reports whether the last stage failed.
func (c *Converter) HasError() bool {
	return c.err != nil
}

// ErrorCode returns the code of the last failure, or types.ErrorNone.
func (c *Converter) ErrorCode() types.ErrorCode {
	if c.err == nil {
		return types.ErrorNone
	}
	return c.err.Code
}

// ErrorText returns the message of the last failure, or "".
func (c *Converter) ErrorText() string {
	if c.err == nil {
		return ""
	}
	return c.err.Message
}

// Err returns the last failure as a *types.StageError, or nil.
func (c *Converter) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// fail records err under code and returns false.
func (c *Converter) fail(code types.ErrorCode, err error) bool {
	c.err = &types.StageError{Code: code, Message: err.Error()}
	c.logger.Error("stage failed", "code", int(code), "kind", code.String(), "error", err)
	return false
}

func (c *Converter) clearError() {
	c.err = nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Stats returns the statistics gathered so far.
func (c *Converter) Stats() ProcessingStats {
	return c.stats
}

// Categories returns the loaded category collection.
func (c *Converter) Categories() *model.Collection {
	return c.categories
}

// Products returns the loaded product collection.
func (c *Converter) Products() *model.Collection {
	return c.products
}
