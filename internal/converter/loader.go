package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/catalog-html-converter/internal/csvparser"
	"github.com/ginjaninja78/catalog-html-converter/internal/model"
	"github.com/ginjaninja78/catalog-html-converter/internal/types"
	"github.com/ginjaninja78/catalog-html-converter/internal/validation"
	"github.com/ginjaninja78/catalog-html-converter/internal/xlsxparser"
)

// rowSource streams the non-blank rows of one input file.
type rowSource interface {
	Next() bool
	Row() []string
	RowNumber() int
	Err() error
	Close() error
}

// openSource picks the reader by file extension: .xlsx workbooks go through
// xlsxparser, everything else is delimited text.
func (c *Converter) openSource(path string) (rowSource, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return xlsxparser.Open(path, c.cfg.Input.XLSX)
	}
	return csvparser.Open(path, c.cfg.Input.CSV)
}

// failOpen records a failure to open path. Workbooks that open but do not
// parse count as parse failures.
func (c *Converter) failOpen(path string, err error) bool {
	if errors.Is(err, xlsxparser.ErrParse) {
		return c.failParse(path, ErrInvalidFormat, err)
	}
	return c.fail(types.ErrorFileOpen, fmt.Errorf("unable to open %s: %w", path, err))
}

// failParse discards everything loaded so far and records a parse failure.
func (c *Converter) failParse(path string, kind, err error) bool {
	c.reset()
	return c.fail(types.ErrorFileParse, fmt.Errorf("%w: %s: %w", kind, path, err))
}

// =============================================================================
// CATEGORIES
// =============================================================================

// loadCategories reads the category file. The first row is a header and is
// discarded; every other row is positional.
func (c *Converter) loadCategories() bool {
	src, err := c.openSource(c.categoriesPath)
	if err != nil {
		return c.failOpen(c.categoriesPath, err)
	}
	defer src.Close()

	header := true
	for src.Next() {
		if header {
			header = false
			continue
		}

		row := src.Row()
		c.checkRow(c.categoriesPath, row, src.RowNumber())

		record := model.NewCategory()
		record.SetData(row)
		c.categories.Put(record)
		c.stats.CategoryRows++
	}

	if err := src.Err(); err != nil {
		return c.failParse(c.categoriesPath, ErrInvalidFormat, err)
	}

	c.logger.Debug("loaded categories", "rows", c.stats.CategoryRows, "distinct", c.categories.Len())
	return true
}

// =============================================================================
// PRODUCTS
// =============================================================================

// loadProducts reads the product file. The first row names the columns and
// must agree with the built-in product layout on every shared field; the
// check runs before any data row, so an empty body still fails on a bad
// header.
func (c *Converter) loadProducts() bool {
	src, err := c.openSource(c.productsPath)
	if err != nil {
		return c.failOpen(c.productsPath, err)
	}
	defer src.Close()

	var schema model.PropertyMap
	header := true

	for src.Next() {
		row := src.Row()

		if header {
			header = false
			schema, err = c.productSchema(row, src.RowNumber())
			if err != nil {
				return c.failParse(c.productsPath, ErrInvalidProductHeader, err)
			}
			continue
		}

		c.checkRow(c.productsPath, row, src.RowNumber())

		record := model.NewProduct()
		if err := record.SetSchema(schema); err != nil {
			return c.failParse(c.productsPath, ErrInvalidProductHeader, err)
		}
		record.SetData(row)
		c.products.Put(record)
		c.stats.ProductRows++
	}

	if err := src.Err(); err != nil {
		return c.failParse(c.productsPath, ErrInvalidFormat, err)
	}

	c.logger.Debug("loaded products", "rows", c.stats.ProductRows, "distinct", c.products.Len())
	return true
}

// productSchema validates the products header and reconciles it with the
// built-in product layout. Findings that do not move a built-in field are
// logged and the header is used as is.
func (c *Converter) productSchema(header []string, rowNumber int) (model.PropertyMap, error) {
	base := model.ProductVariant.Schema

	reserved := make([]string, 0, base.Len())
	for _, f := range base.Fields() {
		reserved = append(reserved, f.Name)
	}

	errs := validation.ValidateHeader(header, rowNumber, reserved...)
	if validation.HasFatal(errs) {
		return model.PropertyMap{}, errors.New(validation.FormatErrors(errs))
	}
	for _, w := range errs {
		c.stats.Warnings++
		c.logger.Warn(w.Message, "file", c.productsPath, "row", rowNumber, "column", w.Column+1, "rule", w.Rule)
	}

	return model.Reconcile(base, model.FromHeader(header))
}

// checkRow logs non-fatal findings for one data row.
func (c *Converter) checkRow(path string, row []string, rowNumber int) {
	if w := validation.CheckRow(row, 0, rowNumber); w != nil {
		c.stats.Warnings++
		c.logger.Warn(w.Message, "file", path, "row", rowNumber, "rule", w.Rule)
	}
}
