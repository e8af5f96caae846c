// =============================================================================
// Catalog to HTML Converter - XLSX Parser Module
// =============================================================================
//
// This module reads catalog files saved as Excel workbooks. It yields the
// same rows a delimited export of the sheet would: one []string per row,
// blank rows skipped.
//
// SHEET SELECTION:
//   config.XLSXSettings.Sheet names the worksheet; empty means the first
//   sheet of the workbook.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
)

// ErrParse marks failures to read a file that was opened successfully: not
// a workbook, a missing sheet or an unreadable row.
var ErrParse = errors.New("xlsx parse error")

// Reader streams the rows of one worksheet.
type Reader struct {
	file      *os.File
	workbook  *excelize.File
	rows      *excelize.Rows
	sheet     string
	row       []string
	rowNumber int
	err       error
}

// Open opens the workbook at path and positions a Reader before the first
// row of the selected sheet.
//
// RETURNS:
//   - A pointer to the Reader.
//   - An error if the file cannot be opened, or an error wrapping ErrParse
//     if it is not a readable workbook.
func Open(path string, settings config.XLSXSettings) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	sheet := settings.Sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}
	if index, err := workbook.GetSheetIndex(sheet); err != nil || index < 0 {
		workbook.Close()
		file.Close()
		return nil, fmt.Errorf("%w: sheet %q not found", ErrParse, sheet)
	}

	rows, err := workbook.Rows(sheet)
	if err != nil {
		workbook.Close()
		file.Close()
		return nil, fmt.Errorf("%w: failed to read rows: %w", ErrParse, err)
	}

	return &Reader{
		file:     file,
		workbook: workbook,
		rows:     rows,
		sheet:    sheet,
	}, nil
}

// Sheet returns the name of the sheet being read.
func (r *Reader) Sheet() string {
	return r.sheet
}

// Next advances to the next non-blank row.
func (r *Reader) Next() bool {
	if r.err != nil || r.rows == nil {
		return false
	}

	for r.rows.Next() {
		r.rowNumber++

		row, err := r.rows.Columns()
		if err != nil {
			r.row = nil
			r.err = fmt.Errorf("%w: row %d: %w", ErrParse, r.rowNumber, err)
			return false
		}

		if isRowEmpty(row) {
			continue
		}

		r.row = row
		return true
	}

	if err := r.rows.Error(); err != nil {
		r.err = fmt.Errorf("%w: %w", ErrParse, err)
	}
	r.row = nil
	return false
}

// Row returns the current row.
func (r *Reader) Row() []string {
	return r.row
}

// RowNumber returns the 1-based number of the current row in the sheet.
func (r *Reader) RowNumber() int {
	return r.rowNumber
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close releases the workbook and the underlying file.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}

	errs := []error{r.rows.Close(), r.workbook.Close(), r.file.Close()}
	r.file = nil
	r.rows = nil

	return errors.Join(errs...)
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
