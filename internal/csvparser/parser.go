// =============================================================================
// Catalog to HTML Converter - CSV Parser Module
// =============================================================================
//
// This module reads delimited catalog files one row at a time.
//
// FEATURES:
//   - Configurable delimiter (";" by default, see config.CSVSettings)
//   - Character set decoding through golang.org/x/text; a UTF-8 byte order
//     mark is stripped
//   - Rows of varying width
//   - Blank rows (every cell empty) are skipped
//   - Strict quoting unless lazy_quotes is set, so malformed input surfaces
//     as a parse error instead of silently merged cells
//
// USAGE:
//   reader, err := csvparser.Open(path, cfg.Input.CSV)
//   if err != nil {
//       return err // the file could not be opened
//   }
//   defer reader.Close()
//
//   for reader.Next() {
//       row := reader.Row()
//       // ...
//   }
//   if err := reader.Err(); err != nil {
//       return err // the file could not be decoded
//   }
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
)

// ErrParse wraps every decode failure reported by Reader.Err.
var ErrParse = errors.New("csv parse error")

// Reader streams the rows of one delimited file.
type Reader struct {
	closer    io.Closer
	reader    *csv.Reader
	row       []string
	rowNumber int
	err       error
}

// Open opens the file at path for reading with settings.
//
// RETURNS:
//   - A Reader positioned before the first row.
//   - An error if the file cannot be opened or settings are invalid.
func Open(path string, settings config.CSVSettings) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	reader, err := NewReader(file, settings)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.closer = file

	return reader, nil
}

// NewReader reads rows from r. Close does not close r.
func NewReader(r io.Reader, settings config.CSVSettings) (*Reader, error) {
	decoder, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(bufio.NewReader(r), decoder))
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	return &Reader{reader: csvReader}, nil
}

// configureReader configures the CSV reader with the given settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := config.DelimiterRune(settings.Delimiter)
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Rows may have any number of cells; short rows leave slots unset.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = settings.LazyQuotes

	return nil
}

// decoderFor returns the transformer that converts name-encoded input to
// UTF-8.
func decoderFor(name string) (transform.Transformer, error) {
	if name == "" {
		name = "UTF-8"
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}

	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}
	return enc.NewDecoder(), nil
}

// Next advances to the next non-blank row. It returns false at the end of
// the input or on the first decode error.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for {
		row, err := r.reader.Read()
		if err == io.EOF {
			r.row = nil
			return false
		}
		r.rowNumber++
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
}

// Row returns the current row.
func (r *Reader) Row() []string {
	return r.row
}

// RowNumber returns the 1-based number of the current row in the file,
// counting skipped blank rows.
func (r *Reader) RowNumber() int {
	return r.rowNumber
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
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
