// =============================================================================
// Catalog to HTML Converter - Validation
// =============================================================================
//
// This module checks the structure of catalog input before records are
// built from it.
//
// CHECKS:
//   | Rule             | Severity | Applies to          |
//   |------------------|----------|---------------------|
//   | empty_header     | error    | products header     |
//   | blank_column     | warning  | products header     |
//   | duplicate_column | error    | reserved names      |
//   | duplicate_column | warning  | other header names  |
//   | missing_id       | warning  | every data row      |
//
// ERROR HANDLING:
//   - Errors are collected, not returned one by one, so a bad header is
//     reported in full.
//   - Any error severity finding stops loading of that file.
//   - Warnings are logged and processing continues; a row without an
//     identifier is still stored, under the empty key. Blank header columns
//     are ignored and a repeated extra column keeps its last position.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rule names.
const (
	RuleEmptyHeader     = "empty_header"
	RuleBlankColumn     = "blank_column"
	RuleDuplicateColumn = "duplicate_column"
	RuleMissingID       = "missing_id"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Rule is the check that failed.
	Rule string

	// Column is the 0-based column, or -1 when the finding concerns the
	// whole row.
	Column int

	// Field is the column name involved, if any.
	Field string

	// RowNumber is the 1-based row in the source file.
	RowNumber int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("[%s] row %d: %s", strings.ToUpper(e.Severity), e.RowNumber, e.Message)
	}
	return fmt.Sprintf("[%s] row %d, column %d: %s", strings.ToUpper(e.Severity), e.RowNumber, e.Column+1, e.Message)
}

// IsFatal reports whether the finding must stop processing.
func (e *ValidationError) IsFatal() bool {
	return e.Severity == SeverityError
}

// =============================================================================
// HEADER CHECKS
// =============================================================================

// ValidateHeader checks a header row that maps column names to positions.
//
// PARAMETERS:
//   - header: The header cells.
//   - rowNumber: The row the header was read from, for reporting.
//   - reserved: Names with a fixed position. Repeating one of them is an
//     error; repeating any other name is a warning.
//
// RETURNS:
//   - Every finding, in column order. Empty when the header is clean.
func ValidateHeader(header []string, rowNumber int, reserved ...string) []*ValidationError {
	if len(header) == 0 {
		return []*ValidationError{{
			Severity:  SeverityError,
			Rule:      RuleEmptyHeader,
			Column:    -1,
			RowNumber: rowNumber,
			Message:   "header row has no columns",
		}}
	}

	fixed := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		fixed[name] = true
	}

	var errs []*ValidationError
	seen := make(map[string]int, len(header))

	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, &ValidationError{
				Severity:  SeverityWarning,
				Rule:      RuleBlankColumn,
				Column:    i,
				RowNumber: rowNumber,
				Message:   "column has no name and is ignored",
			})
			continue
		}

		if first, ok := seen[name]; ok {
			severity := SeverityWarning
			if fixed[name] {
				severity = SeverityError
			}
			errs = append(errs, &ValidationError{
				Severity:  severity,
				Rule:      RuleDuplicateColumn,
				Column:    i,
				Field:     name,
				RowNumber: rowNumber,
				Message:   fmt.Sprintf("column %q repeats column %d", name, first+1),
			})
			continue
		}
		seen[name] = i
	}

	return errs
}

// =============================================================================
// ROW CHECKS
// =============================================================================

// CheckRow reports a warning when the identifier cell at idIndex is absent
// or blank.
func CheckRow(row []string, idIndex, rowNumber int) *ValidationError {
	if idIndex < len(row) && strings.TrimSpace(row[idIndex]) != "" {
		return nil
	}
	return &ValidationError{
		Severity:  SeverityWarning,
		Rule:      RuleMissingID,
		Column:    idIndex,
		RowNumber: rowNumber,
		Message:   "row has no identifier",
	}
}

// =============================================================================
// REPORTING
// =============================================================================

// HasFatal reports whether any finding has error severity.
func HasFatal(errs []*ValidationError) bool {
	for _, e := range errs {
		if e.IsFatal() {
			return true
		}
	}
	return false
}

// FormatErrors formats validation errors as one message, one finding per
// line.
func FormatErrors(errs []*ValidationError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
