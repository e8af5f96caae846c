// =============================================================================
// Catalog to HTML Converter - Shared Types
// =============================================================================
//
// This package contains types shared by the converter pipeline and the CLI
// layer. Keeping them here avoids an import cycle between cmd and converter.
//
// ERROR SURFACE:
//   Every stage of the pipeline reports failures as a (code, message) pair.
//   The codes are stable and are printed by the CLI:
//     0 - no error
//     1 - a source file could not be opened
//     2 - a source file could not be parsed
//     3 - the result could not be saved
//
// =============================================================================

package types

import "fmt"

// =============================================================================
// ERROR CODES
// =============================================================================

// ErrorCode identifies the pipeline stage that failed.
type ErrorCode int

const (
	// ErrorNone means the last stage completed successfully.
	ErrorNone ErrorCode = iota

	// ErrorFileOpen means a source file is missing or unreadable.
	ErrorFileOpen

	// ErrorFileParse means a row or header could not be decoded, or the
	// header disagrees with the built-in schema.
	ErrorFileParse

	// ErrorFileSave means the rendered document could not be written.
	ErrorFileSave
)

// String returns a short name for the code, used in log records.
func (c ErrorCode) String() string {
	switch c {
	case ErrorNone:
		return "none"
	case ErrorFileOpen:
		return "file-open"
	case ErrorFileParse:
		return "file-parse"
	case ErrorFileSave:
		return "file-save"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// =============================================================================
// STAGE ERROR
// =============================================================================

// StageError is the (code, message) pair recorded when a stage fails.
type StageError struct {
	// Code is the failing stage.
	Code ErrorCode

	// Message is the human-readable reason.
	Message string
}

// Error implements the error interface in the format the CLI prints.
func (e *StageError) Error() string {
	return fmt.Sprintf("Error code :%d (%s)", int(e.Code), e.Message)
}
