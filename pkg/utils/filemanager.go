// =============================================================================
// Catalog to HTML Converter - File Manager Utility
// =============================================================================
//
// This module provides file operations used around the converter:
//   - Writing the result document atomically
//   - Checking input files before a run
//
// ATOMIC WRITES:
//   The document is first written to a temporary file in the destination
//   directory, named .<base>.<uuid>.tmp, then renamed over the destination.
//   A failed run never leaves a truncated result behind; the previous result
//   file, if any, stays intact.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ResultFileMode is the permission of written result files.
const ResultFileMode = 0o644

// WriteFileAtomic writes data to path through a temporary file and a rename.
//
// PARAMETERS:
//   - path: The destination file. Its directory must exist.
//   - data: The complete file content.
//
// RETURNS:
//   - An error if the temporary file cannot be written or renamed. The
//     temporary file is removed in that case.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, TempFileName(path))

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, ResultFileMode)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move result into place: %w", err)
	}

	return nil
}

// TempFileName returns a unique hidden file name next to path.
func TempFileName(path string) string {
	return fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String())
}

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
