package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "result.txt")

	require.NoError(t, WriteFileAtomic(path, []byte("first")))
	require.NoError(t, WriteFileAtomic(path, []byte("<ul></ul>")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<ul></ul>", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "result.txt")
	assert.Error(t, WriteFileAtomic(path, []byte("x")))
	assert.False(t, FileExists(path))
}

func TestWriteFileAtomicOntoDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

	assert.Error(t, WriteFileAtomic(target, []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file removed after a failed rename")
}

func TestTempFileName(t *testing.T) {
	a := TempFileName("/out/result.txt")
	b := TempFileName("/out/result.txt")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, ".result.txt."))
	assert.True(t, strings.HasSuffix(a, ".tmp"))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groups.csv")
	assert.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.True(t, FileExists(path))
	assert.False(t, FileExists(dir), "directories are not files")
}
