package xlsxparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/catalog-html-converter/internal/config"
)

// writeWorkbook saves rows to the first sheet of a new workbook, and extra
// to a second sheet named "Extra" when given.
func writeWorkbook(t *testing.T, rows [][]string, extra [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	fill := func(sheet string, rows [][]string) {
		for i, row := range rows {
			cells := make([]interface{}, len(row))
			for j, v := range row {
				cells[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
		}
	}

	fill(f.GetSheetName(0), rows)
	if extra != nil {
		_, err := f.NewSheet("Extra")
		require.NoError(t, err)
		fill("Extra", extra)
	}

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func readAll(t *testing.T, r *Reader) [][]string {
	t.Helper()
	var rows [][]string
	for r.Next() {
		rows = append(rows, r.Row())
	}
	require.NoError(t, r.Err())
	return rows
}

func TestReaderFirstSheet(t *testing.T) {
	path := writeWorkbook(t, [][]string{
		{"id", "наименование", "родитель"},
		{"1", "Root"},
		{"", "", ""},
		{"2", "Child", "1"},
	}, [][]string{{"other"}})

	r, err := Open(path, config.XLSXSettings{})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "Sheet1", r.Sheet())
	assert.Equal(t, [][]string{
		{"id", "наименование", "родитель"},
		{"1", "Root"},
		{"2", "Child", "1"},
	}, readAll(t, r))
}

func TestReaderNamedSheet(t *testing.T) {
	path := writeWorkbook(t, [][]string{{"first"}}, [][]string{{"10", "1", "Widget"}})

	r, err := Open(path, config.XLSXSettings{Sheet: "Extra"})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, [][]string{{"10", "1", "Widget"}}, readAll(t, r))
}

func TestOpenErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), config.XLSXSettings{})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NotErrorIs(t, err, ErrParse)
	})

	t.Run("not a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("id;name\n"), 0o644))
		_, err := Open(path, config.XLSXSettings{})
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		path := writeWorkbook(t, [][]string{{"1"}}, nil)
		_, err := Open(path, config.XLSXSettings{Sheet: "Nope"})
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	r, err := Open(writeWorkbook(t, [][]string{{"1"}}, nil), config.XLSXSettings{})
	require.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.NoError(t, r.Close())
	assert.False(t, r.Next())
}
