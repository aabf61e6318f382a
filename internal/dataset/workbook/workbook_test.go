package workbook

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bikeshare/internal/log"
)

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "bikeshare.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSourceLoad(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"day": {
			{"dteday", "season", "weathersit", "workingday", "mnth", "registered", "casual", "cnt"},
			{"2011-01-02", 1, 1, 1, "Jan", 20, 0, 20},
			{"2011-01-01", 1, 2, 0, "Jan", 10, 5, 15},
		},
		"hour": {
			{"dteday", "hr", "cnt"},
			{"2011-01-01", 8, 10},
			{"2011-01-02", 17, 25},
		},
	})

	ds, err := New(path, "day", "hour", log.Discard()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Daily(), 2)
	assert.EqualValues(t, 15, ds.Daily()[0].Count)
	assert.False(t, ds.HourlySeason())
	assert.Equal(t, 17, ds.Hourly()[1].Hour)
}

func TestReadSheetMissing(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{"day": {{"dteday"}}})
	_, err := ReadSheet(path, "hour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "hour" not found`)
}

func TestReadSheetMissingFile(t *testing.T) {
	_, err := ReadSheet(filepath.Join(t.TempDir(), "none.xlsx"), "day")
	assert.Error(t, err)
}
