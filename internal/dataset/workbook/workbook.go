// Package workbook reads the daily and hourly tables from two sheets of one
// xlsx workbook.
package workbook

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
	"bikeshare/internal/log"
)

type Source struct {
	path      string
	daySheet  string
	hourSheet string
	logger    *log.Logger
}

var _ dataset.Source = (*Source)(nil)

func New(path, daySheet, hourSheet string, logger *log.Logger) *Source {
	return &Source{path: path, daySheet: daySheet, hourSheet: hourSheet, logger: logger}
}

func (s *Source) Load(ctx context.Context) (core.Dataset, error) {
	return dataset.Load(ctx, s.logger,
		dataset.Table{Name: s.path + "!" + s.daySheet, Fetch: s.sheet(s.daySheet)},
		dataset.Table{Name: s.path + "!" + s.hourSheet, Fetch: s.sheet(s.hourSheet)},
	)
}

// Each fetch opens its own handle so the two sheets can be read in parallel.
func (s *Source) sheet(name string) dataset.FetchFunc {
	return func(ctx context.Context) (dataframe.DataFrame, error) {
		if err := ctx.Err(); err != nil {
			return dataframe.DataFrame{}, err
		}
		return ReadSheet(s.path, name)
	}
}

// ReadSheet loads one sheet whose first row is the header. Cells are read
// with their displayed formatting, so date columns should be text or use a
// yyyy-mm-dd number format.
func ReadSheet(path, sheet string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return dataframe.DataFrame{}, fmt.Errorf("workbook %s: sheet %q not found", path, sheet)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	df, err := dataset.FrameFromRecords(rows)
	if err != nil {
		return dataframe.DataFrame{}, &core.DataFormatError{Source: path + "!" + sheet, Err: err}
	}
	return df, nil
}
