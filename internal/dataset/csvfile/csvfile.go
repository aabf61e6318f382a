// Package csvfile reads the daily and hourly tables from two delimited files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
	"bikeshare/internal/log"
)

type Source struct {
	dayPath   string
	hourPath  string
	delimiter rune
	logger    *log.Logger
}

var _ dataset.Source = (*Source)(nil)

func New(dayPath, hourPath string, delimiter rune, logger *log.Logger) *Source {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Source{dayPath: dayPath, hourPath: hourPath, delimiter: delimiter, logger: logger}
}

func (s *Source) Load(ctx context.Context) (core.Dataset, error) {
	return dataset.Load(ctx, s.logger,
		dataset.Table{Name: s.dayPath, Fetch: s.reader(s.dayPath)},
		dataset.Table{Name: s.hourPath, Fetch: s.reader(s.hourPath)},
	)
}

func (s *Source) reader(path string) dataset.FetchFunc {
	return func(ctx context.Context) (dataframe.DataFrame, error) {
		if err := ctx.Err(); err != nil {
			return dataframe.DataFrame{}, err
		}
		return ReadFrame(path, s.delimiter)
	}
}

// ReadFrame reads a delimited file with a header row. Every column is kept
// as a string; coercion happens in the decoder. A header with no data rows
// gives an empty frame.
func ReadFrame(path string, delimiter rune) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, &core.DataFormatError{Source: path, Err: err}
	}

	df, err := dataset.FrameFromRecords(records)
	if err != nil {
		return dataframe.DataFrame{}, &core.DataFormatError{Source: path, Err: err}
	}
	return df, nil
}
