// Package dataset loads the daily and hourly rental tables into a
// core.Dataset. Every source normalises its rows into a string-typed gota
// DataFrame and shares one decoder.
package dataset

import (
	"context"

	"github.com/go-gota/gota/dataframe"

	"bikeshare/internal/core"
)

// Source produces the dataset once at startup.
type Source interface {
	Load(ctx context.Context) (core.Dataset, error)
}

// FetchFunc reads one table into a frame whose columns are all strings.
type FetchFunc func(ctx context.Context) (dataframe.DataFrame, error)

// Table names a fetch for error messages.
type Table struct {
	Name  string
	Fetch FetchFunc
}
