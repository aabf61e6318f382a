package backend

import (
	"context"

	"bikeshare/internal/dataset"
)

// Factory creates the dataset source selected by configuration
type Factory interface {
	CreateSource(ctx context.Context, config Config) (dataset.Source, error)
}

// Config holds configuration for source creation
type Config struct {
	Type BackendType

	// CSV specific
	DayCSVPath   string
	HourCSVPath  string
	CSVDelimiter rune

	// XLSX specific
	WorkbookPath      string
	WorkbookDaySheet  string
	WorkbookHourSheet string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleDaySheet      string
	GoogleHourSheet     string
}

// BackendType represents the type of backend
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	XLSXBackend   BackendType = "xlsx"
	SheetsBackend BackendType = "sheets"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, XLSXBackend, SheetsBackend:
		return true
	default:
		return false
	}
}
