package backend

import (
	"context"
	"fmt"

	"bikeshare/internal/dataset"
	"bikeshare/internal/dataset/csvfile"
	"bikeshare/internal/dataset/google"
	"bikeshare/internal/dataset/workbook"
	"bikeshare/internal/log"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateSource implements Factory.CreateSource
func (f *DefaultFactory) CreateSource(ctx context.Context, config Config) (dataset.Source, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	dsLogger := f.logger.WithComponent(log.ComponentDataset)

	switch config.Type {
	case CSVBackend:
		f.logger.Info("Using CSV source",
			log.FieldBackend, config.Type.String(),
			"day_path", config.DayCSVPath,
			"hour_path", config.HourCSVPath)
		return csvfile.New(config.DayCSVPath, config.HourCSVPath, config.CSVDelimiter, dsLogger), nil
	case XLSXBackend:
		f.logger.Info("Using workbook source",
			log.FieldBackend, config.Type.String(),
			"path", config.WorkbookPath)
		return workbook.New(config.WorkbookPath, config.WorkbookDaySheet, config.WorkbookHourSheet, dsLogger), nil
	case SheetsBackend:
		cli, err := google.New(ctx, config.GoogleSpreadsheetID, config.GoogleDaySheet, config.GoogleHourSheet, dsLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Using Google Sheets source", log.FieldBackend, config.Type.String())
		return cli, nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
