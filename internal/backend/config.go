package backend

import (
	"fmt"

	"bikeshare/internal/config"
)

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type: backendType,

		DayCSVPath:   appConfig.DayCSVPath,
		HourCSVPath:  appConfig.HourCSVPath,
		CSVDelimiter: appConfig.Delimiter(),

		WorkbookPath:      appConfig.WorkbookPath,
		WorkbookDaySheet:  appConfig.WorkbookDaySheet,
		WorkbookHourSheet: appConfig.WorkbookHourSheet,

		GoogleSpreadsheetID: appConfig.GoogleSpreadsheetID,
		GoogleDaySheet:      appConfig.GoogleDaySheet,
		GoogleHourSheet:     appConfig.GoogleHourSheet,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}

	switch c.Type {
	case CSVBackend:
		if c.DayCSVPath == "" || c.HourCSVPath == "" {
			return fmt.Errorf("both CSV paths are required for csv backend")
		}
	case XLSXBackend:
		if c.WorkbookPath == "" {
			return fmt.Errorf("workbook path is required for xlsx backend")
		}
		if c.WorkbookDaySheet == "" || c.WorkbookHourSheet == "" {
			return fmt.Errorf("both sheet names are required for xlsx backend")
		}
	case SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets backend")
		}
		if c.GoogleDaySheet == "" || c.GoogleHourSheet == "" {
			return fmt.Errorf("both sheet names are required for sheets backend")
		}
	}

	return nil
}

// GetBackendTypes returns all valid backend types
func GetBackendTypes() []BackendType {
	return []BackendType{CSVBackend, XLSXBackend, SheetsBackend}
}
