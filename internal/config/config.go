package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

type Config struct {
	// HTTP Server
	Port               string
	ShutdownTimeout    time.Duration
	RateLimitPerMinute int

	// Logging
	LogLevel  string
	LogFormat string

	// Backend selection
	DataBackend string
	LoadTimeout time.Duration

	// CSV files
	DayCSVPath   string
	HourCSVPath  string
	CSVDelimiter string

	// XLSX workbook
	WorkbookPath      string
	WorkbookDaySheet  string
	WorkbookHourSheet string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleDaySheet      string
	GoogleHourSheet     string

	// Dashboard behaviour
	LeastBusyByVolume bool
	LiveUserShare     bool
}

var (
	validBackends   = []string{"csv", "xlsx", "sheets"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8081"),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 30),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		DataBackend: strings.ToLower(getEnv("DATA_BACKEND", "csv")),
		LoadTimeout: getEnvDuration("LOAD_TIMEOUT", 60*time.Second),

		DayCSVPath:   getEnv("DAY_CSV_PATH", "dashboard/day_fix.csv"),
		HourCSVPath:  getEnv("HOUR_CSV_PATH", "dashboard/hour_fix.csv"),
		CSVDelimiter: getEnv("CSV_DELIMITER", ","),

		WorkbookPath:      getEnv("WORKBOOK_PATH", "dashboard/bikeshare.xlsx"),
		WorkbookDaySheet:  getEnv("WORKBOOK_DAY_SHEET", "day"),
		WorkbookHourSheet: getEnv("WORKBOOK_HOUR_SHEET", "hour"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleDaySheet:      getEnv("GOOGLE_DAY_SHEET", "day"),
		GoogleHourSheet:     getEnv("GOOGLE_HOUR_SHEET", "hour"),

		LeastBusyByVolume: getEnvBool("LEAST_BUSY_BY_VOLUME", false),
		LiveUserShare:     getEnvBool("LIVE_USER_SHARE", true),
	}

	return cfg
}

// Delimiter returns the CSV delimiter as a rune, ',' when unset.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case "csv":
		if c.DayCSVPath == "" || c.HourCSVPath == "" {
			errors = append(errors, "DAY_CSV_PATH and HOUR_CSV_PATH are required when using csv backend")
		}
		if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
			errors = append(errors, fmt.Sprintf("invalid CSV delimiter '%s': must be a single character", c.CSVDelimiter))
		}
	case "xlsx":
		if c.WorkbookPath == "" {
			errors = append(errors, "WORKBOOK_PATH is required when using xlsx backend")
		} else if _, err := os.Stat(c.WorkbookPath); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("workbook does not exist: %s", c.WorkbookPath))
		}
		if c.WorkbookDaySheet == "" || c.WorkbookHourSheet == "" {
			errors = append(errors, "WORKBOOK_DAY_SHEET and WORKBOOK_HOUR_SHEET cannot be empty")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleDaySheet == "" || c.GoogleHourSheet == "" {
			errors = append(errors, "GOOGLE_DAY_SHEET and GOOGLE_HOUR_SHEET cannot be empty")
		}
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}
	if c.ShutdownTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}
	if c.LoadTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid load timeout %v: must be at least 1 second", c.LoadTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
