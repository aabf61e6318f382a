// Package google reads the daily and hourly tables from two tabs of a Google
// spreadsheet through the Sheets v4 API.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
	"bikeshare/internal/log"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	daySheet      string
	hourSheet     string
	logger        *log.Logger
}

var _ dataset.Source = (*Client)(nil)

// New creates a read-only Sheets client. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, daySheet, hourSheet string, logger *log.Logger) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		daySheet:      daySheet,
		hourSheet:     hourSheet,
		logger:        logger,
	}, nil
}

func newSheetsService(ctx context.Context, logger *log.Logger) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		logger.DebugContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		logger.DebugContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) Load(ctx context.Context) (core.Dataset, error) {
	return dataset.Load(ctx, c.logger,
		dataset.Table{Name: c.daySheet, Fetch: c.sheet(c.daySheet)},
		dataset.Table{Name: c.hourSheet, Fetch: c.sheet(c.hourSheet)},
	)
}

func (c *Client) sheet(name string) dataset.FetchFunc {
	return func(ctx context.Context) (dataframe.DataFrame, error) {
		if c.svc == nil {
			return dataframe.DataFrame{}, errors.New("sheets service not initialized")
		}
		resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, name).Context(ctx).Do()
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", name, err)
		}
		return parseValues(name, resp.Values)
	}
}
