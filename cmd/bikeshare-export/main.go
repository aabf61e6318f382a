// Command bikeshare-export runs the dashboard pipeline once against the
// configured source and saves every derived table to an xlsx workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/charts"
	"bikeshare/internal/cli"
	"bikeshare/internal/core"
	"bikeshare/internal/export"
	"bikeshare/internal/log"
	"bikeshare/internal/services"
)

func main() {
	start := flag.String("start", "", "first day to include, YYYY-MM-DD (default: first day in the data)")
	end := flag.String("end", "", "last day to include, YYYY-MM-DD (default: last day in the data)")
	out := flag.String("out", "bikeshare.xlsx", "workbook to write")
	flag.Parse()

	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()
	logger = logger.WithComponent(log.ComponentExport)

	startDate, err := optionalDate(*start)
	if err != nil {
		fail(logger, "Invalid -start", err)
	}
	endDate, err := optionalDate(*end)
	if err != nil {
		fail(logger, "Invalid -end", err)
	}

	ctx := context.Background()
	ds, err := cli.LoadDataset(ctx, cfg, logger)
	if err != nil {
		fail(logger, "Failed to load dataset", err)
	}

	svc := services.NewDashboardService(ds, services.Options{
		Aggregate: aggregate.Options{LeastBusyByVolume: cfg.LeastBusyByVolume},
		Charts:    charts.Options{LiveUserShare: cfg.LiveUserShare},
	}, nil, logger)

	r := svc.Select(startDate, endDate)
	res := svc.Run(ctx, r)
	if err := export.SaveWorkbook(*out, res.Tables, res.Dashboard); err != nil {
		fail(logger, "Failed to write workbook", err)
	}

	logger.Info("Workbook written",
		"path", *out,
		log.FieldOperation, log.OpExport,
		log.FieldStartDate, r.Start.String(),
		log.FieldEndDate, r.End.String(),
		log.FieldRowsDaily, len(res.Tables.Daily),
		log.FieldRowsHourly, len(res.Tables.Hourly))
}

func optionalDate(s string) (*core.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", s, err)
	}
	return &d, nil
}

func fail(logger *log.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err)
	os.Exit(1)
}
