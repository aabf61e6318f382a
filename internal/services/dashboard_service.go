package services

import (
	"context"
	"time"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/charts"
	"bikeshare/internal/core"
	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
)

// DashboardService runs the filter, aggregation and presentation stages over
// the dataset loaded at startup. It holds no mutable state and is safe for
// concurrent use.
type DashboardService struct {
	dataset  core.Dataset
	selector core.RangeSelector
	opts     Options
	recorder *metrics.Recorder
	logger   *log.StructuredLogger
}

type Options struct {
	Aggregate aggregate.Options
	Charts    charts.Options
}

// Result is one pipeline run: the derived tables and what the page draws
// from them.
type Result struct {
	Tables    aggregate.Tables
	Dashboard charts.Dashboard
}

func NewDashboardService(ds core.Dataset, opts Options, recorder *metrics.Recorder, logger *log.Logger) *DashboardService {
	if recorder != nil {
		recorder.ObserveDataset(len(ds.Daily()), len(ds.Hourly()))
	}
	return &DashboardService{
		dataset:  ds,
		selector: core.NewRangeSelector(ds),
		opts:     opts,
		recorder: recorder,
		logger:   log.NewStructuredLogger(logger),
	}
}

// Selector returns the range selector bounded by the loaded data.
func (s *DashboardService) Selector() core.RangeSelector {
	return s.selector
}

// Select resolves optional range ends against the bounds.
func (s *DashboardService) Select(start, end *core.Date) core.DateRange {
	return s.selector.Select(start, end)
}

// Run recomputes everything for r. Nothing is cached between runs.
func (s *DashboardService) Run(ctx context.Context, r core.DateRange) Result {
	began := time.Now()

	tables := aggregate.Run(s.dataset, r, s.opts.Aggregate)
	dash := charts.Build(tables, s.opts.Charts)

	elapsed := time.Since(began)
	if s.recorder != nil {
		s.recorder.ObservePipeline(elapsed, len(tables.Daily), len(tables.Hourly))
	}
	s.logger.LogPipelineRun(ctx, r.Start.String(), r.End.String(), len(tables.Daily), len(tables.Hourly), elapsed.Milliseconds())

	return Result{Tables: tables, Dashboard: dash}
}
