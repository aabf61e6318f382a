package services

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/charts"
	"bikeshare/internal/core"
	"bikeshare/internal/log"
	"bikeshare/internal/metrics"
)

func testDataset() core.Dataset {
	daily := []core.DailyRecord{
		{Date: core.NewDate(2011, time.January, 1), Season: core.SeasonSpring, Weather: core.WeatherFair,
			Month: time.January, Registered: 10, Casual: 5, Count: 15},
		{Date: core.NewDate(2011, time.January, 2), Season: core.SeasonSpring, Weather: core.WeatherFair, WorkingDay: true,
			Month: time.January, Registered: 20, Casual: 0, Count: 20},
	}
	hourly := []core.HourlyRecord{
		{Date: core.NewDate(2011, time.January, 1), Hour: 9, Count: 15},
		{Date: core.NewDate(2011, time.January, 2), Hour: 9, Count: 20},
	}
	return core.NewDataset(daily, hourly, false)
}

func TestDashboardServiceRun(t *testing.T) {
	rec := metrics.NewRecorder()
	svc := NewDashboardService(testDataset(), Options{Charts: charts.Options{LiveUserShare: true}}, rec, log.Discard())

	res := svc.Run(context.Background(), svc.Selector().Default())
	assert.EqualValues(t, 35, aggregate.Sum(res.Tables.Historical))
	assert.Equal(t, "35", res.Dashboard.Metrics[0].Display)
	assert.False(t, res.Dashboard.Empty)

	n, err := testutil.GatherAndCount(rec.Registry(), "bikeshare_pipeline_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDashboardServiceSelect(t *testing.T) {
	svc := NewDashboardService(testDataset(), Options{}, nil, log.Discard())

	start := core.NewDate(2011, time.January, 2)
	r := svc.Select(&start, nil)
	assert.Equal(t, start, r.Start)
	assert.Equal(t, core.NewDate(2011, time.January, 2), r.End)

	res := svc.Run(context.Background(), r)
	assert.Len(t, res.Tables.Daily, 1)
	assert.EqualValues(t, 20, res.Dashboard.Metrics[1].Value)
}

func TestDashboardServiceEmptyRange(t *testing.T) {
	svc := NewDashboardService(testDataset(), Options{}, nil, log.Discard())
	a, b := core.NewDate(2011, time.January, 2), core.NewDate(2011, time.January, 1)

	res := svc.Run(context.Background(), svc.Select(&a, &b))
	assert.True(t, res.Dashboard.Empty)
	assert.Zero(t, res.Dashboard.Metrics[0].Value)
}
