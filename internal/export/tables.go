// Package export writes the derived tables of one pipeline run as CSV or as
// an xlsx workbook.
package export

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/core"
)

var ErrUnknownTable = errors.New("unknown table")

// TableNames lists the exportable tables in workbook order.
var TableNames = []string{
	"hours",
	"hours_ordered",
	"busiest_hours",
	"least_busy_hours",
	"weather",
	"monthly",
	"workingday",
	"season",
	"registered",
	"casual",
}

// Frame returns one derived table as a gota frame.
func Frame(t aggregate.Tables, name string) (dataframe.DataFrame, error) {
	var df dataframe.DataFrame
	switch name {
	case "hours":
		df = hourFrame(t.HourTotals)
	case "hours_ordered":
		df = hourFrame(t.Ordered)
	case "busiest_hours":
		df = hourFrame(t.Busiest)
	case "least_busy_hours":
		df = hourFrame(t.LeastBusy)
	case "weather":
		labels := make([]string, len(t.Weather))
		counts := make([]int, len(t.Weather))
		for i, r := range t.Weather {
			labels[i], counts[i] = r.Weather.String(), int(r.Count)
		}
		df = dataframe.New(series.New(labels, series.String, "weather_situation"), series.New(counts, series.Int, "count_cr"))
	case "monthly":
		labels := make([]string, len(t.Monthly))
		counts := make([]int, len(t.Monthly))
		for i, r := range t.Monthly {
			labels[i], counts[i] = core.ShortMonth(r.Month), int(r.Count)
		}
		df = dataframe.New(series.New(labels, series.String, "month"), series.New(counts, series.Int, "count_cr"))
	case "workingday":
		flags := make([]int, len(t.WorkingDay))
		counts := make([]int, len(t.WorkingDay))
		for i, r := range t.WorkingDay {
			if r.WorkingDay {
				flags[i] = 1
			}
			counts[i] = int(r.Count)
		}
		df = dataframe.New(series.New(flags, series.Int, "workingday"), series.New(counts, series.Int, "count_cr"))
	case "season":
		labels := make([]string, len(t.Season))
		counts := make([]int, len(t.Season))
		for i, r := range t.Season {
			labels[i], counts[i] = r.Season.String(), int(r.Count)
		}
		df = dataframe.New(series.New(labels, series.String, "season"), series.New(counts, series.Int, "count_cr"))
	case "registered":
		df = dateSumFrame(t.Registered, "register_sum")
	case "casual":
		df = dateSumFrame(t.Casual, "casual_sum")
	default:
		return dataframe.DataFrame{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("build %s: %w", name, df.Err)
	}
	return df, nil
}

// IsTable reports whether name is exportable.
func IsTable(name string) bool {
	return slices.Contains(TableNames, name)
}

func hourFrame(rows []core.HourTotal) dataframe.DataFrame {
	hours := make([]int, len(rows))
	counts := make([]int, len(rows))
	for i, r := range rows {
		hours[i], counts[i] = r.Hour, int(r.Count)
	}
	return dataframe.New(series.New(hours, series.Int, "hour"), series.New(counts, series.Int, "count_cr"))
}

func dateSumFrame(rows []core.DateSum, column string) dataframe.DataFrame {
	dates := make([]string, len(rows))
	sums := make([]int, len(rows))
	for i, r := range rows {
		dates[i], sums[i] = r.Date.String(), int(r.Sum)
	}
	return dataframe.New(series.New(dates, series.String, "date"), series.New(sums, series.Int, column))
}
