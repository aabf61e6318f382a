// Package aggregate holds the filter and aggregation stages of the dashboard
// pipeline. Every function is pure: inputs are never modified and a fresh
// slice is returned, empty when the input is empty.
package aggregate

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"bikeshare/internal/core"
)

// Default size of the busiest and least busy hour lists.
const TopHours = 5

// The historical window is fixed and independent of the selected range.
var (
	HistoricalStart = core.NewDate(2011, time.January, 1)
	HistoricalEnd   = core.NewDate(2012, time.December, 31)
)

// FilterDaily keeps rows with start <= date <= end.
func FilterDaily(rows []core.DailyRecord, r core.DateRange) []core.DailyRecord {
	out := make([]core.DailyRecord, 0, len(rows))
	for _, row := range rows {
		if r.Contains(row.Date) {
			out = append(out, row)
		}
	}
	return out
}

// FilterHourly keeps rows with start <= date <= end.
func FilterHourly(rows []core.HourlyRecord, r core.DateRange) []core.HourlyRecord {
	out := make([]core.HourlyRecord, 0, len(rows))
	for _, row := range rows {
		if r.Contains(row.Date) {
			out = append(out, row)
		}
	}
	return out
}

// sumBy groups rows by key and returns the keys in ascending order with
// their sums.
func sumBy[R any, K cmp.Ordered](rows []R, key func(R) K, val func(R) int64) ([]K, map[K]int64) {
	sums := make(map[K]int64)
	for _, r := range rows {
		sums[key(r)] += val(r)
	}
	return slices.Sorted(maps.Keys(sums)), sums
}

// HourTotals sums count_cr per hour of day, ascending by hour.
func HourTotals(hourly []core.HourlyRecord) []core.HourTotal {
	keys, sums := sumBy(hourly,
		func(r core.HourlyRecord) int { return r.Hour },
		func(r core.HourlyRecord) int64 { return r.Count })
	out := make([]core.HourTotal, 0, len(keys))
	for _, h := range keys {
		out = append(out, core.HourTotal{Hour: h, Count: sums[h]})
	}
	return out
}

// OrderByHour returns the hour totals sorted descending by sum, ties broken
// by ascending hour.
func OrderByHour(hourly []core.HourlyRecord) []core.HourTotal {
	out := HourTotals(hourly)
	slices.SortStableFunc(out, func(a, b core.HourTotal) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Hour, b.Hour)
	})
	return out
}

// BusiestHours is the head of the descending ordering.
func BusiestHours(ordered []core.HourTotal, n int) []core.HourTotal {
	return slices.Clone(ordered[:min(n, len(ordered))])
}

// LeastBusyHours re-sorts the ordering ascending by hour of day and takes the
// first n, i.e. the earliest hours present. With byVolume it takes the n
// smallest sums instead, smallest first.
func LeastBusyHours(ordered []core.HourTotal, n int, byVolume bool) []core.HourTotal {
	out := slices.Clone(ordered)
	if byVolume {
		slices.SortStableFunc(out, func(a, b core.HourTotal) int {
			if c := cmp.Compare(a.Count, b.Count); c != 0 {
				return c
			}
			return cmp.Compare(a.Hour, b.Hour)
		})
	} else {
		slices.SortStableFunc(out, func(a, b core.HourTotal) int { return cmp.Compare(a.Hour, b.Hour) })
	}
	return out[:min(n, len(out))]
}

// WeatherTotals sums count_cr per weather situation, ascending by code.
func WeatherTotals(daily []core.DailyRecord) []core.WeatherTotal {
	keys, sums := sumBy(daily,
		func(r core.DailyRecord) core.WeatherSituation { return r.Weather },
		func(r core.DailyRecord) int64 { return r.Count })
	out := make([]core.WeatherTotal, 0, len(keys))
	for _, w := range keys {
		out = append(out, core.WeatherTotal{Weather: w, Count: sums[w]})
	}
	return out
}

// MonthlyTotals sums count_cr per month, reindexed onto Jan..Dec with
// missing months zero.
func MonthlyTotals(daily []core.DailyRecord) [12]core.MonthTotal {
	var out [12]core.MonthTotal
	for i := range out {
		out[i].Month = time.Month(i + 1)
	}
	for _, r := range daily {
		if r.Month >= time.January && r.Month <= time.December {
			out[r.Month-1].Count += r.Count
		}
	}
	return out
}

// WorkingDayTotals sums count_cr per working-day flag, false first. Only the
// flags present in the input appear.
func WorkingDayTotals(daily []core.DailyRecord) []core.WorkingDayTotal {
	var sums [2]int64
	var seen [2]bool
	for _, r := range daily {
		i := 0
		if r.WorkingDay {
			i = 1
		}
		sums[i] += r.Count
		seen[i] = true
	}
	out := make([]core.WorkingDayTotal, 0, 2)
	for i, ok := range seen {
		if ok {
			out = append(out, core.WorkingDayTotal{WorkingDay: i == 1, Count: sums[i]})
		}
	}
	return out
}

// SeasonTotals sums count_cr per season over the hourly table, ascending.
func SeasonTotals(hourly []core.HourlyRecord) []core.SeasonTotal {
	keys, sums := sumBy(hourly,
		func(r core.HourlyRecord) core.Season { return r.Season },
		func(r core.HourlyRecord) int64 { return r.Count })
	return seasonRows(keys, sums)
}

// SeasonTotalsDaily is SeasonTotals over the daily table.
func SeasonTotalsDaily(daily []core.DailyRecord) []core.SeasonTotal {
	keys, sums := sumBy(daily,
		func(r core.DailyRecord) core.Season { return r.Season },
		func(r core.DailyRecord) int64 { return r.Count })
	return seasonRows(keys, sums)
}

func seasonRows(keys []core.Season, sums map[core.Season]int64) []core.SeasonTotal {
	out := make([]core.SeasonTotal, 0, len(keys))
	for _, s := range keys {
		out = append(out, core.SeasonTotal{Season: s, Count: sums[s]})
	}
	return out
}

// RegisteredByDate is register_sum: registered summed per date.
func RegisteredByDate(daily []core.DailyRecord) []core.DateSum {
	return sumByDate(daily, func(r core.DailyRecord) int64 { return r.Registered })
}

// CasualByDate is casual_sum: casual summed per date.
func CasualByDate(daily []core.DailyRecord) []core.DateSum {
	return sumByDate(daily, func(r core.DailyRecord) int64 { return r.Casual })
}

func sumByDate(daily []core.DailyRecord, val func(core.DailyRecord) int64) []core.DateSum {
	keys, sums := sumBy(daily,
		func(r core.DailyRecord) int64 { return r.Date.Unix() },
		val)
	out := make([]core.DateSum, 0, len(keys))
	for _, k := range keys {
		d := core.Date{Time: time.Unix(k, 0).UTC()}
		out = append(out, core.DateSum{Date: d, Sum: sums[k]})
	}
	return out
}

// HistoricalWindow returns the daily rows inside [HistoricalStart,
// HistoricalEnd], whatever range is selected.
func HistoricalWindow(daily []core.DailyRecord) []core.DailyRecord {
	return FilterDaily(daily, core.DateRange{Start: HistoricalStart, End: HistoricalEnd})
}

// Sum adds the count_cr column.
func Sum(daily []core.DailyRecord) int64 {
	var n int64
	for _, r := range daily {
		n += r.Count
	}
	return n
}

// SumDates adds a register_sum or casual_sum table.
func SumDates(rows []core.DateSum) int64 {
	var n int64
	for _, r := range rows {
		n += r.Sum
	}
	return n
}
