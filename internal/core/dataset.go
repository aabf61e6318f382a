package core

import (
	"slices"
)

// Dataset holds the two source tables for the lifetime of the process.
// It is built once by the loader and only read afterwards; callers must not
// modify the slices it hands out.
type Dataset struct {
	daily        []DailyRecord
	hourly       []HourlyRecord
	hourlySeason bool
}

// NewDataset copies both tables and sorts them ascending by date. The sort is
// stable so rows sharing a date keep their input order.
func NewDataset(daily []DailyRecord, hourly []HourlyRecord, hourlySeason bool) Dataset {
	d := slices.Clone(daily)
	h := slices.Clone(hourly)
	slices.SortStableFunc(d, func(a, b DailyRecord) int { return a.Date.Compare(b.Date) })
	slices.SortStableFunc(h, func(a, b HourlyRecord) int { return a.Date.Compare(b.Date) })
	return Dataset{daily: d, hourly: h, hourlySeason: hourlySeason}
}

func (ds Dataset) Daily() []DailyRecord   { return ds.daily }
func (ds Dataset) Hourly() []HourlyRecord { return ds.hourly }

// HourlySeason reports whether the hourly table carries a season column.
func (ds Dataset) HourlySeason() bool { return ds.hourlySeason }

func (ds Dataset) Empty() bool { return len(ds.daily) == 0 && len(ds.hourly) == 0 }

// Bounds returns [min(date), max(date)] across both tables. ok is false for
// an empty dataset.
func (ds Dataset) Bounds() (r DateRange, ok bool) {
	first := true
	extend := func(d Date) {
		if first {
			r = DateRange{Start: d, End: d}
			first = false
			return
		}
		if d.Before(r.Start) {
			r.Start = d
		}
		if d.After(r.End) {
			r.End = d
		}
	}
	// Tables are sorted, so only the ends matter.
	if n := len(ds.daily); n > 0 {
		extend(ds.daily[0].Date)
		extend(ds.daily[n-1].Date)
	}
	if n := len(ds.hourly); n > 0 {
		extend(ds.hourly[0].Date)
		extend(ds.hourly[n-1].Date)
	}
	return r, !first
}
