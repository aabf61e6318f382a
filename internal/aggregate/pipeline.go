package aggregate

import "bikeshare/internal/core"

type Options struct {
	// LeastBusyByVolume selects the five smallest hour sums instead of the
	// five earliest hours of the descending ordering.
	LeastBusyByVolume bool
}

// Tables is every derived table of one pipeline run.
type Tables struct {
	Range  core.DateRange
	Daily  []core.DailyRecord
	Hourly []core.HourlyRecord

	HourTotals []core.HourTotal
	Ordered    []core.HourTotal
	Busiest    []core.HourTotal
	LeastBusy  []core.HourTotal
	Weather    []core.WeatherTotal
	Monthly    [12]core.MonthTotal
	WorkingDay []core.WorkingDayTotal
	Season     []core.SeasonTotal
	Registered []core.DateSum
	Casual     []core.DateSum
	Historical []core.DailyRecord
}

// Empty reports whether the selection matched no rows in either table.
func (t Tables) Empty() bool {
	return len(t.Daily) == 0 && len(t.Hourly) == 0
}

// Run filters both tables to r and computes the whole battery. Seasons come
// from the hourly table when it carries them, otherwise from the daily one.
func Run(ds core.Dataset, r core.DateRange, opts Options) Tables {
	daily := FilterDaily(ds.Daily(), r)
	hourly := FilterHourly(ds.Hourly(), r)
	ordered := OrderByHour(hourly)

	t := Tables{
		Range:      r,
		Daily:      daily,
		Hourly:     hourly,
		HourTotals: HourTotals(hourly),
		Ordered:    ordered,
		Busiest:    BusiestHours(ordered, TopHours),
		LeastBusy:  LeastBusyHours(ordered, TopHours, opts.LeastBusyByVolume),
		Weather:    WeatherTotals(daily),
		Monthly:    MonthlyTotals(daily),
		WorkingDay: WorkingDayTotals(daily),
		Registered: RegisteredByDate(daily),
		Casual:     CasualByDate(daily),
		Historical: HistoricalWindow(daily),
	}
	if ds.HourlySeason() {
		t.Season = SeasonTotals(hourly)
	} else {
		t.Season = SeasonTotalsDaily(daily)
	}
	return t
}
