package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
)

func d(y int, m time.Month, day int) core.Date { return core.NewDate(y, m, day) }

func twoRowDataset() core.Dataset {
	daily := []core.DailyRecord{
		{Date: d(2011, time.January, 1), Season: core.SeasonSpring, Weather: core.WeatherFair, WorkingDay: false,
			Month: time.January, Registered: 10, Casual: 5, Count: 15},
		{Date: d(2011, time.January, 2), Season: core.SeasonSpring, Weather: core.WeatherMisty, WorkingDay: true,
			Month: time.January, Registered: 20, Casual: 0, Count: 20},
	}
	hourly := []core.HourlyRecord{
		{Date: d(2011, time.January, 1), Hour: 8, Season: core.SeasonSpring, Count: 10},
		{Date: d(2011, time.January, 1), Hour: 17, Season: core.SeasonSpring, Count: 5},
		{Date: d(2011, time.January, 2), Hour: 8, Season: core.SeasonSpring, Count: 12},
		{Date: d(2011, time.January, 2), Hour: 0, Season: core.SeasonSpring, Count: 8},
	}
	return core.NewDataset(daily, hourly, true)
}

func TestRunTwoRowScenario(t *testing.T) {
	ds := twoRowDataset()
	r := core.DateRange{Start: d(2011, time.January, 1), End: d(2011, time.January, 2)}

	tables := Run(ds, r, Options{})

	assert.EqualValues(t, 35, Sum(tables.Historical))
	assert.EqualValues(t, 30, SumDates(tables.Registered))
	assert.EqualValues(t, 5, SumDates(tables.Casual))
	assert.EqualValues(t, 35, tables.Monthly[0].Count)
	for _, m := range tables.Monthly[1:] {
		assert.Zero(t, m.Count, m.Month.String())
	}
	assert.Equal(t, []core.WorkingDayTotal{
		{WorkingDay: false, Count: 15},
		{WorkingDay: true, Count: 20},
	}, tables.WorkingDay)
	assert.Equal(t, []core.SeasonTotal{{Season: core.SeasonSpring, Count: 35}}, tables.Season)
	assert.False(t, tables.Empty())
}

func TestFilterExactAndIdempotent(t *testing.T) {
	ds := twoRowDataset()
	r := core.DateRange{Start: d(2011, time.January, 2), End: d(2011, time.January, 2)}

	once := FilterDaily(ds.Daily(), r)
	require.Len(t, once, 1)
	for _, row := range once {
		assert.True(t, r.Contains(row.Date))
	}
	assert.Equal(t, once, FilterDaily(once, r))

	hourly := FilterHourly(ds.Hourly(), r)
	assert.Len(t, hourly, 2)
	assert.Equal(t, hourly, FilterHourly(hourly, r))
}

func TestFilterInvertedRangeIsEmpty(t *testing.T) {
	ds := twoRowDataset()
	r := core.DateRange{Start: d(2011, time.January, 2), End: d(2011, time.January, 1)}
	tables := Run(ds, r, Options{})
	assert.True(t, tables.Empty())
	assert.Empty(t, tables.HourTotals)
	assert.Empty(t, tables.Busiest)
	assert.Len(t, tables.Monthly, 12)
}

func TestHourTotalsPreservesMass(t *testing.T) {
	hourly := twoRowDataset().Hourly()
	var in int64
	for _, h := range hourly {
		in += h.Count
	}
	var out int64
	totals := HourTotals(hourly)
	for _, h := range totals {
		out += h.Count
	}
	assert.Equal(t, in, out)
	assert.Equal(t, []core.HourTotal{{Hour: 0, Count: 8}, {Hour: 8, Count: 22}, {Hour: 17, Count: 5}}, totals)
}

func TestOrderByHourAndExtremes(t *testing.T) {
	var hourly []core.HourlyRecord
	// hour h gets 100-3h, with hours 3 and 4 tied.
	for h := 0; h < 24; h++ {
		c := int64(100 - h*3)
		hourly = append(hourly, core.HourlyRecord{Date: d(2011, time.May, 1), Hour: h, Count: c})
	}
	hourly[4].Count = hourly[3].Count

	ordered := OrderByHour(hourly)
	require.Len(t, ordered, 24)
	assert.Equal(t, 0, ordered[0].Hour)
	assert.Equal(t, 3, ordered[3].Hour, "ties break by hour")
	assert.Equal(t, 4, ordered[4].Hour)
	assert.Equal(t, 23, ordered[23].Hour)

	busiest := BusiestHours(ordered, TopHours)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, hours(busiest))

	// Reference behaviour: earliest hours of the ordering.
	assert.Equal(t, []int{0, 1, 2, 3, 4}, hours(LeastBusyHours(ordered, TopHours, false)))
	assert.Equal(t, []int{23, 22, 21, 20, 19}, hours(LeastBusyHours(ordered, TopHours, true)))

	// Inputs untouched.
	assert.Equal(t, 0, ordered[0].Hour)
}

func TestExtremesShortInput(t *testing.T) {
	ordered := []core.HourTotal{{Hour: 5, Count: 1}, {Hour: 2, Count: 1}}
	assert.Len(t, BusiestHours(ordered, TopHours), 2)
	assert.Equal(t, []int{2, 5}, hours(LeastBusyHours(ordered, TopHours, false)))
	assert.Empty(t, BusiestHours(nil, TopHours))
	assert.Empty(t, LeastBusyHours(nil, TopHours, true))
}

func TestWeatherTotalsAscending(t *testing.T) {
	daily := []core.DailyRecord{
		{Weather: core.WeatherHeavy, Count: 1},
		{Weather: core.WeatherFair, Count: 2},
		{Weather: core.WeatherHeavy, Count: 3},
	}
	assert.Equal(t, []core.WeatherTotal{
		{Weather: core.WeatherFair, Count: 2},
		{Weather: core.WeatherHeavy, Count: 4},
	}, WeatherTotals(daily))
}

func TestMonthlyTotalsAlwaysTwelve(t *testing.T) {
	got := MonthlyTotals(nil)
	for i, m := range got {
		assert.Equal(t, time.Month(i+1), m.Month)
		assert.Zero(t, m.Count)
	}
	got = MonthlyTotals([]core.DailyRecord{{Month: time.December, Count: 7}, {Month: time.December, Count: 1}})
	assert.EqualValues(t, 8, got[11].Count)
}

func TestWorkingDayPresentGroupsOnly(t *testing.T) {
	got := WorkingDayTotals([]core.DailyRecord{{WorkingDay: true, Count: 3}})
	assert.Equal(t, []core.WorkingDayTotal{{WorkingDay: true, Count: 3}}, got)
	assert.Empty(t, WorkingDayTotals(nil))
}

func TestSeasonFromDailyWhenHourlyLacksIt(t *testing.T) {
	daily := []core.DailyRecord{
		{Date: d(2011, time.July, 1), Season: core.SeasonFall, Month: time.July, Count: 4, Registered: 4},
		{Date: d(2011, time.April, 1), Season: core.SeasonSummer, Month: time.April, Count: 6, Registered: 6},
	}
	ds := core.NewDataset(daily, []core.HourlyRecord{{Date: d(2011, time.July, 1), Hour: 1, Count: 9}}, false)
	b, _ := ds.Bounds()
	tables := Run(ds, b, Options{})
	assert.Equal(t, []core.SeasonTotal{
		{Season: core.SeasonSummer, Count: 6},
		{Season: core.SeasonFall, Count: 4},
	}, tables.Season)
}

func TestRegisteredConservation(t *testing.T) {
	daily := []core.DailyRecord{
		{Date: d(2011, time.January, 3), Registered: 4, Casual: 1},
		{Date: d(2011, time.January, 1), Registered: 6, Casual: 2},
		{Date: d(2011, time.January, 3), Registered: 5, Casual: 3},
	}
	reg := RegisteredByDate(daily)
	require.Len(t, reg, 2)
	assert.Equal(t, d(2011, time.January, 1), reg[0].Date)
	assert.EqualValues(t, 9, reg[1].Sum)
	assert.EqualValues(t, 15, SumDates(reg))
	assert.EqualValues(t, 6, SumDates(CasualByDate(daily)))
}

func TestHistoricalWindowBounds(t *testing.T) {
	daily := []core.DailyRecord{
		{Date: d(2010, time.December, 31), Count: 1},
		{Date: d(2011, time.January, 1), Count: 2},
		{Date: d(2012, time.December, 31), Count: 4},
		{Date: d(2013, time.January, 1), Count: 8},
	}
	assert.EqualValues(t, 6, Sum(HistoricalWindow(daily)))
}

func TestEmptyInputs(t *testing.T) {
	assert.NotPanics(t, func() {
		tables := Run(core.Dataset{}, core.DateRange{}, Options{LeastBusyByVolume: true})
		assert.True(t, tables.Empty())
		assert.Empty(t, tables.Weather)
		assert.Empty(t, tables.Season)
		assert.Empty(t, tables.Registered)
		assert.Zero(t, Sum(tables.Historical))
	})
}

func hours(in []core.HourTotal) []int {
	out := make([]int, 0, len(in))
	for _, h := range in {
		out = append(out, h.Hour)
	}
	return out
}
