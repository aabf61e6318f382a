package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/core"
)

func sampleTables(t *testing.T) aggregate.Tables {
	t.Helper()
	daily := []core.DailyRecord{
		{Date: core.NewDate(2011, time.January, 1), Season: core.SeasonSpring, Weather: core.WeatherFair,
			Month: time.January, Registered: 1000, Casual: 500, Count: 1500},
		{Date: core.NewDate(2011, time.July, 1), Season: core.SeasonFall, Weather: core.WeatherMisty, WorkingDay: true,
			Month: time.July, Registered: 3000, Casual: 500, Count: 3500},
	}
	hourly := []core.HourlyRecord{
		{Date: core.NewDate(2011, time.January, 1), Hour: 17, Season: core.SeasonSpring, Count: 900},
		{Date: core.NewDate(2011, time.January, 1), Hour: 3, Season: core.SeasonSpring, Count: 10},
		{Date: core.NewDate(2011, time.July, 1), Hour: 8, Season: core.SeasonFall, Count: 700},
	}
	ds := core.NewDataset(daily, hourly, true)
	b, ok := ds.Bounds()
	require.True(t, ok)
	return aggregate.Run(ds, b, aggregate.Options{})
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "3,292,679", FormatCount(3292679))
}

func TestBuildMetricsAndPanels(t *testing.T) {
	dash := Build(sampleTables(t), Options{LiveUserShare: true})

	require.Len(t, dash.Metrics, 3)
	assert.EqualValues(t, 5000, dash.Metrics[0].Value)
	assert.Equal(t, "5,000", dash.Metrics[0].Display)
	assert.EqualValues(t, 4000, dash.Metrics[1].Value)
	assert.EqualValues(t, 1000, dash.Metrics[2].Value)
	assert.False(t, dash.Empty)

	require.Len(t, dash.Panels, 6)
	hours := dash.Panels[0].Charts
	require.Len(t, hours, 2)
	assert.Equal(t, []string{"17", "8", "3"}, hours[0].Labels)
	assert.False(t, hours[0].Mirror)
	assert.True(t, hours[1].Mirror)
	assert.Equal(t, []string{"3", "8", "17"}, hours[1].Labels)

	monthly := dash.Panels[2].Charts[0]
	assert.Equal(t, KindLine, monthly.Kind)
	assert.Len(t, monthly.Labels, 12)
	assert.Equal(t, "Jan", monthly.Labels[0])
	assert.Equal(t, 3500.0, monthly.Values[6])

	season := dash.Panels[4].Charts[0]
	assert.Equal(t, []string{"Fall", "Spring"}, season.Labels)

	share := dash.Panels[5].Charts[0]
	assert.Equal(t, KindPie, share.Kind)
	assert.Equal(t, []float64{80, 20}, share.Values)
}

func TestStaticUserShare(t *testing.T) {
	share := Build(sampleTables(t), Options{}).Panels[5].Charts[0]
	require.Len(t, share.Labels, 2)
	require.Len(t, share.Values, 2)

	byLabel := map[string]float64{}
	for i, label := range share.Labels {
		byLabel[label] = share.Values[i]
	}
	assert.Equal(t, 81.2, byLabel["Registered"])
	assert.Equal(t, 18.8, byLabel["Casual"])
}

func TestHighlightMax(t *testing.T) {
	assert.Nil(t, highlightMax(nil))
	assert.Equal(t, []string{ColorMuted, ColorHighlight, ColorMuted}, highlightMax([]float64{1, 5, 2}))
	assert.Equal(t, []string{ColorHighlight, ColorMuted}, highlightMax([]float64{4, 4}))
}

func TestBuildEmptySelection(t *testing.T) {
	dash := Build(aggregate.Run(core.Dataset{}, core.DateRange{}, aggregate.Options{}), Options{LiveUserShare: true})
	assert.True(t, dash.Empty)
	for _, m := range dash.Metrics {
		assert.Zero(t, m.Value)
		assert.Equal(t, "0", m.Display)
	}
	assert.Empty(t, dash.Panels[0].Charts[0].Values)
	assert.Empty(t, dash.Panels[5].Charts[0].Values)
	assert.Len(t, dash.Panels[2].Charts[0].Values, 12)
}
