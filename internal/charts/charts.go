// Package charts turns the derived tables of one pipeline run into the
// metrics and chart definitions the page renders with Chart.js.
package charts

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bikeshare/internal/aggregate"
	"bikeshare/internal/core"
)

const (
	ColorHighlight = "#90CAF9"
	ColorMuted     = "#D3D3D3"
)

// Reference split of the user-share pie when it is not computed live.
const (
	StaticRegisteredShare = 81.2
	StaticCasualShare     = 18.8
)

type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindPie  Kind = "pie"
)

type Metric struct {
	Label   string `json:"label"`
	Value   int64  `json:"value"`
	Display string `json:"display"`
}

type Chart struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Kind   Kind      `json:"kind"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
	// ValueLabels draws each value above its point or bar.
	ValueLabels bool `json:"value_labels,omitempty"`
	// Mirror flips the value axis, used for the right-hand chart of a pair.
	Mirror bool `json:"mirror,omitempty"`
}

type Panel struct {
	Title  string  `json:"title"`
	Charts []Chart `json:"charts"`
}

type Dashboard struct {
	Range   core.DateRange `json:"range"`
	Metrics []Metric       `json:"metrics"`
	Panels  []Panel        `json:"panels"`
	Empty   bool           `json:"empty"`
}

type Options struct {
	// LiveUserShare computes the registered/casual pie from the selection.
	LiveUserShare bool
}

var printer = message.NewPrinter(language.English)

// FormatCount groups thousands: 3292679 -> "3,292,679".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// Build assembles the three metrics and six panels.
func Build(t aggregate.Tables, opts Options) Dashboard {
	registered := aggregate.SumDates(t.Registered)
	casual := aggregate.SumDates(t.Casual)

	return Dashboard{
		Range: t.Range,
		Metrics: []Metric{
			metric("Total rentals", aggregate.Sum(t.Historical)),
			metric("Total registered", registered),
			metric("Total casual", casual),
		},
		Panels: []Panel{
			hoursPanel(t),
			{Title: "Rentals by weather situation", Charts: []Chart{weatherChart(t.Weather)}},
			{Title: "Monthly rentals", Charts: []Chart{monthlyChart(t.Monthly)}},
			{Title: "Working day vs non-working day", Charts: []Chart{workingDayChart(t.WorkingDay)}},
			{Title: "Rentals by season", Charts: []Chart{seasonChart(t.Season)}},
			{Title: "Registered vs casual users", Charts: []Chart{shareChart(registered, casual, opts)}},
		},
		Empty: t.Empty(),
	}
}

func metric(label string, v int64) Metric {
	return Metric{Label: label, Value: v, Display: FormatCount(v)}
}

func hoursPanel(t aggregate.Tables) Panel {
	busiest := Chart{ID: "busiest-hours", Title: "Busiest hours", Kind: KindBar, XLabel: "Hour", YLabel: "Rentals"}
	for _, h := range t.Busiest {
		busiest.Labels = append(busiest.Labels, hourLabel(h.Hour))
		busiest.Values = append(busiest.Values, float64(h.Count))
	}
	busiest.Colors = highlightMax(busiest.Values)

	least := Chart{ID: "least-busy-hours", Title: "Least busy hours", Kind: KindBar, XLabel: "Hour", YLabel: "Rentals", Mirror: true}
	for _, h := range t.LeastBusy {
		least.Labels = append(least.Labels, hourLabel(h.Hour))
		least.Values = append(least.Values, float64(h.Count))
	}
	least.Colors = highlightMax(least.Values)

	return Panel{Title: "Busiest and least busy hours", Charts: []Chart{busiest, least}}
}

func weatherChart(rows []core.WeatherTotal) Chart {
	c := Chart{ID: "weather", Title: "Weather situation", Kind: KindBar, XLabel: "Weather", YLabel: "Rentals", ValueLabels: true}
	for _, r := range rows {
		c.Labels = append(c.Labels, r.Weather.String())
		c.Values = append(c.Values, float64(r.Count))
	}
	c.Colors = highlightMax(c.Values)
	return c
}

func monthlyChart(rows [12]core.MonthTotal) Chart {
	c := Chart{ID: "monthly", Title: "Monthly rentals", Kind: KindLine, XLabel: "Month", YLabel: "Rentals", ValueLabels: true}
	for _, r := range rows {
		c.Labels = append(c.Labels, core.ShortMonth(r.Month))
		c.Values = append(c.Values, float64(r.Count))
	}
	c.Colors = []string{ColorHighlight}
	return c
}

func workingDayChart(rows []core.WorkingDayTotal) Chart {
	c := Chart{ID: "working-day", Title: "Working day", Kind: KindBar, YLabel: "Rentals", ValueLabels: true}
	for _, r := range rows {
		label := "Non-working day"
		if r.WorkingDay {
			label = "Working day"
		}
		c.Labels = append(c.Labels, label)
		c.Values = append(c.Values, float64(r.Count))
	}
	c.Colors = highlightMax(c.Values)
	return c
}

// seasonChart orders bars descending by season key.
func seasonChart(rows []core.SeasonTotal) Chart {
	sorted := slices.Clone(rows)
	slices.SortFunc(sorted, func(a, b core.SeasonTotal) int { return cmp.Compare(b.Season, a.Season) })

	c := Chart{ID: "season", Title: "Season", Kind: KindBar, XLabel: "Season", YLabel: "Rentals"}
	for _, r := range sorted {
		c.Labels = append(c.Labels, r.Season.String())
		c.Values = append(c.Values, float64(r.Count))
	}
	c.Colors = highlightMax(c.Values)
	return c
}

func shareChart(registered, casual int64, opts Options) Chart {
	c := Chart{
		ID:     "user-share",
		Title:  "Registered vs casual",
		Kind:   KindPie,
		Labels: []string{"Registered", "Casual"},
		Colors: []string{ColorHighlight, ColorMuted},
	}
	if !opts.LiveUserShare {
		c.Values = []float64{StaticRegisteredShare, StaticCasualShare}
		return c
	}
	total := registered + casual
	if total == 0 {
		return c
	}
	c.Values = []float64{percent(registered, total), percent(casual, total)}
	return c
}

// percent rounds to one decimal.
func percent(part, total int64) float64 {
	return math.Round(float64(part)*1000/float64(total)) / 10
}

// highlightMax colours the largest value, first one on ties.
func highlightMax(values []float64) []string {
	if len(values) == 0 {
		return nil
	}
	top := 0
	for i, v := range values {
		if v > values[top] {
			top = i
		}
	}
	colors := make([]string, len(values))
	for i := range colors {
		colors[i] = ColorMuted
	}
	colors[top] = ColorHighlight
	return colors
}

func hourLabel(h int) string {
	return strconv.Itoa(h)
}
