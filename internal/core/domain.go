package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

const (
	SeasonSpring Season = iota + 1
	SeasonSummer
	SeasonFall
	SeasonWinter
)

const (
	WeatherFair WeatherSituation = iota + 1
	WeatherMisty
	WeatherHeavy
	WeatherSevere
)

type (
	// Date is a calendar day at UTC midnight.
	Date struct {
		time.Time
	}

	// Season is the categorical period encoded 1-4.
	Season int

	// WeatherSituation is the weather severity bucket encoded 1-3
	// (4 appears in the hourly UCI data and is accepted).
	WeatherSituation int

	DailyRecord struct {
		Date       Date
		Season     Season
		Weather    WeatherSituation
		WorkingDay bool
		Month      time.Month
		Registered int64
		Casual     int64
		Count      int64 // count_cr
	}

	HourlyRecord struct {
		Date   Date
		Hour   int
		Season Season // zero when the source has no season column
		Count  int64
	}
)

var (
	ErrMissingColumn  = errors.New("missing column")
	ErrEmptyTable     = errors.New("table has no header")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidSeason  = errors.New("invalid season")
	ErrInvalidHour    = errors.New("invalid hour")
	ErrInvalidWeather = errors.New("invalid weather situation")
	ErrInvalidMonth   = errors.New("invalid month")
	ErrInvalidFlag    = errors.New("invalid flag")
	ErrNegativeCount  = errors.New("negative count")
)

// DataFormatError reports an input value that could not be coerced into the
// record schema.
type DataFormatError struct {
	Source string
	Row    int // 1-based data row, 0 when the error concerns the header
	Column string
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	if e.Row == 0 {
		return fmt.Sprintf("%s: column %q: %v", e.Source, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: row %d column %q value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD, optionally followed by a time of day which is
// discarded.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && (s[len(DateLayout)] == ' ' || s[len(DateLayout)] == 'T') {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON writes the day as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }
func (d Date) After(o Date) bool  { return d.Time.After(o.Time) }
func (d Date) Equal(o Date) bool  { return d.Time.Equal(o.Time) }

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int { return d.Time.Compare(o.Time) }

var seasonNames = map[Season]string{
	SeasonSpring: "Spring",
	SeasonSummer: "Summer",
	SeasonFall:   "Fall",
	SeasonWinter: "Winter",
}

func (s Season) String() string {
	if name, ok := seasonNames[s]; ok {
		return name
	}
	return "Season " + strconv.Itoa(int(s))
}

// ParseSeason accepts the 1-4 code or a season name.
func ParseSeason(s string) (Season, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 4 {
			return Season(n), nil
		}
		return 0, fmt.Errorf("%w: %d", ErrInvalidSeason, n)
	}
	switch strings.ToLower(s) {
	case "spring", "springer":
		return SeasonSpring, nil
	case "summer":
		return SeasonSummer, nil
	case "fall", "autumn":
		return SeasonFall, nil
	case "winter":
		return SeasonWinter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, s)
}

func (w WeatherSituation) String() string {
	switch w {
	case WeatherFair:
		return "Fair"
	case WeatherMisty:
		return "Misty"
	case WeatherHeavy:
		return "Heavy"
	case WeatherSevere:
		return "Severe"
	}
	return "Weather " + strconv.Itoa(int(w))
}

// ParseWeather accepts the numeric code or one of the bucket names.
func ParseWeather(s string) (WeatherSituation, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 4 {
			return WeatherSituation(n), nil
		}
		return 0, fmt.Errorf("%w: %d", ErrInvalidWeather, n)
	}
	switch strings.ToLower(s) {
	case "fair", "clear":
		return WeatherFair, nil
	case "misty", "mist", "cloudy":
		return WeatherMisty, nil
	case "heavy", "light rain", "light snow":
		return WeatherHeavy, nil
	case "severe", "heavy rain":
		return WeatherSevere, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeather, s)
}

// ShortMonth is the three-letter label used on the monthly axis.
func ShortMonth(m time.Month) string {
	return m.String()[:3]
}

// ParseMonth accepts Jan, January or 1..12.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), nil
		}
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, n)
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(s, ShortMonth(m)) || strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// ParseFlag coerces the working-day column.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "t", "1.0":
		return true, nil
	case "0", "false", "no", "n", "f", "0.0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidFlag, s)
}

// ParseHour accepts 0..23.
func ParseHour(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHour, s)
	}
	if n < 0 || n > 23 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHour, n)
	}
	return n, nil
}

// ParseCount accepts non-negative integers; a trailing ".0" from spreadsheet
// exports is tolerated.
func ParseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	return n, nil
}

// Consistent reports whether count_cr equals registered + casual.
func (r DailyRecord) Consistent() bool {
	return r.Count == r.Registered+r.Casual
}
