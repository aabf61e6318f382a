package dataset

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"bikeshare/internal/core"
)

// Canonical column names with the aliases found in the published files.
var columnAliases = map[string][]string{
	"date":              {"date", "dteday"},
	"hour":              {"hour", "hr"},
	"season":            {"season"},
	"weather_situation": {"weather_situation", "weathersit"},
	"working_day":       {"working_day", "workingday"},
	"month":             {"month", "mnth"},
	"registered":        {"registered"},
	"casual":            {"casual"},
	"count_cr":          {"count_cr", "cnt", "count"},
}

// FrameFromRecords builds a string-typed frame from a header row followed by
// data rows. Short rows are padded with empty cells, extra cells dropped.
func FrameFromRecords(records [][]string) (dataframe.DataFrame, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return dataframe.DataFrame{}, core.ErrEmptyTable
	}
	width := len(records[0])
	if len(records) == 1 {
		cols := make([]series.Series, 0, width)
		for _, name := range records[0] {
			cols = append(cols, series.New([]string{}, series.String, name))
		}
		df := dataframe.New(cols...)
		return df, df.Err
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, width)
		copy(row, rec)
		rows = append(rows, row)
	}
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

type columns struct {
	source string
	df     dataframe.DataFrame
	byName map[string]string
}

func newColumns(source string, df dataframe.DataFrame) columns {
	byName := make(map[string]string, df.Ncol())
	for _, name := range df.Names() {
		byName[strings.ToLower(strings.TrimSpace(name))] = name
	}
	return columns{source: source, df: df, byName: byName}
}

// find returns the frame's header for a canonical column.
func (c columns) find(canonical string) (string, bool) {
	for _, alias := range columnAliases[canonical] {
		if name, ok := c.byName[alias]; ok {
			return name, true
		}
	}
	return "", false
}

func (c columns) values(canonical string) ([]string, error) {
	name, ok := c.find(canonical)
	if !ok {
		return nil, &core.DataFormatError{Source: c.source, Column: canonical, Err: core.ErrMissingColumn}
	}
	return c.df.Col(name).Records(), nil
}

func (c columns) require(canonical ...string) (map[string][]string, error) {
	out := make(map[string][]string, len(canonical))
	for _, name := range canonical {
		vals, err := c.values(name)
		if err != nil {
			return nil, err
		}
		out[name] = vals
	}
	return out, nil
}

func (c columns) cellError(row int, column, value string, err error) error {
	return &core.DataFormatError{Source: c.source, Row: row + 1, Column: column, Value: value, Err: err}
}

// DecodeDaily coerces every row of the daily frame. The first bad cell
// aborts the decode.
func DecodeDaily(source string, df dataframe.DataFrame) ([]core.DailyRecord, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("%s: %w", source, df.Err)
	}
	c := newColumns(source, df)
	cols, err := c.require("date", "season", "weather_situation", "working_day", "month", "registered", "casual", "count_cr")
	if err != nil {
		return nil, err
	}

	out := make([]core.DailyRecord, df.Nrow())
	for i := range out {
		rec := &out[i]
		v := cols["date"][i]
		if rec.Date, err = core.ParseDate(v); err != nil {
			return nil, c.cellError(i, "date", v, err)
		}
		v = cols["season"][i]
		if rec.Season, err = core.ParseSeason(v); err != nil {
			return nil, c.cellError(i, "season", v, err)
		}
		v = cols["weather_situation"][i]
		if rec.Weather, err = core.ParseWeather(v); err != nil {
			return nil, c.cellError(i, "weather_situation", v, err)
		}
		v = cols["working_day"][i]
		if rec.WorkingDay, err = core.ParseFlag(v); err != nil {
			return nil, c.cellError(i, "working_day", v, err)
		}
		v = cols["month"][i]
		if rec.Month, err = core.ParseMonth(v); err != nil {
			return nil, c.cellError(i, "month", v, err)
		}
		for _, f := range []struct {
			col string
			dst *int64
		}{
			{"registered", &rec.Registered},
			{"casual", &rec.Casual},
			{"count_cr", &rec.Count},
		} {
			v = cols[f.col][i]
			if *f.dst, err = core.ParseCount(v); err != nil {
				return nil, c.cellError(i, f.col, v, err)
			}
		}
	}
	return out, nil
}

// DecodeHourly coerces every row of the hourly frame. hasSeason reports
// whether a season column was present and decoded.
func DecodeHourly(source string, df dataframe.DataFrame) (rows []core.HourlyRecord, hasSeason bool, err error) {
	if df.Err != nil {
		return nil, false, fmt.Errorf("%s: %w", source, df.Err)
	}
	c := newColumns(source, df)
	cols, err := c.require("date", "hour", "count_cr")
	if err != nil {
		return nil, false, err
	}
	var seasons []string
	if _, ok := c.find("season"); ok {
		seasons, _ = c.values("season")
		hasSeason = true
	}

	rows = make([]core.HourlyRecord, df.Nrow())
	for i := range rows {
		rec := &rows[i]
		v := cols["date"][i]
		if rec.Date, err = core.ParseDate(v); err != nil {
			return nil, false, c.cellError(i, "date", v, err)
		}
		v = cols["hour"][i]
		if rec.Hour, err = core.ParseHour(v); err != nil {
			return nil, false, c.cellError(i, "hour", v, err)
		}
		v = cols["count_cr"][i]
		if rec.Count, err = core.ParseCount(v); err != nil {
			return nil, false, c.cellError(i, "count_cr", v, err)
		}
		if hasSeason {
			v = seasons[i]
			if rec.Season, err = core.ParseSeason(v); err != nil {
				return nil, false, c.cellError(i, "season", v, err)
			}
		}
	}
	return rows, hasSeason, nil
}
