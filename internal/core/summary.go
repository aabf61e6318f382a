package core

import "time"

// Derived rows produced by one pipeline run.
type (
	HourTotal struct {
		Hour  int   `json:"hour"`
		Count int64 `json:"count_cr"`
	}

	WeatherTotal struct {
		Weather WeatherSituation `json:"weather_situation"`
		Count   int64            `json:"count_cr"`
	}

	MonthTotal struct {
		Month time.Month `json:"month"`
		Count int64      `json:"count_cr"`
	}

	WorkingDayTotal struct {
		WorkingDay bool  `json:"working_day"`
		Count      int64 `json:"count_cr"`
	}

	SeasonTotal struct {
		Season Season `json:"season"`
		Count  int64  `json:"count_cr"`
	}

	// DateSum is one row of register_sum or casual_sum.
	DateSum struct {
		Date Date  `json:"date"`
		Sum  int64 `json:"sum"`
	}
)
