package models

import "time"

// WeekAggregate is the running step total for one user and one
// year-aligned week. Created on first contribution, incremented on every
// accepted report that falls into the week, never decremented.
//
// swagger:model WeekAggregate
type WeekAggregate struct {
	UserID    string `json:"user_id"`
	Year      int    `json:"year" example:"2024"`
	Week      int    `json:"week" example:"17"`
	StepCount int64  `json:"step_count" example:"52300"`
}

// MonthAggregate is the running step total for one user and one calendar
// month. Same lifecycle as WeekAggregate.
//
// swagger:model MonthAggregate
type MonthAggregate struct {
	UserID    string `json:"user_id"`
	Year      int    `json:"year" example:"2024"`
	Month     int    `json:"month" example:"4"`
	StepCount int64  `json:"step_count" example:"214800"`
}

// DailyTotal is one point of a day-level series returned by range
// queries: the summed step count for a single calendar date.
type DailyTotal struct {
	Date      time.Time `json:"date"`
	StepCount int64     `json:"step_count"`
}
