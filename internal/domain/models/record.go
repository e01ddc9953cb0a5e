package models

import "time"

// DailyRecord is the persisted per-user accumulator for one calendar day.
//
// Fields:
//   - ID: storage-assigned identifier (UUID).
//   - UserID: owner of the record.
//   - StepCount: accumulated steps for the day.
//   - StartTime: start of the first report that opened the day. It anchors
//     the calendar day of the record and never changes once set.
//   - EndTime: end of the latest folded report.
//   - UploadedTime: upload time of the latest folded report.
//
// While reports keep arriving within the same calendar day (judged by
// StartTime's date) the record is mutated in place; a new record is
// created once the day changes.
type DailyRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	StepCount    int64     `json:"step_count" example:"8500"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	UploadedTime time.Time `json:"uploaded_time"`
}
