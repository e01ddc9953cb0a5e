package dto

import (
	"time"

	"github.com/steppulse/steppulse/internal/domain/models"
)

// StepReportRequest is the JSON payload for a single step report.
//
// All timestamps are RFC 3339 with timezone. The API contract may differ
// from the internal domain model; this keeps the surface decoupled from
// business logic.
type StepReportRequest struct {
	StepCount  int64     `json:"step_count" example:"1200"`
	StartTime  time.Time `json:"start_time" example:"2024-04-15T08:00:00Z"`
	EndTime    time.Time `json:"end_time" example:"2024-04-15T08:30:00Z"`
	UploadTime time.Time `json:"upload_time" example:"2024-04-15T08:31:00Z"`
}

// ToModel converts the request into the engine's input type, stamping it
// with the user the transport layer resolved.
func (r StepReportRequest) ToModel(userID string) models.StepReport {
	return models.StepReport{
		UserID:     userID,
		StepCount:  r.StepCount,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		UploadTime: r.UploadTime,
	}
}

// BatchSubmitRequest wraps a list of reports submitted as one unit.
type BatchSubmitRequest struct {
	Reports []StepReportRequest `json:"reports"`
}

// BatchSubmitResponse echoes back the reports that were committed.
type BatchSubmitResponse struct {
	Accepted int                 `json:"accepted" example:"2"`
	Reports  []StepReportRequest `json:"reports"`
}

// RangeTotalResponse is the JSON body for window-total queries.
type RangeTotalResponse struct {
	UserID     string    `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalSteps int64     `json:"total_steps" example:"12400"`
}

// DailyPoint is one element of a day-level series response.
type DailyPoint struct {
	Date       string `json:"date" example:"2024-04-15"`
	TotalSteps int64  `json:"total_steps" example:"8500"`
}

// DailySeriesResponse is the JSON body for day-level series queries.
type DailySeriesResponse struct {
	UserID string       `json:"user_id"`
	Series []DailyPoint `json:"series"`
}

// PeriodTotalResponse is the JSON body for week and month total lookups.
// Week is set for week queries, Month for month queries.
type PeriodTotalResponse struct {
	UserID     string `json:"user_id"`
	Year       int    `json:"year" example:"2024"`
	Week       int    `json:"week,omitempty" example:"16"`
	Month      int    `json:"month,omitempty" example:"4"`
	TotalSteps int64  `json:"total_steps" example:"52300"`
}
