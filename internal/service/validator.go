package service

import (
	"fmt"

	"github.com/steppulse/steppulse/internal/domain/apperr"
	"github.com/steppulse/steppulse/internal/domain/models"
	"github.com/steppulse/steppulse/internal/period"
)

// Validate checks a single report structurally and temporally, without
// touching storage. Checks run in a fixed order and each failure carries
// a distinct error kind so callers can tell them apart:
//
//  1. nil report                      -> apperr.ErrValidationFailed
//  2. empty user id                   -> apperr.ErrInvalidUserID
//  3. step count < 1                  -> apperr.ErrIllegalArgument
//  4. missing start/end/upload time   -> apperr.ErrInvalidTimeRange
//  5. ordering violation              -> apperr.ErrInvalidTimeRange
//
// The required ordering is StartTime < EndTime <= UploadTime; a
// zero-duration report fails the same ordering check.
func Validate(report *models.StepReport) error {
	if report == nil {
		return fmt.Errorf("%w: report is required", apperr.ErrValidationFailed)
	}
	if report.UserID == "" {
		return fmt.Errorf("%w: user id is required", apperr.ErrInvalidUserID)
	}
	if report.StepCount < 1 {
		return fmt.Errorf("%w: step count must be at least 1", apperr.ErrIllegalArgument)
	}
	if report.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", apperr.ErrInvalidTimeRange)
	}
	if report.EndTime.IsZero() {
		return fmt.Errorf("%w: end time is required", apperr.ErrInvalidTimeRange)
	}
	if report.UploadTime.IsZero() {
		return fmt.Errorf("%w: upload time is required", apperr.ErrInvalidTimeRange)
	}
	if !report.StartTime.Before(report.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", apperr.ErrInvalidTimeRange)
	}
	if report.EndTime.After(report.UploadTime) {
		return fmt.Errorf("%w: end time must not be after upload time", apperr.ErrInvalidTimeRange)
	}
	return nil
}

// ValidateAll validates every report in a batch, failing fast on the
// first invalid element. The returned error carries only the kind of the
// first failure, not which element caused it; a batch is accepted or
// rejected as a whole.
func ValidateAll(reports []models.StepReport) error {
	if len(reports) == 0 {
		return fmt.Errorf("%w: batch is empty", apperr.ErrValidationFailed)
	}
	for i := range reports {
		if err := Validate(&reports[i]); err != nil {
			return fmt.Errorf("invalid report in batch: %w", err)
		}
	}
	return nil
}

// IsContinuationOfSameDay answers whether a report belongs to the same
// calendar day as the most recent stored record for the user. It compares
// the full calendar date of both start times; a nil existing record means
// the report opens a new day.
func IsContinuationOfSameDay(existing *models.DailyRecord, report *models.StepReport) bool {
	if existing == nil {
		return false
	}
	return period.SameDay(existing.StartTime, report.StartTime)
}
