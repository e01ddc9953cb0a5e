package service

import (
	"github.com/google/uuid"

	"github.com/steppulse/steppulse/internal/domain/models"
	"github.com/steppulse/steppulse/internal/period"
)

// Delta is the contribution of one report to a single period bucket
// (week or month), identified by year and period number.
type Delta struct {
	Year   int
	Period int
	Steps  int64
}

// Merge folds one validated report into the user's daily record and
// derives the week and month contributions.
//
// When existing is nil or the report falls on a different calendar day,
// a new record is created and seeded from the report. Otherwise the
// existing record is mutated in place: the step count accumulates and
// EndTime/UploadedTime advance to the report's values. StartTime never
// changes once a record exists; it anchors the day.
//
// Week and month buckets are derived from the report's EndTime. Both
// deltas always carry the full report count: every accepted report adds
// once to exactly one week bucket and one month bucket, whether or not
// it opened a new day.
//
// Merge assumes validated input; it performs no checks of its own.
func Merge(userID string, report *models.StepReport, existing *models.DailyRecord) (*models.DailyRecord, Delta, Delta) {
	var rec *models.DailyRecord
	if IsContinuationOfSameDay(existing, report) {
		existing.StepCount += report.StepCount
		existing.EndTime = report.EndTime
		existing.UploadedTime = report.UploadTime
		rec = existing
	} else {
		rec = &models.DailyRecord{
			ID:           uuid.NewString(),
			UserID:       userID,
			StepCount:    report.StepCount,
			StartTime:    report.StartTime,
			EndTime:      report.EndTime,
			UploadedTime: report.UploadTime,
		}
	}

	week := Delta{
		Year:   period.YearOf(report.EndTime),
		Period: period.WeekOf(report.EndTime),
		Steps:  report.StepCount,
	}
	month := Delta{
		Year:   period.YearOf(report.EndTime),
		Period: period.MonthOf(report.EndTime),
		Steps:  report.StepCount,
	}
	return rec, week, month
}
