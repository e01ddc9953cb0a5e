package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/steppulse/steppulse/internal/domain/apperr"
	"github.com/steppulse/steppulse/internal/domain/models"
	"github.com/steppulse/steppulse/internal/period"
	"github.com/steppulse/steppulse/internal/storage"
)

// AggregateReader is the read side of the engine: range and window
// queries reconstructed from the stored rollups. It never mutates state.
type AggregateReader interface {
	// Latest returns the user's most recent daily record.
	Latest(ctx context.Context, userID string) (*models.DailyRecord, error)

	// RangeTotal sums the step counts of daily records whose uploaded
	// time falls within [start, end]. An empty window yields 0, not an
	// error.
	RangeTotal(ctx context.Context, userID string, start, end time.Time) (int64, error)

	// DailySeries groups daily records by the calendar date of their
	// start time, summing per date, ordered ascending.
	DailySeries(ctx context.Context, userID string, startDate, endDate time.Time) ([]models.DailyTotal, error)

	// WeekTotal and MonthTotal look up a period bucket directly. An
	// absent bucket is apperr.ErrNotFound, distinct from a stored zero.
	WeekTotal(ctx context.Context, userID string, year, week int) (int64, error)
	MonthTotal(ctx context.Context, userID string, year, month int) (int64, error)

	// DistinctUsers enumerates every known user id.
	DistinctUsers(ctx context.Context) ([]string, error)
}

type aggregateReader struct {
	repo storage.StepsRepository
}

func NewAggregateReader(repo storage.StepsRepository) AggregateReader {
	return &aggregateReader{repo: repo}
}

func (r *aggregateReader) Latest(_ context.Context, userID string) (*models.DailyRecord, error) {
	rec, err := r.repo.FindLatestDailyRecord(userID)
	if err != nil {
		return nil, fmt.Errorf("find latest daily record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: no daily record for user", apperr.ErrNotFound)
	}
	return rec, nil
}

func (r *aggregateReader) RangeTotal(_ context.Context, userID string, start, end time.Time) (int64, error) {
	records, err := r.repo.FindDailyRecordsByUploadRange(userID, start, end)
	if err != nil {
		return 0, fmt.Errorf("find daily records in range: %w", err)
	}
	var total int64
	for i := range records {
		total += records[i].StepCount
	}
	return total, nil
}

func (r *aggregateReader) DailySeries(_ context.Context, userID string, startDate, endDate time.Time) ([]models.DailyTotal, error) {
	// Window covers whole calendar days: from midnight of startDate up to
	// the last instant of endDate.
	from := period.DayKey(startDate)
	to := period.DayKey(endDate).AddDate(0, 0, 1).Add(-time.Nanosecond)

	records, err := r.repo.FindDailyRecordsByStartRange(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("find daily records in range: %w", err)
	}

	totals := make(map[time.Time]int64)
	for i := range records {
		totals[period.DayKey(records[i].StartTime)] += records[i].StepCount
	}

	series := make([]models.DailyTotal, 0, len(totals))
	for date, steps := range totals {
		series = append(series, models.DailyTotal{Date: date, StepCount: steps})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

func (r *aggregateReader) WeekTotal(_ context.Context, userID string, year, week int) (int64, error) {
	agg, err := r.repo.FindWeekAggregate(userID, year, week)
	if err != nil {
		return 0, fmt.Errorf("find week aggregate: %w", err)
	}
	if agg == nil {
		return 0, fmt.Errorf("%w: no week aggregate for period", apperr.ErrNotFound)
	}
	return agg.StepCount, nil
}

func (r *aggregateReader) MonthTotal(_ context.Context, userID string, year, month int) (int64, error) {
	agg, err := r.repo.FindMonthAggregate(userID, year, month)
	if err != nil {
		return 0, fmt.Errorf("find month aggregate: %w", err)
	}
	if agg == nil {
		return 0, fmt.Errorf("%w: no month aggregate for period", apperr.ErrNotFound)
	}
	return agg.StepCount, nil
}

func (r *aggregateReader) DistinctUsers(_ context.Context) ([]string, error) {
	users, err := r.repo.DistinctUserIDs()
	if err != nil {
		return nil, fmt.Errorf("distinct user ids: %w", err)
	}
	return users, nil
}
