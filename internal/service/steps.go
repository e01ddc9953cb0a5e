package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/steppulse/steppulse/internal/domain/models"
	"github.com/steppulse/steppulse/internal/storage"
)

// StepsService is the write side of the rollup engine: it folds incoming
// step reports into the daily record and the week/month totals.
type StepsService interface {
	// SubmitOne validates and folds a single report, returning the daily
	// record it produced or extended.
	SubmitOne(ctx context.Context, userID string, report *models.StepReport) (*models.DailyRecord, error)

	// SubmitBatch validates, orders and folds a batch of reports as one
	// unit of storage work. On success it echoes back the submitted
	// reports in their original order.
	SubmitBatch(ctx context.Context, userID string, reports []models.StepReport) ([]models.StepReport, error)

	// ResetAll wipes all daily records and week rollups. Administrative;
	// invoked by the external weekly scheduler, never per request.
	ResetAll(ctx context.Context) error
}

type stepsService struct {
	repo storage.StepsRepository

	// Per-user mutual exclusion around each read-merge-write sequence.
	// Two concurrent submissions for the same user racing on
	// "read latest -> merge -> write" would lose updates; different
	// users proceed fully in parallel.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewStepsService(repo storage.StepsRepository) StepsService {
	return &stepsService{
		repo:      repo,
		userLocks: make(map[string]*sync.Mutex),
	}
}

func (s *stepsService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

func (s *stepsService) SubmitOne(_ context.Context, userID string, report *models.StepReport) (*models.DailyRecord, error) {
	if err := Validate(report); err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	latest, err := s.repo.FindLatestDailyRecord(userID)
	if err != nil {
		return nil, fmt.Errorf("find latest daily record: %w", err)
	}

	rec, weekDelta, monthDelta := Merge(userID, report, latest)

	week, err := s.applyWeekDelta(userID, weekDelta)
	if err != nil {
		return nil, err
	}
	month, err := s.applyMonthDelta(userID, monthDelta)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveRollups(
		[]*models.DailyRecord{rec},
		[]*models.WeekAggregate{week},
		[]*models.MonthAggregate{month},
	); err != nil {
		return nil, fmt.Errorf("save rollups: %w", err)
	}
	return rec, nil
}

func (s *stepsService) SubmitBatch(_ context.Context, userID string, reports []models.StepReport) ([]models.StepReport, error) {
	if err := ValidateAll(reports); err != nil {
		return nil, err
	}

	// The same-day/new-day decision depends on chronological order, not
	// request order. Ties on EndTime keep their insertion order.
	sorted := make([]models.StepReport, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EndTime.Before(sorted[j].EndTime)
	})

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.repo.FindLatestDailyRecord(userID)
	if err != nil {
		return nil, fmt.Errorf("find latest daily record: %w", err)
	}

	// Fold sequentially, threading the current record through the batch.
	// A batch may span several days, so every record it touches is kept
	// for the single write at the end.
	var touched []*models.DailyRecord
	seen := make(map[string]struct{})
	weekDeltas := make(map[[2]int]int64)
	monthDeltas := make(map[[2]int]int64)

	for i := range sorted {
		rec, wd, md := Merge(userID, &sorted[i], current)
		if _, ok := seen[rec.ID]; !ok {
			seen[rec.ID] = struct{}{}
			touched = append(touched, rec)
		}
		current = rec
		weekDeltas[[2]int{wd.Year, wd.Period}] += wd.Steps
		monthDeltas[[2]int{md.Year, md.Period}] += md.Steps
	}

	var weeks []*models.WeekAggregate
	for key, steps := range weekDeltas {
		agg, err := s.applyWeekDelta(userID, Delta{Year: key[0], Period: key[1], Steps: steps})
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, agg)
	}
	var months []*models.MonthAggregate
	for key, steps := range monthDeltas {
		agg, err := s.applyMonthDelta(userID, Delta{Year: key[0], Period: key[1], Steps: steps})
		if err != nil {
			return nil, err
		}
		months = append(months, agg)
	}

	if err := s.repo.SaveRollups(touched, weeks, months); err != nil {
		return nil, fmt.Errorf("save rollups: %w", err)
	}
	return reports, nil
}

// applyWeekDelta reads the week bucket for the delta's period, creating
// it on first contribution, and returns it with the delta added.
func (s *stepsService) applyWeekDelta(userID string, d Delta) (*models.WeekAggregate, error) {
	agg, err := s.repo.FindWeekAggregate(userID, d.Year, d.Period)
	if err != nil {
		return nil, fmt.Errorf("find week aggregate: %w", err)
	}
	if agg == nil {
		agg = &models.WeekAggregate{UserID: userID, Year: d.Year, Week: d.Period}
	}
	agg.StepCount += d.Steps
	return agg, nil
}

// applyMonthDelta is the month counterpart of applyWeekDelta.
func (s *stepsService) applyMonthDelta(userID string, d Delta) (*models.MonthAggregate, error) {
	agg, err := s.repo.FindMonthAggregate(userID, d.Year, d.Period)
	if err != nil {
		return nil, fmt.Errorf("find month aggregate: %w", err)
	}
	if agg == nil {
		agg = &models.MonthAggregate{UserID: userID, Year: d.Year, Month: d.Period}
	}
	agg.StepCount += d.Steps
	return agg, nil
}

func (s *stepsService) ResetAll(_ context.Context) error {
	if err := s.repo.DeleteAllDailyRecords(); err != nil {
		return fmt.Errorf("delete daily records: %w", err)
	}
	if err := s.repo.DeleteAllWeekAggregates(); err != nil {
		return fmt.Errorf("delete week aggregates: %w", err)
	}
	return nil
}
