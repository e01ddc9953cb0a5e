package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/steppulse/steppulse/internal/domain/apperr"
	"github.com/steppulse/steppulse/internal/domain/models"
)

// memRepo is an in-memory StepsRepository used across the service tests.
// It stores copies, like a real database would, so engine-side mutations
// only become visible through SaveRollups.
type memRepo struct {
	records map[string]models.DailyRecord // by record id
	weeks   map[string]models.WeekAggregate
	months  map[string]models.MonthAggregate

	findErr error
	saveErr error

	findLatestCalls int
	saveCalls       int
}

func newMemRepo() *memRepo {
	return &memRepo{
		records: make(map[string]models.DailyRecord),
		weeks:   make(map[string]models.WeekAggregate),
		months:  make(map[string]models.MonthAggregate),
	}
}

func weekKey(userID string, year, week int) string {
	return fmt.Sprintf("%s|%d|%d", userID, year, week)
}

func (m *memRepo) FindLatestDailyRecord(userID string) (*models.DailyRecord, error) {
	m.findLatestCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	var latest *models.DailyRecord
	for id := range m.records {
		rec := m.records[id]
		if rec.UserID != userID {
			continue
		}
		if latest == nil || rec.StartTime.After(latest.StartTime) {
			cp := rec
			latest = &cp
		}
	}
	return latest, nil
}

func (m *memRepo) FindDailyRecordsByUploadRange(userID string, start, end time.Time) ([]models.DailyRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.DailyRecord
	for _, rec := range m.records {
		if rec.UserID == userID && !rec.UploadedTime.Before(start) && !rec.UploadedTime.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRepo) FindDailyRecordsByStartRange(userID string, start, end time.Time) ([]models.DailyRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []models.DailyRecord
	for _, rec := range m.records {
		if rec.UserID == userID && !rec.StartTime.Before(start) && !rec.StartTime.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memRepo) UpsertDailyRecord(rec *models.DailyRecord) error {
	m.records[rec.ID] = *rec
	return nil
}

func (m *memRepo) FindWeekAggregate(userID string, year, week int) (*models.WeekAggregate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if agg, ok := m.weeks[weekKey(userID, year, week)]; ok {
		cp := agg
		return &cp, nil
	}
	return nil, nil
}

func (m *memRepo) UpsertWeekAggregate(agg *models.WeekAggregate) error {
	m.weeks[weekKey(agg.UserID, agg.Year, agg.Week)] = *agg
	return nil
}

func (m *memRepo) FindMonthAggregate(userID string, year, month int) (*models.MonthAggregate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if agg, ok := m.months[weekKey(userID, year, month)]; ok {
		cp := agg
		return &cp, nil
	}
	return nil, nil
}

func (m *memRepo) UpsertMonthAggregate(agg *models.MonthAggregate) error {
	m.months[weekKey(agg.UserID, agg.Year, agg.Month)] = *agg
	return nil
}

func (m *memRepo) SaveRollups(records []*models.DailyRecord, weeks []*models.WeekAggregate, months []*models.MonthAggregate) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, rec := range records {
		m.records[rec.ID] = *rec
	}
	for _, agg := range weeks {
		m.weeks[weekKey(agg.UserID, agg.Year, agg.Week)] = *agg
	}
	for _, agg := range months {
		m.months[weekKey(agg.UserID, agg.Year, agg.Month)] = *agg
	}
	return nil
}

func (m *memRepo) DistinctUserIDs() ([]string, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range m.records {
		if _, ok := seen[rec.UserID]; !ok {
			seen[rec.UserID] = struct{}{}
			out = append(out, rec.UserID)
		}
	}
	return out, nil
}

func (m *memRepo) DeleteAllDailyRecords() error {
	m.records = make(map[string]models.DailyRecord)
	return nil
}

func (m *memRepo) DeleteAllWeekAggregates() error {
	m.weeks = make(map[string]models.WeekAggregate)
	return nil
}

func report(userID string, count int64, day, hour int) models.StepReport {
	start := time.Date(2024, 4, day, hour, 0, 0, 0, time.UTC)
	return models.StepReport{
		UserID:     userID,
		StepCount:  count,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		UploadTime: start.Add(35 * time.Minute),
	}
}

func TestSubmitOne_NewUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)

	r := report("u1", 10, 15, 8)
	rec, err := svc.SubmitOne(context.Background(), "u1", &r)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.StepCount != 10 {
		t.Fatalf("new day record should equal report count, got %d", rec.StepCount)
	}
	if len(repo.records) != 1 || len(repo.weeks) != 1 || len(repo.months) != 1 {
		t.Fatalf("expected one record and one bucket each: %d/%d/%d",
			len(repo.records), len(repo.weeks), len(repo.months))
	}
}

func TestSubmitOne_SameDayAccumulates(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)
	ctx := context.Background()

	a := report("u1", 10, 15, 8)
	b := report("u1", 20, 15, 10) // same day, later end
	if _, err := svc.SubmitOne(ctx, "u1", &a); err != nil {
		t.Fatalf("submit a: %v", err)
	}
	rec, err := svc.SubmitOne(ctx, "u1", &b)
	if err != nil {
		t.Fatalf("submit b: %v", err)
	}

	if len(repo.records) != 1 {
		t.Fatalf("same day must keep a single record, got %d", len(repo.records))
	}
	if rec.StepCount != 30 {
		t.Fatalf("step count should be the sum, got %d", rec.StepCount)
	}
	if !rec.EndTime.Equal(b.EndTime) || !rec.UploadedTime.Equal(b.UploadTime) {
		t.Fatalf("end/uploaded should follow the latest report: %+v", rec)
	}
	if !rec.StartTime.Equal(a.StartTime) {
		t.Fatal("start time anchors the day and must not move")
	}
}

func TestSubmitOne_NewDayAndWeekRollsUp(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)
	ctx := context.Background()

	// April 15 and 16 2024 fall in the same aligned week (16).
	a := report("u1", 10, 15, 8)
	c := report("u1", 30, 16, 9)
	if _, err := svc.SubmitOne(ctx, "u1", &a); err != nil {
		t.Fatalf("submit a: %v", err)
	}
	if _, err := svc.SubmitOne(ctx, "u1", &c); err != nil {
		t.Fatalf("submit c: %v", err)
	}

	if len(repo.records) != 2 {
		t.Fatalf("a new day must create a second record, got %d", len(repo.records))
	}
	var counts []int64
	for _, rec := range repo.records {
		counts = append(counts, rec.StepCount)
	}
	if !(counts[0] == 10 && counts[1] == 30) && !(counts[0] == 30 && counts[1] == 10) {
		t.Fatalf("expected records with counts 10 and 30, got %v", counts)
	}

	week := repo.weeks[weekKey("u1", 2024, 16)]
	if week.StepCount != 40 {
		t.Fatalf("week aggregate should total 40, got %d", week.StepCount)
	}
	month := repo.months[weekKey("u1", 2024, 4)]
	if month.StepCount != 40 {
		t.Fatalf("month aggregate should total 40, got %d", month.StepCount)
	}
}

// Resubmitting an identical report adds again: the engine does not
// deduplicate, that responsibility stays with the caller.
func TestSubmitOne_DuplicateIsNotIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)
	ctx := context.Background()

	r := report("u1", 10, 15, 8)
	dup := r
	if _, err := svc.SubmitOne(ctx, "u1", &r); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rec, err := svc.SubmitOne(ctx, "u1", &dup)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if rec.StepCount != 20 {
		t.Fatalf("duplicate submission must add again, got %d", rec.StepCount)
	}
}

func TestSubmitOne_ValidationFailureSkipsStorage(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)

	bad := report("u1", 0, 15, 8)
	if _, err := svc.SubmitOne(context.Background(), "u1", &bad); !errors.Is(err, apperr.ErrIllegalArgument) {
		t.Fatalf("want ErrIllegalArgument, got %v", err)
	}
	if repo.findLatestCalls != 0 || repo.saveCalls != 0 {
		t.Fatal("validation errors must be raised before any storage access")
	}
}

func TestSubmitOne_StorageFailurePropagates(t *testing.T) {
	repo := newMemRepo()
	repo.findErr = errors.New("connection refused")
	svc := NewStepsService(repo)

	r := report("u1", 10, 15, 8)
	_, err := svc.SubmitOne(context.Background(), "u1", &r)
	if err == nil || !errors.Is(err, repo.findErr) {
		t.Fatalf("storage failure must propagate wrapped, got %v", err)
	}
}

func TestSubmitBatch_ReversedOrderMatchesSequential(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)

	day2 := report("u1", 30, 16, 9)
	day1 := report("u1", 10, 15, 8)

	// Submitted out of chronological order on purpose.
	out, err := svc.SubmitBatch(context.Background(), "u1", []models.StepReport{day2, day1})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	// The call echoes back the input, in its original order.
	if len(out) != 2 || out[0].StepCount != 30 || out[1].StepCount != 10 {
		t.Fatalf("batch must echo the input unchanged, got %+v", out)
	}

	if len(repo.records) != 2 {
		t.Fatalf("expected two daily records, got %d", len(repo.records))
	}
	for _, rec := range repo.records {
		switch rec.StartTime.Day() {
		case 15:
			if rec.StepCount != 10 {
				t.Fatalf("day 15 record should hold 10, got %d", rec.StepCount)
			}
		case 16:
			if rec.StepCount != 30 {
				t.Fatalf("day 16 record should hold 30, got %d", rec.StepCount)
			}
		default:
			t.Fatalf("unexpected record day %d", rec.StartTime.Day())
		}
	}
	if week := repo.weeks[weekKey("u1", 2024, 16)]; week.StepCount != 40 {
		t.Fatalf("week aggregate should total 40, got %d", week.StepCount)
	}

	// One read-merge-write critical section per batch, not per element.
	if repo.findLatestCalls != 1 || repo.saveCalls != 1 {
		t.Fatalf("expected 1 read and 1 write, got %d/%d", repo.findLatestCalls, repo.saveCalls)
	}
}

func TestSubmitBatch_SameDayFoldsIntoOneRecord(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)

	a := report("u1", 10, 15, 8)
	b := report("u1", 20, 15, 10)
	if _, err := svc.SubmitBatch(context.Background(), "u1", []models.StepReport{b, a}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("same-day batch must fold into one record, got %d", len(repo.records))
	}
	for _, rec := range repo.records {
		if rec.StepCount != 30 {
			t.Fatalf("expected folded count 30, got %d", rec.StepCount)
		}
		if !rec.EndTime.Equal(b.EndTime) {
			t.Fatalf("end time should be the latest report's, got %v", rec.EndTime)
		}
	}
}

func TestSubmitBatch_InvalidElementRejectsWholeBatch(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)

	good := report("u1", 10, 15, 8)
	bad := report("u1", 10, 15, 9)
	bad.UserID = ""

	_, err := svc.SubmitBatch(context.Background(), "u1", []models.StepReport{good, bad})
	if !errors.Is(err, apperr.ErrInvalidUserID) {
		t.Fatalf("want ErrInvalidUserID, got %v", err)
	}
	if repo.findLatestCalls != 0 || repo.saveCalls != 0 {
		t.Fatal("no partial batch commit: storage must stay untouched")
	}
}

func TestSubmitBatch_ContinuesExistingRecord(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)
	ctx := context.Background()

	first := report("u1", 5, 15, 6)
	if _, err := svc.SubmitOne(ctx, "u1", &first); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a := report("u1", 10, 15, 8)
	b := report("u1", 20, 15, 10)
	if _, err := svc.SubmitBatch(ctx, "u1", []models.StepReport{a, b}); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("batch should extend the stored record, got %d records", len(repo.records))
	}
	for _, rec := range repo.records {
		if rec.StepCount != 35 {
			t.Fatalf("expected 35 accumulated steps, got %d", rec.StepCount)
		}
	}
}

// Concurrent submissions for one user must not lose updates: the
// read-merge-write sequence is serialized per user.
func TestSubmitOne_ConcurrentSameUser(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(hour int) {
			defer wg.Done()
			r := report("u1", 1, 15, 0)
			r.StartTime = r.StartTime.Add(time.Duration(hour) * time.Minute)
			r.EndTime = r.StartTime.Add(time.Minute)
			r.UploadTime = r.EndTime
			if _, err := svc.SubmitOne(context.Background(), "u1", &r); err != nil {
				t.Errorf("submit: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var total int64
	for _, rec := range repo.records {
		total += rec.StepCount
	}
	if total != n {
		t.Fatalf("lost updates: want %d steps, got %d", n, total)
	}
}

func TestResetAll(t *testing.T) {
	repo := newMemRepo()
	svc := NewStepsService(repo)
	ctx := context.Background()

	r := report("u1", 10, 15, 8)
	if _, err := svc.SubmitOne(ctx, "u1", &r); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(repo.records) != 0 || len(repo.weeks) != 0 {
		t.Fatal("reset must clear daily records and week aggregates")
	}
	if len(repo.months) == 0 {
		t.Fatal("reset must keep month aggregates")
	}
}
