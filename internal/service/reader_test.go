package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/steppulse/steppulse/internal/domain/apperr"
	"github.com/steppulse/steppulse/internal/domain/models"
)

func seedRecord(repo *memRepo, id, userID string, count int64, day, hour int) {
	start := time.Date(2024, 4, day, hour, 0, 0, 0, time.UTC)
	repo.records[id] = models.DailyRecord{
		ID:           id,
		UserID:       userID,
		StepCount:    count,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		UploadedTime: start.Add(time.Hour + time.Minute),
	}
}

func TestLatest(t *testing.T) {
	repo := newMemRepo()
	reader := NewAggregateReader(repo)
	ctx := context.Background()

	if _, err := reader.Latest(ctx, "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown user: want ErrNotFound, got %v", err)
	}

	seedRecord(repo, "r1", "u1", 10, 14, 8)
	seedRecord(repo, "r2", "u1", 30, 16, 8)
	rec, err := reader.Latest(ctx, "u1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec.ID != "r2" {
		t.Fatalf("want most recent record r2, got %s", rec.ID)
	}
}

func TestRangeTotal(t *testing.T) {
	repo := newMemRepo()
	reader := NewAggregateReader(repo)
	ctx := context.Background()

	seedRecord(repo, "r1", "u1", 10, 14, 8)
	seedRecord(repo, "r2", "u1", 30, 16, 8)
	seedRecord(repo, "r3", "other", 99, 15, 8)

	from := time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 17, 0, 0, 0, 0, time.UTC)
	total, err := reader.RangeTotal(ctx, "u1", from, to)
	if err != nil {
		t.Fatalf("range total: %v", err)
	}
	if total != 40 {
		t.Fatalf("want 40, got %d", total)
	}

	// Empty window reads as zero, not as an error.
	empty, err := reader.RangeTotal(ctx, "u1",
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 7, 0, 0, 0, 0, time.UTC))
	if err != nil || empty != 0 {
		t.Fatalf("empty window: want 0/nil, got %d/%v", empty, err)
	}
}

func TestDailySeries(t *testing.T) {
	repo := newMemRepo()
	reader := NewAggregateReader(repo)

	// Two records on day 15 (distinct records can share a date after a
	// reset or a backfill), one on day 16, seeded out of order.
	seedRecord(repo, "r2", "u1", 30, 16, 9)
	seedRecord(repo, "r1", "u1", 10, 15, 8)
	seedRecord(repo, "r3", "u1", 5, 15, 20)

	series, err := reader.DailySeries(context.Background(), "u1",
		time.Date(2024, 4, 15, 13, 30, 0, 0, time.UTC), // time-of-day is ignored
		time.Date(2024, 4, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("want 2 points, got %d", len(series))
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Fatal("series must be ordered ascending by date")
	}
	if series[0].StepCount != 15 || series[1].StepCount != 30 {
		t.Fatalf("want 15 then 30, got %d then %d", series[0].StepCount, series[1].StepCount)
	}
}

func TestWeekTotalAndMonthTotal(t *testing.T) {
	repo := newMemRepo()
	reader := NewAggregateReader(repo)
	ctx := context.Background()

	repo.weeks[weekKey("u1", 2024, 16)] = models.WeekAggregate{UserID: "u1", Year: 2024, Week: 16, StepCount: 40}
	repo.months[weekKey("u1", 2024, 4)] = models.MonthAggregate{UserID: "u1", Year: 2024, Month: 4, StepCount: 40}

	if total, err := reader.WeekTotal(ctx, "u1", 2024, 16); err != nil || total != 40 {
		t.Fatalf("week total: %d/%v", total, err)
	}
	if total, err := reader.MonthTotal(ctx, "u1", 2024, 4); err != nil || total != 40 {
		t.Fatalf("month total: %d/%v", total, err)
	}

	// Absent bucket is not-found, distinct from a stored zero.
	if _, err := reader.WeekTotal(ctx, "u1", 2024, 17); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("absent week: want ErrNotFound, got %v", err)
	}
	repo.weeks[weekKey("u1", 2024, 18)] = models.WeekAggregate{UserID: "u1", Year: 2024, Week: 18, StepCount: 0}
	if total, err := reader.WeekTotal(ctx, "u1", 2024, 18); err != nil || total != 0 {
		t.Fatalf("stored zero must read as 0/nil, got %d/%v", total, err)
	}
}

func TestDistinctUsers(t *testing.T) {
	repo := newMemRepo()
	reader := NewAggregateReader(repo)

	seedRecord(repo, "r1", "u1", 10, 15, 8)
	seedRecord(repo, "r2", "u2", 20, 15, 9)

	users, err := reader.DistinctUsers(context.Background())
	if err != nil {
		t.Fatalf("distinct users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("want 2 users, got %v", users)
	}
}

func TestReader_StorageFailurePropagates(t *testing.T) {
	repo := newMemRepo()
	repo.findErr = errors.New("timeout")
	reader := NewAggregateReader(repo)
	ctx := context.Background()

	if _, err := reader.RangeTotal(ctx, "u1", time.Now().Add(-time.Hour), time.Now()); !errors.Is(err, repo.findErr) {
		t.Fatalf("want wrapped storage error, got %v", err)
	}
	if _, err := reader.WeekTotal(ctx, "u1", 2024, 1); !errors.Is(err, repo.findErr) {
		t.Fatalf("want wrapped storage error, got %v", err)
	}
}
