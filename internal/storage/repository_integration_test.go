//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/steppulse/steppulse/internal/domain/models"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "steppulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=steppulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "steppulse")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func newRecord(userID string, count int64, start time.Time) *models.DailyRecord {
	return &models.DailyRecord{
		ID:           uuid.NewString(),
		UserID:       userID,
		StepCount:    count,
		StartTime:    start,
		EndTime:      start.Add(time.Hour),
		UploadedTime: start.Add(time.Hour + time.Minute),
	}
}

func TestRepository_Integration_RoundTrip(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewStepsRepository(db)

	day1 := time.Date(2024, 4, 15, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 4, 16, 9, 0, 0, 0, time.UTC)

	rec1 := newRecord("u1", 10, day1)
	rec2 := newRecord("u1", 30, day2)
	week := &models.WeekAggregate{UserID: "u1", Year: 2024, Week: 16, StepCount: 40}
	month := &models.MonthAggregate{UserID: "u1", Year: 2024, Month: 4, StepCount: 40}

	if err := repo.SaveRollups([]*models.DailyRecord{rec1, rec2}, []*models.WeekAggregate{week}, []*models.MonthAggregate{month}); err != nil {
		t.Fatalf("save rollups: %v", err)
	}

	latest, err := repo.FindLatestDailyRecord("u1")
	if err != nil {
		t.Fatalf("find latest: %v", err)
	}
	if latest == nil || latest.ID != rec2.ID {
		t.Fatalf("latest should be the day-2 record, got %+v", latest)
	}

	// Upsert replaces by id
	rec2.StepCount = 45
	if err := repo.UpsertDailyRecord(rec2); err != nil {
		t.Fatalf("upsert record: %v", err)
	}
	latest, err = repo.FindLatestDailyRecord("u1")
	if err != nil || latest.StepCount != 45 {
		t.Fatalf("upsert not applied: %+v err=%v", latest, err)
	}

	records, err := repo.FindDailyRecordsByUploadRange("u1", day1, day2.Add(3*time.Hour))
	if err != nil || len(records) != 2 {
		t.Fatalf("upload range: records=%v err=%v", records, err)
	}
	records, err = repo.FindDailyRecordsByStartRange("u1", day1, day1.Add(time.Hour))
	if err != nil || len(records) != 1 {
		t.Fatalf("start range: records=%v err=%v", records, err)
	}

	agg, err := repo.FindWeekAggregate("u1", 2024, 16)
	if err != nil || agg == nil || agg.StepCount != 40 {
		t.Fatalf("week aggregate: %+v err=%v", agg, err)
	}
	if agg, err := repo.FindWeekAggregate("u1", 2024, 17); err != nil || agg != nil {
		t.Fatalf("absent week should be nil,nil: %+v err=%v", agg, err)
	}

	monthAgg, err := repo.FindMonthAggregate("u1", 2024, 4)
	if err != nil || monthAgg == nil || monthAgg.StepCount != 40 {
		t.Fatalf("month aggregate: %+v err=%v", monthAgg, err)
	}

	users, err := repo.DistinctUserIDs()
	if err != nil || len(users) != 1 || users[0] != "u1" {
		t.Fatalf("distinct users: %v err=%v", users, err)
	}

	if err := repo.DeleteAllDailyRecords(); err != nil {
		t.Fatalf("delete daily: %v", err)
	}
	if err := repo.DeleteAllWeekAggregates(); err != nil {
		t.Fatalf("delete weeks: %v", err)
	}
	if latest, err := repo.FindLatestDailyRecord("u1"); err != nil || latest != nil {
		t.Fatalf("expected empty table after reset, got %+v err=%v", latest, err)
	}
	// Month rollups survive the weekly reset.
	if monthAgg, err := repo.FindMonthAggregate("u1", 2024, 4); err != nil || monthAgg == nil {
		t.Fatalf("month aggregate should survive reset: %+v err=%v", monthAgg, err)
	}
}
