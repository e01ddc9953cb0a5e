package storage

import (
	"database/sql"
	"time"

	"github.com/steppulse/steppulse/internal/domain/models"
)

// StepsRepository defines the contract for DB operations on step rollups.
//
// Find* methods return (nil, nil) when no row matches; callers decide
// whether absence is an error. Upsert* methods insert or replace by the
// natural key of each rollup.
type StepsRepository interface {
	FindLatestDailyRecord(userID string) (*models.DailyRecord, error)
	FindDailyRecordsByUploadRange(userID string, start, end time.Time) ([]models.DailyRecord, error)
	FindDailyRecordsByStartRange(userID string, start, end time.Time) ([]models.DailyRecord, error)
	UpsertDailyRecord(rec *models.DailyRecord) error
	FindWeekAggregate(userID string, year, week int) (*models.WeekAggregate, error)
	UpsertWeekAggregate(agg *models.WeekAggregate) error
	FindMonthAggregate(userID string, year, month int) (*models.MonthAggregate, error)
	UpsertMonthAggregate(agg *models.MonthAggregate) error
	SaveRollups(records []*models.DailyRecord, weeks []*models.WeekAggregate, months []*models.MonthAggregate) error
	DistinctUserIDs() ([]string, error)
	DeleteAllDailyRecords() error
	DeleteAllWeekAggregates() error
}

type stepsRepository struct {
	db *sql.DB
}

func NewStepsRepository(db *sql.DB) StepsRepository {
	return &stepsRepository{db: db}
}

// FindLatestDailyRecord returns the most recent daily record for a user,
// ordered by start_time, or (nil, nil) when the user has none.
func (r *stepsRepository) FindLatestDailyRecord(userID string) (*models.DailyRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, user_id, step_count, start_time, end_time, uploaded_time
		FROM daily_records
		WHERE user_id = $1
		ORDER BY start_time DESC
		LIMIT 1
	`, userID)

	var rec models.DailyRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.StepCount, &rec.StartTime, &rec.EndTime, &rec.UploadedTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindDailyRecordsByUploadRange returns all daily records for a user whose
// uploaded_time falls within [start, end].
func (r *stepsRepository) FindDailyRecordsByUploadRange(userID string, start, end time.Time) ([]models.DailyRecord, error) {
	return r.queryRecords(`
		SELECT id, user_id, step_count, start_time, end_time, uploaded_time
		FROM daily_records
		WHERE user_id = $1 AND uploaded_time >= $2 AND uploaded_time <= $3
		ORDER BY uploaded_time
	`, userID, start, end)
}

// FindDailyRecordsByStartRange returns all daily records for a user whose
// start_time falls within [start, end], ordered ascending. Used by the
// day-level series reconstruction.
func (r *stepsRepository) FindDailyRecordsByStartRange(userID string, start, end time.Time) ([]models.DailyRecord, error) {
	return r.queryRecords(`
		SELECT id, user_id, step_count, start_time, end_time, uploaded_time
		FROM daily_records
		WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time
	`, userID, start, end)
}

func (r *stepsRepository) queryRecords(query string, args ...interface{}) ([]models.DailyRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.DailyRecord
	for rows.Next() {
		var rec models.DailyRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.StepCount, &rec.StartTime, &rec.EndTime, &rec.UploadedTime); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

const (
	upsertDailyRecordSQL = `
		INSERT INTO daily_records (id, user_id, step_count, start_time, end_time, uploaded_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET step_count = EXCLUDED.step_count,
					  end_time = EXCLUDED.end_time,
					  uploaded_time = EXCLUDED.uploaded_time`

	upsertWeekAggregateSQL = `
		INSERT INTO week_aggregates (user_id, year, week, step_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year, week)
		DO UPDATE SET step_count = EXCLUDED.step_count`

	upsertMonthAggregateSQL = `
		INSERT INTO month_aggregates (user_id, year, month, step_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year, month)
		DO UPDATE SET step_count = EXCLUDED.step_count`
)

// UpsertDailyRecord inserts or replaces a daily record by id.
func (r *stepsRepository) UpsertDailyRecord(rec *models.DailyRecord) error {
	_, err := r.db.Exec(upsertDailyRecordSQL,
		rec.ID, rec.UserID, rec.StepCount, rec.StartTime, rec.EndTime, rec.UploadedTime)
	return err
}

// FindWeekAggregate returns the week rollup for (userID, year, week),
// or (nil, nil) when the bucket does not exist yet.
func (r *stepsRepository) FindWeekAggregate(userID string, year, week int) (*models.WeekAggregate, error) {
	row := r.db.QueryRow(`
		SELECT user_id, year, week, step_count
		FROM week_aggregates
		WHERE user_id = $1 AND year = $2 AND week = $3
	`, userID, year, week)

	var agg models.WeekAggregate
	err := row.Scan(&agg.UserID, &agg.Year, &agg.Week, &agg.StepCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// UpsertWeekAggregate inserts or replaces a week rollup by its natural key.
func (r *stepsRepository) UpsertWeekAggregate(agg *models.WeekAggregate) error {
	_, err := r.db.Exec(upsertWeekAggregateSQL,
		agg.UserID, agg.Year, agg.Week, agg.StepCount)
	return err
}

// FindMonthAggregate returns the month rollup for (userID, year, month),
// or (nil, nil) when the bucket does not exist yet.
func (r *stepsRepository) FindMonthAggregate(userID string, year, month int) (*models.MonthAggregate, error) {
	row := r.db.QueryRow(`
		SELECT user_id, year, month, step_count
		FROM month_aggregates
		WHERE user_id = $1 AND year = $2 AND month = $3
	`, userID, year, month)

	var agg models.MonthAggregate
	err := row.Scan(&agg.UserID, &agg.Year, &agg.Month, &agg.StepCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agg, nil
}

// UpsertMonthAggregate inserts or replaces a month rollup by its natural key.
func (r *stepsRepository) UpsertMonthAggregate(agg *models.MonthAggregate) error {
	_, err := r.db.Exec(upsertMonthAggregateSQL,
		agg.UserID, agg.Year, agg.Month, agg.StepCount)
	return err
}

// SaveRollups persists the outcome of one fold (touched daily records plus
// week and month totals) in a single transaction, so a submission or batch
// is one logical unit of storage work.
func (r *stepsRepository) SaveRollups(records []*models.DailyRecord, weeks []*models.WeekAggregate, months []*models.MonthAggregate) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	for _, rec := range records {
		if _, err := tx.Exec(upsertDailyRecordSQL,
			rec.ID, rec.UserID, rec.StepCount, rec.StartTime, rec.EndTime, rec.UploadedTime); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	for _, agg := range weeks {
		if _, err := tx.Exec(upsertWeekAggregateSQL,
			agg.UserID, agg.Year, agg.Week, agg.StepCount); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	for _, agg := range months {
		if _, err := tx.Exec(upsertMonthAggregateSQL,
			agg.UserID, agg.Year, agg.Month, agg.StepCount); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// DistinctUserIDs lists every user with at least one daily record.
func (r *stepsRepository) DistinctUserIDs() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT user_id FROM daily_records ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// DeleteAllDailyRecords removes every daily record. Administrative only,
// invoked through the weekly reset entry point.
func (r *stepsRepository) DeleteAllDailyRecords() error {
	_, err := r.db.Exec(`DELETE FROM daily_records`)
	return err
}

// DeleteAllWeekAggregates removes every week rollup. Administrative only,
// invoked through the weekly reset entry point.
func (r *stepsRepository) DeleteAllWeekAggregates() error {
	_, err := r.db.Exec(`DELETE FROM week_aggregates`)
	return err
}
