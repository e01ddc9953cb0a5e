package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/steppulse/steppulse/internal/domain/apperr"
	"github.com/steppulse/steppulse/internal/logger"
	"github.com/steppulse/steppulse/internal/period"
	"github.com/steppulse/steppulse/internal/service"
)

const reportDateLayout = "2006-01-02"

// WeeklyGenerator builds an XLSX activity report covering one aligned
// week for every known user. Users without a rollup bucket for the week
// appear with a zero total.
type WeeklyGenerator struct {
	reader    service.AggregateReader
	outputDir string
	workers   int
}

// NewWeeklyGenerator constructs a generator writing into outputDir.
// workers bounds the concurrent per-user lookups; values below 1 fall
// back to the CPU count.
func NewWeeklyGenerator(reader service.AggregateReader, outputDir string, workers int) *WeeklyGenerator {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &WeeklyGenerator{reader: reader, outputDir: outputDir, workers: workers}
}

// userTotal is one row of the report body.
type userTotal struct {
	userID string
	steps  int64
}

// Generate produces the report for the aligned week containing asOf and
// returns the path of the written file.
//
// Behavior:
//   - Enumerates every known user id.
//   - Fans out week-total lookups with a bounded errgroup.
//   - An absent week bucket counts as zero, it does not fail the report.
//   - Writes summary and totals sheets, rows sorted by user id.
func (g *WeeklyGenerator) Generate(ctx context.Context, asOf time.Time) (string, error) {
	year := period.YearOf(asOf)
	week := period.WeekOf(asOf)

	users, err := g.reader.DistinctUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}

	logger.L().Info().
		Int("users", len(users)).
		Int("year", year).
		Int("week", week).
		Int("workers", g.workers).
		Msg("weekly report start")

	totals := make([]userTotal, len(users))
	var mu sync.Mutex

	// errgroup will cancel siblings on first error.
	eg, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, g.workers)

	for i, id := range users {
		idx := i
		userID := id
		sem <- struct{}{}

		eg.Go(func() error {
			defer func() { <-sem }()

			steps, err := g.reader.WeekTotal(gctx, userID, year, week)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				logger.L().Error().Str("user_id", userID).Err(err).Msg("week total lookup failed")
				return fmt.Errorf("user %s: week total: %w", userID, err)
			}

			mu.Lock()
			totals[idx] = userTotal{userID: userID, steps: steps}
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return "", err
	}

	sort.Slice(totals, func(i, j int) bool { return totals[i].userID < totals[j].userID })

	path, err := g.write(totals, year, week, asOf)
	if err != nil {
		return "", err
	}

	logger.L().Info().Str("path", path).Int("rows", len(totals)).Msg("weekly report done")
	return path, nil
}

func (g *WeeklyGenerator) write(totals []userTotal, year, week int, asOf time.Time) (string, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	totalsSheet := "totals"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return "", fmt.Errorf("create totals sheet: %w", err)
	}

	weekStart := period.WeekStart(asOf)
	weekEnd := period.WeekEnd(asOf)

	var grand int64
	for _, t := range totals {
		grand += t.steps
	}

	_ = f.SetCellValue(summarySheet, "A1", "Weekly Activity Report")
	_ = f.SetCellValue(summarySheet, "A3", "Year")
	_ = f.SetCellValue(summarySheet, "B3", year)
	_ = f.SetCellValue(summarySheet, "A4", "Week")
	_ = f.SetCellValue(summarySheet, "B4", week)
	_ = f.SetCellValue(summarySheet, "A5", "Week Start")
	_ = f.SetCellValue(summarySheet, "B5", weekStart.Format(reportDateLayout))
	_ = f.SetCellValue(summarySheet, "A6", "Week End")
	_ = f.SetCellValue(summarySheet, "B6", weekEnd.Format(reportDateLayout))
	_ = f.SetCellValue(summarySheet, "A7", "Users")
	_ = f.SetCellValue(summarySheet, "B7", len(totals))
	_ = f.SetCellValue(summarySheet, "A8", "Total Steps")
	_ = f.SetCellValue(summarySheet, "B8", grand)

	_ = f.SetCellValue(totalsSheet, "A1", "User ID")
	_ = f.SetCellValue(totalsSheet, "B1", "Total Steps")
	for i, t := range totals {
		row := i + 2
		_ = f.SetCellValue(totalsSheet, fmt.Sprintf("A%d", row), t.userID)
		_ = f.SetCellValue(totalsSheet, fmt.Sprintf("B%d", row), t.steps)
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("weekly_%d_w%02d.xlsx", year, week)
	path := filepath.Join(g.outputDir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}

	return path, nil
}
