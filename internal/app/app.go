package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/steppulse/steppulse/config"
	"github.com/steppulse/steppulse/internal/api"
	"github.com/steppulse/steppulse/internal/report"
	"github.com/steppulse/steppulse/internal/service"
	"github.com/steppulse/steppulse/internal/storage"
)

// App bundles the engine components wired by InitializeApp so the
// non-HTTP entry points (reset, report generation) can reach them.
type App struct {
	Router *gin.Engine
	Steps  service.StepsService
	Reader service.AggregateReader
	Report *report.WeeklyGenerator
}

// InitializeApp sets up all application dependencies and returns
// the wired application, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (StepsRepository).
//   - Creates the steps engine and the aggregate reader on top of it.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*App, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Initialize repository layer (responsible for DB access)
	repo := storage.NewStepsRepository(db)

	// Initialize the engine: write side and read side share the repository
	steps := service.NewStepsService(repo)
	reader := service.NewAggregateReader(repo)

	// Weekly XLSX report generator
	weekly := report.NewWeeklyGenerator(reader, cfg.Report.OutputDir, cfg.Report.Workers)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(steps, reader)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	app := &App{
		Router: router,
		Steps:  steps,
		Reader: reader,
		Report: weekly,
	}

	return app, cleanup, nil
}
