package main

//
//  @title           steppulse API
//  @version         1.0
//  @description     Per-user step report ingestion & rollup service.
//  @termsOfService  https://github.com/steppulse/steppulse
//  @contact.name    API Support
//  @contact.url     https://github.com/steppulse/steppulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        steps
//  @tag.description Endpoints for submitting step reports and querying rollups
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/steppulse/steppulse/config"
	_ "github.com/steppulse/steppulse/docs" // swagger docs
	"github.com/steppulse/steppulse/internal/app"
	"github.com/steppulse/steppulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the steppulse application.
//
// Modes (selected via --mode flag):
//   - api:    Starts the REST API for step report submission and rollup queries.
//   - report: Generates the weekly XLSX activity report and exits.
//   - reset:  Clears all daily records and week rollups, then exits. Month
//     rollups are preserved. Intended for the external weekly scheduler.
//
// Flags:
//   - --mode: Execution mode ("api", "report" or "reset"). Default: "api".
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api, report or reset")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(a.Router, *port)
		gracefulShutdown(ctx, server, cleanup)

	case "report":
		// Report mode: write the weekly XLSX and exit
		logger.L().Info().Msg("generating weekly report")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		path, err := a.Report.Generate(ctx, time.Now())
		if err != nil {
			logger.L().Fatal().Err(err).Msg("report generation failed")
		}
		logger.L().Info().Str("path", path).Msg("weekly report written")

	case "reset":
		// Reset mode: wipe daily records and week rollups, months survive
		logger.L().Info().Msg("running weekly reset")

		a, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}
		defer cleanup()

		if err := a.Steps.ResetAll(ctx); err != nil {
			logger.L().Fatal().Err(err).Msg("reset failed")
		}
		logger.L().Info().Msg("reset completed successfully")

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
