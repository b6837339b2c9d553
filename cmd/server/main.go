/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the work time balance server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Initialize SQLite store
  3. Create API handler and router
  4. Start month-close scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS (override the environment):
  -env       Path of the .env file (default: .env, missing is fine)
  -port      HTTP server port                (WORKTIME_PORT, default 8080)
  -db        SQLite database path            (WORKTIME_DB_PATH, default worktime.db)
             Use ":memory:" for in-memory database
  -region    Holiday region for defaults     (WORKTIME_HOLIDAY_REGION)
  -log-level logrus level                    (WORKTIME_LOG_LEVEL, default info)

  Scheduler: WORKTIME_CLOSE_ENABLED, WORKTIME_CLOSE_INTERVAL
  CORS:      WORKTIME_ALLOWED_ORIGINS (comma separated)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection

EXAMPLES:
  ./server -db="./data/worktime.db" -region=BY
  ./server -db=":memory:" -log-level=debug

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/worktime-engine/api"
	"github.com/warp/worktime-engine/config"
	"github.com/warp/worktime-engine/holidays"
	"github.com/warp/worktime-engine/store/sqlite"
)

var log = logrus.New()

func main() {
	envFile := flag.String("env", ".env", "Path of the .env file")
	port := flag.Int("port", 0, "HTTP server port (overrides WORKTIME_PORT)")
	dbPath := flag.String("db", "", "SQLite database path (overrides WORKTIME_DB_PATH)")
	region := flag.String("region", "", "Holiday region (overrides WORKTIME_HOLIDAY_REGION)")
	logLevel := flag.String("log-level", "", "Log level (overrides WORKTIME_LOG_LEVEL)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *region != "" {
		cfg.HolidayRegion = *region
	}
	if *logLevel != "" {
		if cfg.LogLevel, err = logrus.ParseLevel(*logLevel); err != nil {
			log.Fatalf("Invalid log level: %v", err)
		}
	}

	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.HolidayRegion != "" && !holidays.IsKnownRegion(cfg.HolidayRegion) {
		log.Warnf("Unknown holiday region %q, only nationwide holidays will be loaded", cfg.HolidayRegion)
	}

	// Initialize store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, logrus.NewEntry(log))
	handler.Region = cfg.HolidayRegion

	router := api.NewRouter(handler, cfg.AllowedOrigins...)

	scheduler := api.NewMonthCloseScheduler(store, logrus.NewEntry(log))
	scheduler.Enabled = cfg.CloseEnabled
	scheduler.CheckInterval = cfg.CloseInterval
	scheduler.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "db": cfg.DBPath}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped")
}
