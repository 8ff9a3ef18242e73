/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Plannitech planning and compliance server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load environment configuration, then command-line flags
  2. Optionally load a labor rule set from JSON
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PLANNITECH_SERVER_PORT)
  -db      SQLite database path (overrides PLANNITECH_DATABASE_PATH)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/plannitech.db"

  # Run with in-memory database on another port
  ./server -db=":memory:" -port=3000

  # Run with a custom rule set
  PLANNITECH_LABOR_RULES_FILE=rules.json ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment variables
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucascenseur/plannitech/api"
	"github.com/lucascenseur/plannitech/config"
	"github.com/lucascenseur/plannitech/factory"
	"github.com/lucascenseur/plannitech/labor"
	"github.com/lucascenseur/plannitech/planning"
	"github.com/lucascenseur/plannitech/store/sqlite"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Flags override the environment for local runs.
	port := flag.String("port", cfg.Server.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.Database.Path, "SQLite database path")
	flag.Parse()

	rules, calendar, err := loadRules(cfg.Labor.RulesFile)
	if err != nil {
		slog.Error("failed to load labor rules", "file", cfg.Labor.RulesFile, "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		slog.Error("failed to initialize database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	calc := labor.NewCalculator(rules, calendar)
	svc := planning.NewService(store)
	handler := api.NewHandler(store, svc, calc, calendar)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", server.Addr, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// loadRules returns the built-in French rules unless a JSON rule-set file
// is configured.
func loadRules(path string) (labor.RuleSet, labor.HolidayCalendar, error) {
	if path == "" {
		return labor.FrenchRules(), labor.FrenchCalendar{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return labor.RuleSet{}, nil, err
	}
	return factory.NewRuleFactory().ParseRuleSet(string(data))
}
