package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mroobert/movies-api/internal/config"
	"github.com/mroobert/movies-api/internal/data"
	"github.com/mroobert/movies-api/internal/database"
	"github.com/mroobert/movies-api/internal/logging"
	"github.com/mroobert/movies-api/internal/metrics"
	"github.com/rs/zerolog"
)

// version contains the application version number.
const version = "1.0.0"

// application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type application struct {
	config       *config.Config
	logger       zerolog.Logger
	repositories data.Repositories
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger takes its settings from the config, so a config
		// failure is reported through a fallback logger. Fatal needs an
		// addressable Logger, so it cannot chain off the constructor.
		fallback := logging.New("info", "json", os.Stderr)
		fallback.Fatal().Err(err).Msg("loading configuration")
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}

// run performs the startup and shutdown sequence.
func run(cfg *config.Config, logger zerolog.Logger) error {
	db, err := database.OpenConnection(context.Background(), database.Config{
		DSN:             cfg.DB.DSN(),
		MaxConns:        cfg.DB.MaxConns,
		MaxConnIdleTime: cfg.DB.MaxConnIdleTime,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	logger.Info().
		Str("host", cfg.DB.Host).
		Str("database", cfg.DB.Name).
		Msg("database connection pool established")

	metrics.RegisterPoolStats(db)

	app := &application{
		config:       cfg,
		logger:       logger,
		repositories: data.NewRepositories(db),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      app.routes(),
		ErrorLog:     log.New(logger, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start the HTTP server.
	logger.Info().
		Str("addr", srv.Addr).
		Str("env", cfg.Env).
		Msg("starting server")

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("running %s server on %s: %w", cfg.Env, srv.Addr, err)
	}

	return nil
}
