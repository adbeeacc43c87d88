// @title			All About Cats API
// @version		1.0
// @description	Page state for the All About Cats page: breed ratings, active tab and fun facts.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/catpage/internal/config"
	"github.com/mtlprog/catpage/internal/database"
	"github.com/mtlprog/catpage/internal/handler"
	"github.com/mtlprog/catpage/internal/logger"
	"github.com/mtlprog/catpage/internal/repository"
	"github.com/mtlprog/catpage/internal/service"
	"github.com/mtlprog/catpage/internal/tracing"
)

func main() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "catpage",
		Usage: "All About Cats web page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   string(logger.FormatJSON),
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL; page state is kept in memory when empty",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "HTTP server port",
				EnvVars: []string{"PORT"},
			},
			&cli.DurationFlag{
				Name:    "session-ttl",
				Value:   config.DefaultSessionTTL,
				Usage:   "How long an idle visitor's page stays cached in memory",
				EnvVars: []string{"SESSION_TTL"},
			},
			&cli.BoolFlag{
				Name:    "secure-cookies",
				Usage:   "Mark the session cookie Secure (serve behind HTTPS)",
				EnvVars: []string{"SECURE_COOKIES"},
			},
			&cli.StringSliceFlag{
				Name:    "allowed-origins",
				Usage:   "Origins allowed to call the JSON API (default: any)",
				EnvVars: []string{"ALLOWED_ORIGINS"},
			},
			&cli.StringFlag{
				Name:    "otlp-endpoint",
				Usage:   "OTLP/HTTP trace collector host:port; tracing is off when empty",
				EnvVars: []string{"OTEL_EXPORTER_OTLP_ENDPOINT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")), logger.ParseFormat(c.String("log-format")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Action: runServe,
			},
			{
				Name:  "migrate",
				Usage: "Apply, roll back or inspect database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "down",
						Usage: "Roll back the most recent migration",
					},
					&cli.BoolFlag{
						Name:  "status",
						Usage: "Print migration status without applying anything",
					},
				},
				Action: runMigrate,
			},
			{
				Name:   "reset-ratings",
				Usage:  "Reset every stored breed rating to zero",
				Action: runResetRatings,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// openStore returns the Postgres store when a database URL is set and the
// in-memory store otherwise. The returned cleanup is always non-nil.
func openStore(ctx context.Context, databaseURL string) (service.StateStore, func(), error) {
	if databaseURL == "" {
		slog.Warn("no database configured, page state will not survive restarts")
		return repository.NewMemoryStore(), func() {}, nil
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repository.NewPostgresStore(db.Pool()), db.Close, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	shutdownTracing, err := tracing.Setup(ctx, c.String("otlp-endpoint"), config.DefaultServiceName)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("failed to flush traces", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, c.String("database-url"))
	if err != nil {
		return err
	}
	defer closeStore()

	ttl := c.Duration("session-ttl")
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	pageService := service.NewPageService(store, ttl)

	evictCtx, stopEviction := context.WithCancel(ctx)
	defer stopEviction()
	go pageService.RunEviction(evictCtx, ttl/2)

	h := handler.New(pageService, handler.Options{
		SecureCookies:  c.Bool("secure-cookies"),
		AllowedOrigins: c.StringSlice("allowed-origins"),
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           h.Router(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return fmt.Errorf("migrate requires --database-url")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	switch {
	case c.Bool("status"):
		return database.MigrationStatus(ctx, db.Pool())
	case c.Bool("down"):
		return database.RollbackMigration(ctx, db.Pool())
	default:
		return database.RunMigrations(ctx, db.Pool())
	}
}

func runResetRatings(c *cli.Context) error {
	ctx := c.Context

	// A memory store here would be a fresh, empty one owned by this process.
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return fmt.Errorf("reset-ratings requires --database-url")
	}

	store, closeStore, err := openStore(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer closeStore()

	n, err := service.NewPageService(store, config.DefaultSessionTTL).ResetRatings(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "reset ratings for %d sessions\n", n)
	return nil
}
