package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuanvumaihuynh/chicken-vending/internal/config"
	"github.com/tuanvumaihuynh/chicken-vending/internal/log"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error migrating chicken vending schema: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	start := time.Now()
	res, err := db.Migrate(ctx, pgxPool)
	if err != nil {
		logger.ErrorContext(ctx, "schema migration failed", slog.Int64("from_version", res.FromVersion))
		return fmt.Errorf("error migrating database: %w", err)
	}

	if !res.Applied() {
		logger.InfoContext(ctx, "schema already up to date", slog.Int64("version", res.ToVersion))
		return nil
	}

	logger.InfoContext(ctx, "schema migrated",
		slog.Int64("from_version", res.FromVersion),
		slog.Int64("to_version", res.ToVersion),
		slog.Duration("took", time.Since(start)),
	)

	return nil
}
