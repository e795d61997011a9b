package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationResult reports the schema version before and after a migration
// run. FromVersion equals ToVersion when nothing was pending.
type MigrationResult struct {
	FromVersion int64
	ToVersion   int64
}

func (r MigrationResult) Applied() bool {
	return r.ToVersion != r.FromVersion
}

// Migrate brings the products, transactions and outbox_messages schema up to
// the latest migration embedded in the binary.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (MigrationResult, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return MigrationResult{}, fmt.Errorf("set goose dialect: %w", err)
	}

	from, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("get schema version: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return MigrationResult{FromVersion: from}, fmt.Errorf("goose up from version %d: %w", from, err)
	}

	to, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return MigrationResult{FromVersion: from}, fmt.Errorf("get schema version: %w", err)
	}

	return MigrationResult{FromVersion: from, ToVersion: to}, nil
}
