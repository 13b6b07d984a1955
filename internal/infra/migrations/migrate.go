package migrations

import (
	"context"
	"embed"
	"log/slog"

	"gear-ledger/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

func setup() error {
	goose.SetBaseFS(files)
	return goose.SetDialect("postgres")
}

// Up applies every pending migration.
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	if err := setup(); err != nil {
		return errs.Wrap(err, "failed to configure migrations")
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return errs.Wrap(err, "failed to apply migrations")
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return errs.Wrap(err, "failed to read schema version")
	}
	slog.Info("database migrated", "version", version)
	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, pool *pgxpool.Pool) error {
	if err := setup(); err != nil {
		return errs.Wrap(err, "failed to configure migrations")
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
		return errs.Wrap(err, "failed to roll back migration")
	}
	return nil
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, pool *pgxpool.Pool) error {
	if err := setup(); err != nil {
		return errs.Wrap(err, "failed to configure migrations")
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	return goose.StatusContext(ctx, sqlDB, dir)
}
