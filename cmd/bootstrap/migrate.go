package bootstrap

import (
	"context"
	"log/slog"

	"gear-ledger/internal/infra/migrations"
	"gear-ledger/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var MigrateModule = fx.Module("migrate",
	fx.Invoke(autoMigrate),
)

func autoMigrate(lc fx.Lifecycle, cfg config.DBConfig, pool *pgxpool.Pool, logger *slog.Logger) {
	if !cfg.AutoMigrate {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("applying database migrations")
			return migrations.Up(ctx, pool)
		},
	})
}
