package bootstrap

import (
	"context"
	"log/slog"

	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the pool eagerly so a bad DSN fails startup instead of the first request.
func NewDB(lc fx.Lifecycle, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database pool ready", "host", cfg.Host, "database", cfg.DBName, "max_conns", cfg.MaxConns)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("closing database pool", "acquired", stat.AcquiredConns(), "total", stat.TotalConns())
			cleanup()
			return nil
		},
	})
	return pool, nil
}
