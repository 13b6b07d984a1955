package bootstrap

import (
	"log/slog"

	"gear-ledger/internal/handler/middleware"
	"gear-ledger/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger builds the process logger and installs it as the slog default so
// packages logging through slog share the same handler.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := middleware.NewLogger(cfg).GetSlogLogger()
	slog.SetDefault(logger)
	return logger
}
