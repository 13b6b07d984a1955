package bootstrap

import (
	"context"
	"log/slog"

	"gear-ledger/internal/infra/outbox"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/config"
	"gear-ledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		fx.Annotate(
			outbox.NewLogSender,
			fx.As(new(outbox.Sender)),
		),
		NewRelay,
	),
	fx.Invoke(func(*outbox.Relay) {}),
)

// NewRelay ties the relay loop to the application lifecycle. A disabled relay
// is still constructed so the CLI can drain the outbox on demand.
func NewRelay(lc fx.Lifecycle, cfg config.OutboxConfig, uow shared.UnitOfWork, sender outbox.Sender, clk clock.Clock, logger *slog.Logger) *outbox.Relay {
	relay := outbox.NewRelay(uow, sender, clk, cfg)
	if !cfg.Enabled {
		logger.Info("outbox relay disabled")
		return relay
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("outbox relay started", "poll_interval", cfg.PollInterval, "batch_size", cfg.BatchSize)
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
	return relay
}
