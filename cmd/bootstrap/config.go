package bootstrap

import (
	"gear-ledger/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes each section of config.Config on its own, for
// callers that supply config.Config some other way.
var ConfigSections = fx.Provide(splitConfig)

type sections struct {
	fx.Out

	DB     config.DBConfig
	JWT    config.JWTConfig
	Log    config.LogConfig
	Engine config.EngineConfig
	Outbox config.OutboxConfig
}

func splitConfig(cfg config.Config) sections {
	return sections{
		DB:     cfg.DB,
		JWT:    cfg.JWT,
		Log:    cfg.Log,
		Engine: cfg.Engine,
		Outbox: cfg.Outbox,
	}
}
