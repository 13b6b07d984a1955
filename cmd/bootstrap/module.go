package bootstrap

import (
	"gear-ledger/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MigrateModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	OutboxModule,
	components.HandlerModule,
)
