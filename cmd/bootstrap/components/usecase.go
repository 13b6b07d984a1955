package components

import (
	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/config"
	"gear-ledger/internal/usecase"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"
	"gear-ledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	asset.NewStateMachine,
	func(cfg config.EngineConfig) *preset.Matcher {
		return preset.NewMatcher(preset.Policy{
			OverallThreshold:  cfg.MatchOverallThreshold,
			RequiredThreshold: cfg.MatchRequiredThreshold,
		})
	},
	func(cfg config.EngineConfig) commands.BatchLimits {
		return commands.BatchLimits{MaxItems: cfg.BatchMaxItems}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTransactionUseCase,
		commands.NewTransferUseCase,
		commands.NewAssetUseCase,
		commands.NewPresetUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAssetQueries,
		queries.NewPresetQueries,
		func(store queries.TransactionReadStore, uow shared.UnitOfWork, sm asset.StateMachine, cfg config.EngineConfig) queries.TransactionQueries {
			return queries.NewTransactionQueries(store, uow, sm, cfg.BatchMaxItems)
		},
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
