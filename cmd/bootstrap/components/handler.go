package components

import (
	"gear-ledger/internal/handler"
	"gear-ledger/internal/handler/api"
	"gear-ledger/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAssetHandler,
		api.NewTransactionHandler,
		api.NewPresetHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		func(a *api.AssetHandler, t *api.TransactionHandler, p *api.PresetHandler, u *api.UserHandler) handler.Handlers {
			return handler.Handlers{Assets: a, Transactions: t, Presets: p, Users: u}
		},
	),
	fx.Invoke(handler.NewRouter),
)
