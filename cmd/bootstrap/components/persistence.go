package components

import (
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/infra/outbox"
	"gear-ledger/internal/infra/readstore"
	"gear-ledger/internal/infra/uow"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/queries"
	"gear-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Asset
		fx.Annotate(
			readstore.NewAssetReadStore,
			fx.As(new(queries.AssetReadStore)),
		),
		// Transaction
		fx.Annotate(
			readstore.NewTransactionReadStore,
			fx.As(new(queries.TransactionReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.DefaultRepositories,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Notification outbox
		fx.Annotate(
			outbox.NewPublisher,
			fx.As(new(commands.BatchNotifier)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
