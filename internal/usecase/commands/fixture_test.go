//go:build unit

package commands_test

import (
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/usecase/commands"
	"gear-ledger/internal/usecase/shared"
	"gear-ledger/tests/common/builder"
	"gear-ledger/tests/common/memstore"

	"github.com/google/uuid"
)

var t0 = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memstore.Store
	clock    *clock.MockClock
	operator shared.Actor
	viewer   shared.Actor
	admin    shared.Actor
}

func newFixture() *fixture {
	f := &fixture{
		store: memstore.New(),
		clock: clock.NewMockClock(t0),
	}
	f.operator = f.putActor("Olive Operator", "olive@example.com", user.RoleOperator)
	f.viewer = f.putActor("Vic Viewer", "vic@example.com", user.RoleViewer)
	f.admin = f.putActor("Ada Admin", "ada@example.com", user.RoleAdmin)
	return f
}

func (f *fixture) putActor(name, email string, role user.Role) shared.Actor {
	u := builder.NewUserBuilder().
		WithName(name).
		WithEmail(email).
		WithRole(role.String()).
		MustBuildDomain()
	f.store.PutUser(u)
	return shared.Actor{ID: u.ID(), Role: role}
}

func (f *fixture) putAsset(status asset.Status) uuid.UUID {
	id := uuid.New()
	f.store.PutAsset(builder.NewAssetBuilder().
		WithID(id).
		WithName("Asset " + id.String()[:8]).
		WithSerial("SN-" + id.String()).
		WithTag("TAG-" + id.String()).
		WithStatus(status).
		BuildDomain())
	return id
}

func (f *fixture) transactions(notifier commands.BatchNotifier, maxItems int) commands.TransactionCommands {
	return commands.NewTransactionUseCase(
		f.store,
		asset.NewStateMachine(),
		f.clock,
		notifier,
		commands.BatchLimits{MaxItems: maxItems},
	)
}

func (f *fixture) statusOf(id uuid.UUID) asset.Status {
	a, ok := f.store.Asset(id)
	if !ok {
		return ""
	}
	return a.Status()
}
