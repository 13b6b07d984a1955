package repository

import (
	"context"

	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type clientRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	ContactEmail *string   `db:"contact_email"`
}

type ClientRepository struct{}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

func (r *ClientRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.ClientSnapshot, error) {
	ds := db.From("clients").
		Select("id", "name", "contact_email").
		Where(goqu.C("id").Eq(id))

	row, err := collectOne[clientRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find client", err)
	}
	return &shared.ClientSnapshot{
		ID:           row.ID,
		Name:         row.Name,
		ContactEmail: row.ContactEmail,
	}, nil
}
