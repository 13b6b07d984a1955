package repository

import (
	"context"
	"time"

	"gear-ledger/internal/domain/user"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const usersTable = "users"

type userRow struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r userRow) toDomain() (*user.User, error) {
	email, err := user.NewEmail(r.Email)
	if err != nil {
		return nil, err
	}
	return user.Reconstruct(r.ID, email, r.Name, user.Role(r.Role), r.IsActive, r.CreatedAt, r.UpdatedAt), nil
}

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error) {
	ds := db.From(usersTable).
		Select("id", "email", "name", "role", "is_active", "created_at", "updated_at").
		Where(goqu.C("id").Eq(id))

	row, err := collectOne[userRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	u, err := row.toDomain()
	if err != nil {
		return nil, infra.WrapRepoErr("stored user is malformed", err)
	}
	return u, nil
}

// Create is used by seeding and the CLI; the API never registers users.
func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	ds := db.Insert(usersTable).Rows(goqu.Record{
		"id":         u.ID(),
		"email":      u.Email().Value(),
		"name":       u.Name(),
		"role":       u.Role().String(),
		"is_active":  u.IsActive(),
		"created_at": u.CreatedAt(),
		"updated_at": u.UpdatedAt(),
	})
	if _, err := execute(ctx, tx, ds); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}
