package readstore

import (
	"context"
	"time"

	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/pkg/pgconv"
	"gear-ledger/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jinzhu/copier"
)

type transactionViewRow struct {
	ID                 uuid.UUID  `db:"id"`
	AssetID            uuid.UUID  `db:"asset_id"`
	AssetName          string     `db:"asset_name"`
	UserID             *uuid.UUID `db:"user_id"`
	UserName           *string    `db:"user_name"`
	UserEmail          *string    `db:"user_email"`
	Type               string     `db:"type"`
	Status             string     `db:"status"`
	CheckoutAt         time.Time  `db:"checkout_at"`
	ExpectedReturnDate *time.Time `db:"expected_return_date"`
	ActualReturnDate   *time.Time `db:"actual_return_date"`
	Notes              string     `db:"notes"`
	CreatedBy          uuid.UUID  `db:"created_by"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

type TransactionReadStore struct {
	db db.DBTX
}

func NewTransactionReadStore(db db.DBTX) *TransactionReadStore {
	return &TransactionReadStore{db: db}
}

func transactionViews() *goqu.SelectDataset {
	return db.From(goqu.T("transactions").As("t")).
		Select(
			goqu.I("t.id").As("id"),
			goqu.I("t.asset_id").As("asset_id"),
			goqu.I("a.name").As("asset_name"),
			goqu.I("t.user_id").As("user_id"),
			goqu.I("u.name").As("user_name"),
			goqu.I("u.email").As("user_email"),
			goqu.I("t.type").As("type"),
			goqu.I("t.status").As("status"),
			goqu.I("t.checkout_date").As("checkout_at"),
			goqu.I("t.expected_return_date").As("expected_return_date"),
			goqu.I("t.actual_return_date").As("actual_return_date"),
			goqu.I("t.notes").As("notes"),
			goqu.I("t.created_by").As("created_by"),
			goqu.I("t.created_at").As("created_at"),
			goqu.I("t.updated_at").As("updated_at"),
		).
		InnerJoin(goqu.T("assets").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("t.asset_id")))).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("t.user_id"))))
}

// selectHistoryPage pages newest first on (checkout_date, id).
func selectHistoryPage(assetID uuid.UUID, after *queries.Cursor, limit int) *goqu.SelectDataset {
	ds := transactionViews().Where(goqu.I("t.asset_id").Eq(assetID))
	if after != nil {
		ds = ds.Where(goqu.L("(t.checkout_date, t.id) < (?, ?)", after.At, after.ID))
	}
	return ds.
		Order(goqu.I("t.checkout_date").Desc(), goqu.I("t.id").Desc()).
		Limit(uint(limit))
}

func selectActiveByUser(userID uuid.UUID) *goqu.SelectDataset {
	return transactionViews().
		Where(
			goqu.I("t.user_id").Eq(userID),
			goqu.I("t.type").Eq(ledger.TypeCheckOut.String()),
			goqu.I("t.status").Eq(ledger.StatusActive.String()),
		).
		Order(goqu.I("t.checkout_date").Desc(), goqu.I("t.id").Desc())
}

func (s *TransactionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TransactionView, error) {
	views, err := s.list(ctx, transactionViews().Where(goqu.I("t.id").Eq(id)).Limit(1))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find transaction by ID", err)
	}
	if len(views) == 0 {
		return nil, infra.WrapRepoErr("transaction not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return views[0], nil
}

func (s *TransactionReadStore) ListByAsset(ctx context.Context, assetID uuid.UUID, after *queries.Cursor, limit int) ([]*queries.TransactionView, error) {
	views, err := s.list(ctx, selectHistoryPage(assetID, after, limit))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list asset history", err)
	}
	return views, nil
}

func (s *TransactionReadStore) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*queries.TransactionView, error) {
	views, err := s.list(ctx, selectActiveByUser(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active checkouts", err)
	}
	return views, nil
}

func (s *TransactionReadStore) list(ctx context.Context, ds *goqu.SelectDataset) ([]*queries.TransactionView, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[transactionViewRow])
	if err != nil && !pgconv.IsNoRows(err) {
		return nil, err
	}

	views := make([]*queries.TransactionView, 0, len(collected))
	if err := copier.Copy(&views, &collected); err != nil {
		return nil, err
	}
	return views, nil
}
