package repository

import (
	"context"
	"time"

	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/pkg/errs"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const transactionsTable = "transactions"

var transactionColumns = []any{
	"id", "asset_id", "user_id", "type", "status", "checkout_date",
	"expected_return_date", "actual_return_date", "notes", "created_by",
	"created_at", "updated_at",
}

type transactionRow struct {
	ID                 uuid.UUID  `db:"id"`
	AssetID            uuid.UUID  `db:"asset_id"`
	UserID             *uuid.UUID `db:"user_id"`
	Type               string     `db:"type"`
	Status             string     `db:"status"`
	CheckoutDate       time.Time  `db:"checkout_date"`
	ExpectedReturnDate *time.Time `db:"expected_return_date"`
	ActualReturnDate   *time.Time `db:"actual_return_date"`
	Notes              string     `db:"notes"`
	CreatedBy          uuid.UUID  `db:"created_by"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

func (r transactionRow) toDomain() *ledger.Transaction {
	return ledger.Reconstruct(
		r.ID, r.AssetID,
		r.UserID,
		ledger.Type(r.Type),
		ledger.Status(r.Status),
		r.CheckoutDate,
		r.ExpectedReturnDate, r.ActualReturnDate,
		r.Notes,
		r.CreatedBy,
		r.CreatedAt, r.UpdatedAt,
	)
}

func activeCheckout() exp.Ex {
	return goqu.Ex{
		"type":   ledger.TypeCheckOut.String(),
		"status": ledger.StatusActive.String(),
	}
}

type TransactionRepository struct{}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

func (r *TransactionRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*ledger.Transaction, error) {
	ds := db.From(transactionsTable).Select(transactionColumns...).Where(goqu.C("id").Eq(id))
	row, err := collectOne[transactionRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find transaction", err)
	}
	return row.toDomain(), nil
}

func selectActiveCheckoutForAsset(assetID uuid.UUID) *goqu.SelectDataset {
	return db.From(transactionsTable).
		Select(transactionColumns...).
		Where(goqu.C("asset_id").Eq(assetID), activeCheckout()).
		Order(goqu.C("checkout_date").Desc()).
		Limit(1)
}

func (r *TransactionRepository) FindActiveCheckoutForAsset(ctx context.Context, tx db.DBTX, assetID uuid.UUID) (*ledger.Transaction, error) {
	row, err := collectOne[transactionRow](ctx, tx, selectActiveCheckoutForAsset(assetID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active checkout", err)
	}
	return row.toDomain(), nil
}

type assetIDRow struct {
	AssetID uuid.UUID `db:"asset_id"`
}

func (r *TransactionRepository) ActiveCheckoutAssetIDs(ctx context.Context, tx db.DBTX, assetIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	active := make(map[uuid.UUID]bool, len(assetIDs))
	if len(assetIDs) == 0 {
		return active, nil
	}
	ds := db.From(transactionsTable).
		Select("asset_id").
		Distinct().
		Where(goqu.C("asset_id").In(assetIDs), activeCheckout())

	rows, err := collectAll[assetIDRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active checkouts", err)
	}
	for _, row := range rows {
		active[row.AssetID] = true
	}
	return active, nil
}

func selectActiveCheckoutsByUserForUpdate(userID uuid.UUID) *goqu.SelectDataset {
	return db.From(transactionsTable).
		Select(transactionColumns...).
		Where(goqu.C("user_id").Eq(userID), activeCheckout()).
		Order(goqu.C("checkout_date").Asc(), goqu.C("id").Asc()).
		ForUpdate(exp.Wait)
}

func (r *TransactionRepository) FindActiveCheckoutsByUserForUpdate(ctx context.Context, tx db.DBTX, userID uuid.UUID) ([]*ledger.Transaction, error) {
	rows, err := collectAll[transactionRow](ctx, tx, selectActiveCheckoutsByUserForUpdate(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock active checkouts", err)
	}
	out := make([]*ledger.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx db.DBTX, t *ledger.Transaction) error {
	ds := db.Insert(transactionsTable).Rows(goqu.Record{
		"id":                   t.ID(),
		"asset_id":             t.AssetID(),
		"user_id":              t.UserID(),
		"type":                 t.Type().String(),
		"status":               t.Status().String(),
		"checkout_date":        t.CheckoutAt(),
		"expected_return_date": t.ExpectedReturnDate(),
		"actual_return_date":   t.ActualReturnDate(),
		"notes":                t.Notes(),
		"created_by":           t.CreatedBy(),
		"created_at":           t.CreatedAt(),
		"updated_at":           t.UpdatedAt(),
	})
	if _, err := execute(ctx, tx, ds); err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	return nil
}

func completeTransaction(t *ledger.Transaction) *goqu.UpdateDataset {
	return db.Update(transactionsTable).
		Set(goqu.Record{
			"status":             t.Status().String(),
			"actual_return_date": t.ActualReturnDate(),
			"notes":              t.Notes(),
			"updated_at":         t.UpdatedAt(),
		}).
		Where(
			goqu.C("id").Eq(t.ID()),
			goqu.C("status").Eq(ledger.StatusActive.String()),
		)
}

func (r *TransactionRepository) Complete(ctx context.Context, tx db.DBTX, t *ledger.Transaction) error {
	tag, err := execute(ctx, tx, completeTransaction(t))
	if err != nil {
		return infra.WrapRepoErr("failed to complete transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("transaction closed concurrently",
			errs.Newf("transaction %s is no longer active", t.ID()), infra.KindConflict)
	}
	return nil
}

func reassignTransaction(t *ledger.Transaction, from uuid.UUID) *goqu.UpdateDataset {
	return db.Update(transactionsTable).
		Set(goqu.Record{
			"user_id":    t.UserID(),
			"notes":      t.Notes(),
			"updated_at": t.UpdatedAt(),
		}).
		Where(
			goqu.C("id").Eq(t.ID()),
			goqu.C("user_id").Eq(from),
			goqu.C("status").Eq(ledger.StatusActive.String()),
		)
}

func (r *TransactionRepository) Reassign(ctx context.Context, tx db.DBTX, t *ledger.Transaction, from uuid.UUID) error {
	tag, err := execute(ctx, tx, reassignTransaction(t, from))
	if err != nil {
		return infra.WrapRepoErr("failed to reassign transaction", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("transaction custody changed concurrently",
			errs.Newf("transaction %s no longer held by %s", t.ID(), from), infra.KindConflict)
	}
	return nil
}
