package repository

import (
	"context"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"
	"gear-ledger/internal/pkg/errs"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const assetsTable = "assets"

var assetColumns = []any{
	"id", "name", "category", "serial_number", "asset_tag", "value_cents",
	"status", "created_by", "last_modified_by", "created_at", "updated_at",
}

type assetRow struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	SerialNumber   *string   `db:"serial_number"`
	AssetTag       *string   `db:"asset_tag"`
	ValueCents     *int64    `db:"value_cents"`
	Status         string    `db:"status"`
	CreatedBy      uuid.UUID `db:"created_by"`
	LastModifiedBy uuid.UUID `db:"last_modified_by"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r assetRow) toDomain() *asset.Asset {
	return asset.Reconstruct(
		r.ID,
		r.Name, r.Category,
		r.SerialNumber, r.AssetTag,
		r.ValueCents,
		asset.Status(r.Status),
		r.CreatedBy, r.LastModifiedBy,
		r.CreatedAt, r.UpdatedAt,
	)
}

type AssetRepository struct{}

func NewAssetRepository() *AssetRepository {
	return &AssetRepository{}
}

func selectAssetByID(id uuid.UUID) *goqu.SelectDataset {
	return db.From(assetsTable).Select(assetColumns...).Where(goqu.C("id").Eq(id))
}

func (r *AssetRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*asset.Asset, error) {
	row, err := collectOne[assetRow](ctx, tx, selectAssetByID(id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find asset", err)
	}
	return row.toDomain(), nil
}

func (r *AssetRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*asset.Asset, error) {
	row, err := collectOne[assetRow](ctx, tx, selectAssetByID(id).ForUpdate(exp.Wait))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock asset", err)
	}
	return row.toDomain(), nil
}

func (r *AssetRepository) FindByIDs(ctx context.Context, tx db.DBTX, ids []uuid.UUID) ([]*asset.Asset, error) {
	if len(ids) == 0 {
		return []*asset.Asset{}, nil
	}
	ds := db.From(assetsTable).
		Select(assetColumns...).
		Where(goqu.C("id").In(ids)).
		Order(goqu.C("name").Asc(), goqu.C("id").Asc())

	rows, err := collectAll[assetRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list assets", err)
	}
	assets := make([]*asset.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, row.toDomain())
	}
	return assets, nil
}

type assetStatusRow struct {
	ID     uuid.UUID `db:"id"`
	Status string    `db:"status"`
}

func (r *AssetRepository) Statuses(ctx context.Context, tx db.DBTX, ids []uuid.UUID) (map[uuid.UUID]asset.Status, error) {
	statuses := make(map[uuid.UUID]asset.Status, len(ids))
	if len(ids) == 0 {
		return statuses, nil
	}
	ds := db.From(assetsTable).Select("id", "status").Where(goqu.C("id").In(ids))

	rows, err := collectAll[assetStatusRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load asset statuses", err)
	}
	for _, row := range rows {
		statuses[row.ID] = asset.Status(row.Status)
	}
	return statuses, nil
}

func insertAsset(a *asset.Asset) *goqu.InsertDataset {
	return db.Insert(assetsTable).Rows(goqu.Record{
		"id":               a.ID(),
		"name":             a.Name(),
		"category":         a.Category(),
		"serial_number":    a.SerialNumber(),
		"asset_tag":        a.AssetTag(),
		"value_cents":      a.ValueCents(),
		"status":           a.Status().String(),
		"created_by":       a.CreatedBy(),
		"last_modified_by": a.LastModifiedBy(),
		"created_at":       a.CreatedAt(),
		"updated_at":       a.UpdatedAt(),
	})
}

func (r *AssetRepository) Create(ctx context.Context, tx db.DBTX, a *asset.Asset) error {
	if _, err := execute(ctx, tx, insertAsset(a)); err != nil {
		return infra.WrapRepoErr("failed to create asset", err)
	}
	return nil
}

// updateAssetStatus is a compare-and-set on the status column.
func updateAssetStatus(a *asset.Asset, expected asset.Status) *goqu.UpdateDataset {
	return db.Update(assetsTable).
		Set(goqu.Record{
			"status":           a.Status().String(),
			"last_modified_by": a.LastModifiedBy(),
			"updated_at":       a.UpdatedAt(),
		}).
		Where(
			goqu.C("id").Eq(a.ID()),
			goqu.C("status").Eq(expected.String()),
		)
}

func (r *AssetRepository) UpdateStatus(ctx context.Context, tx db.DBTX, a *asset.Asset, expected asset.Status) error {
	tag, err := execute(ctx, tx, updateAssetStatus(a, expected))
	if err != nil {
		return infra.WrapRepoErr("failed to update asset status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("asset status changed concurrently",
			errs.Newf("asset %s is no longer %s", a.ID(), expected), infra.KindConflict)
	}
	return nil
}
