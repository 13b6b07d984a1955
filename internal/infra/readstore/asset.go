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

type assetViewRow struct {
	ID                  uuid.UUID  `db:"id"`
	Name                string     `db:"name"`
	Category            string     `db:"category"`
	SerialNumber        *string    `db:"serial_number"`
	AssetTag            *string    `db:"asset_tag"`
	ValueCents          *int64     `db:"value_cents"`
	Status              string     `db:"status"`
	CreatedBy           uuid.UUID  `db:"created_by"`
	LastModifiedBy      uuid.UUID  `db:"last_modified_by"`
	ActiveTransactionID *uuid.UUID `db:"active_transaction_id"`
	HolderID            *uuid.UUID `db:"holder_id"`
	HolderName          *string    `db:"holder_name"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
}

type AssetReadStore struct {
	db db.DBTX
}

func NewAssetReadStore(db db.DBTX) *AssetReadStore {
	return &AssetReadStore{db: db}
}

// selectAssetView joins the asset with its open checkout and the holder, if any.
func selectAssetView(id uuid.UUID) *goqu.SelectDataset {
	return db.From(goqu.T("assets").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.name").As("name"),
			goqu.I("a.category").As("category"),
			goqu.I("a.serial_number").As("serial_number"),
			goqu.I("a.asset_tag").As("asset_tag"),
			goqu.I("a.value_cents").As("value_cents"),
			goqu.I("a.status").As("status"),
			goqu.I("a.created_by").As("created_by"),
			goqu.I("a.last_modified_by").As("last_modified_by"),
			goqu.I("t.id").As("active_transaction_id"),
			goqu.I("t.user_id").As("holder_id"),
			goqu.I("u.name").As("holder_name"),
			goqu.I("a.created_at").As("created_at"),
			goqu.I("a.updated_at").As("updated_at"),
		).
		LeftJoin(goqu.T("transactions").As("t"), goqu.On(
			goqu.I("t.asset_id").Eq(goqu.I("a.id")),
			goqu.I("t.type").Eq(ledger.TypeCheckOut.String()),
			goqu.I("t.status").Eq(ledger.StatusActive.String()),
		)).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("t.user_id")))).
		Where(goqu.I("a.id").Eq(id)).
		Limit(1)
}

func (s *AssetReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AssetView, error) {
	query, args, err := selectAssetView(id).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build asset query", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find asset by ID", err)
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[assetViewRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("asset not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find asset by ID", err)
	}

	view := &queries.AssetView{}
	if err := copier.Copy(view, &row); err != nil {
		return nil, infra.WrapRepoErr("failed to map asset view", err)
	}
	return view, nil
}
