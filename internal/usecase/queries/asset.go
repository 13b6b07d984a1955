package queries

import (
	"context"

	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAssetNotFound = errs.Mark(errs.New("asset not found"), errs.ErrNotFound)

type AssetQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AssetView, error)
	// History lists the asset's ledger, newest first.
	History(ctx context.Context, assetID uuid.UUID, after string, limit int) ([]*TransactionView, string, error)
}

type AssetReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AssetView, error)
}

type assetQueriesImpl struct {
	assets       AssetReadStore
	transactions TransactionReadStore
}

func NewAssetQueries(assets AssetReadStore, transactions TransactionReadStore) AssetQueries {
	return &assetQueriesImpl{assets: assets, transactions: transactions}
}

func (q *assetQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AssetView, error) {
	view, err := q.assets.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *assetQueriesImpl) History(ctx context.Context, assetID uuid.UUID, after string, limit int) ([]*TransactionView, string, error) {
	cursor, err := DecodeCursor(after)
	if err != nil {
		return nil, "", err
	}
	if _, err := q.GetByID(ctx, assetID); err != nil {
		return nil, "", err
	}

	limit = ValidateLimit(limit)
	// one extra row tells whether another page exists
	rows, err := q.transactions.ListByAsset(ctx, assetID, cursor, limit+1)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = EncodeCursor(Cursor{At: last.CheckoutAt, ID: last.ID})
	}
	return rows, next, nil
}
