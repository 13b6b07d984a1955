package queries

import (
	"context"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errs.Mark(errs.New("transaction not found"), errs.ErrNotFound)
	ErrEmptyPreflight      = errs.Mark(errs.New("at least one assetId is required"), errs.ErrValidation)
	ErrPreflightTooLarge   = errs.Mark(errs.New("too many assets in preflight request"), errs.ErrValidation)
)

const unknownAssetReason = "asset not found"

type TransactionQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error)
	// Preflight evaluates action for each asset without changing anything.
	Preflight(ctx context.Context, action asset.Action, assetIDs []uuid.UUID) ([]PreflightResult, error)
}

type TransactionReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransactionView, error)
	ListByAsset(ctx context.Context, assetID uuid.UUID, after *Cursor, limit int) ([]*TransactionView, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error)
}

type transactionQueriesImpl struct {
	store    TransactionReadStore
	uow      shared.UnitOfWork
	sm       asset.StateMachine
	maxItems int
}

func NewTransactionQueries(store TransactionReadStore, uow shared.UnitOfWork, sm asset.StateMachine, maxItems int) TransactionQueries {
	return &transactionQueriesImpl{store: store, uow: uow, sm: sm, maxItems: maxItems}
}

func (q *transactionQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TransactionView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *transactionQueriesImpl) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error) {
	return q.store.ListActiveByUser(ctx, userID)
}

func (q *transactionQueriesImpl) Preflight(ctx context.Context, action asset.Action, assetIDs []uuid.UUID) ([]PreflightResult, error) {
	if !action.IsValid() {
		return nil, errs.Mark(errs.New("action must be CHECK_OUT or CHECK_IN"), errs.ErrValidation)
	}
	if len(assetIDs) == 0 {
		return nil, ErrEmptyPreflight
	}
	if q.maxItems > 0 && len(assetIDs) > q.maxItems {
		return nil, ErrPreflightTooLarge
	}

	var (
		statuses map[uuid.UUID]asset.Status
		active   map[uuid.UUID]bool
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if statuses, err = tx.Assets().Statuses(ctx, tx.DB(), assetIDs); err != nil {
			return err
		}
		active, err = tx.Transactions().ActiveCheckoutAssetIDs(ctx, tx.DB(), assetIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	results := make([]PreflightResult, 0, len(assetIDs))
	for _, id := range assetIDs {
		status, ok := statuses[id]
		if !ok {
			results = append(results, PreflightResult{AssetID: id, Reason: unknownAssetReason})
			continue
		}
		d := q.sm.Decide(status, action, active[id])
		results = append(results, PreflightResult{
			AssetID:       id,
			Allowed:       d.Allowed,
			Reason:        d.Reason,
			CurrentStatus: status.String(),
		})
	}
	return results, nil
}
