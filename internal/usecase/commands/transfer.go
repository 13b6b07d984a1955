package commands

import (
	"context"

	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrTransferForbidden   = errs.Mark(errs.New("only admins may transfer custody"), errs.ErrForbidden)
	ErrTransferToSelf      = errs.Mark(errs.New("source and target user must differ"), errs.ErrValidation)
	ErrSourceUserNotFound  = errs.Mark(errs.New("source user not found"), errs.ErrNotFound)
	ErrTargetUserNotFound  = errs.Mark(errs.New("target user not found"), errs.ErrNotFound)
	ErrTargetUserInactive  = errs.Mark(errs.New("target user is inactive"), errs.ErrValidation)
	ErrNothingToTransfer   = errs.Mark(errs.New("user has no active checkouts to transfer"), errs.ErrNotFound)
	ErrTransferInterrupted = errs.Mark(errs.New("a checkout changed during transfer, nothing was moved"), errs.ErrConflictingState)
)

type TransferredAsset struct {
	TransactionID uuid.UUID
	AssetID       uuid.UUID
	AssetName     string
}

type TransferResult struct {
	TransferredCount  int
	TransferredAssets []TransferredAsset
}

type TransferCommands interface {
	TransferCheckouts(ctx context.Context, fromUserID, toUserID uuid.UUID, actor shared.Actor) (*TransferResult, error)
}

type transferUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTransferUseCase(uow shared.UnitOfWork, clk clock.Clock) TransferCommands {
	return &transferUseCaseImpl{uow: uow, clock: clk}
}

// TransferCheckouts moves every ACTIVE checkout of fromUserID to toUserID in a
// single unit of work. Either all of them move or none do.
func (uc *transferUseCaseImpl) TransferCheckouts(ctx context.Context, fromUserID, toUserID uuid.UUID, actor shared.Actor) (*TransferResult, error) {
	if !actor.Role.CanTransferCustody() {
		return nil, ErrTransferForbidden
	}
	if fromUserID == toUserID {
		return nil, ErrTransferToSelf
	}

	var result *TransferResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		from, err := tx.Users().FindByID(ctx, tx.DB(), fromUserID)
		if err != nil {
			return mapUserLookupErr(err, ErrSourceUserNotFound)
		}
		to, err := tx.Users().FindByID(ctx, tx.DB(), toUserID)
		if err != nil {
			return mapUserLookupErr(err, ErrTargetUserNotFound)
		}
		if !to.IsActive() {
			return ErrTargetUserInactive
		}

		active, err := tx.Transactions().FindActiveCheckoutsByUserForUpdate(ctx, tx.DB(), fromUserID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if len(active) == 0 {
			return ErrNothingToTransfer
		}

		names, err := uc.assetNames(ctx, tx, active)
		if err != nil {
			return err
		}

		res := &TransferResult{TransferredAssets: make([]TransferredAsset, 0, len(active))}
		for _, t := range active {
			if err := t.Reassign(to.ID(), from.Label(), now); err != nil {
				return errs.Mark(err, ErrTransferInterrupted)
			}
			if err := tx.Transactions().Reassign(ctx, tx.DB(), t, fromUserID); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return ErrTransferInterrupted
				}
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			res.TransferredAssets = append(res.TransferredAssets, TransferredAsset{
				TransactionID: t.ID(),
				AssetID:       t.AssetID(),
				AssetName:     names[t.AssetID()],
			})
		}
		res.TransferredCount = len(res.TransferredAssets)
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *transferUseCaseImpl) assetNames(ctx context.Context, tx shared.Tx, active []*ledger.Transaction) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(active))
	for _, t := range active {
		ids = append(ids, t.AssetID())
	}
	assets, err := tx.Assets().FindByIDs(ctx, tx.DB(), ids)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	names := make(map[uuid.UUID]string, len(assets))
	for _, a := range assets {
		names[a.ID()] = a.Name()
	}
	return names, nil
}

func mapUserLookupErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
