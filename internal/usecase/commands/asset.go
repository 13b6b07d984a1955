package commands

import (
	"context"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"
)

var (
	ErrCatalogForbidden = errs.Mark(errs.New("operator role required"), errs.ErrForbidden)
	ErrDuplicateAsset   = errs.Mark(errs.New("an asset with this serial number or tag already exists"), errs.ErrConflictingState)
	ErrInvalidAsset     = errs.Mark(errs.New("invalid asset"), errs.ErrValidation)
)

type AssetCommands interface {
	RegisterAsset(ctx context.Context, params asset.NewAssetParams, actor shared.Actor) (*asset.Asset, error)
}

type assetUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAssetUseCase(uow shared.UnitOfWork, clk clock.Clock) AssetCommands {
	return &assetUseCaseImpl{uow: uow, clock: clk}
}

// RegisterAsset creates an AVAILABLE asset. Serial numbers and tags are unique.
func (uc *assetUseCaseImpl) RegisterAsset(ctx context.Context, params asset.NewAssetParams, actor shared.Actor) (*asset.Asset, error) {
	if !actor.Role.IsElevated() {
		return nil, ErrCatalogForbidden
	}

	a, err := asset.NewAsset(params, actor.ID, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAsset)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Assets().Create(ctx, tx.DB(), a); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateAsset
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
