package commands

import (
	"context"

	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/clock"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"
)

var (
	ErrInvalidPreset       = errs.Mark(errs.New("invalid preset"), errs.ErrValidation)
	ErrUnknownPresetAssets = errs.Mark(errs.New("preset references assets that do not exist"), errs.ErrNotFound)
	ErrDuplicatePreset     = errs.Mark(errs.New("a preset with this name already exists"), errs.ErrConflictingState)
)

type CreatePresetRequest struct {
	Name        string
	Description string
	Priority    int
	Items       []preset.ItemSpec
}

type PresetCommands interface {
	CreatePreset(ctx context.Context, req CreatePresetRequest, actor shared.Actor) (*preset.Preset, error)
}

type presetUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewPresetUseCase(uow shared.UnitOfWork, clk clock.Clock) PresetCommands {
	return &presetUseCaseImpl{uow: uow, clock: clk}
}

func (uc *presetUseCaseImpl) CreatePreset(ctx context.Context, req CreatePresetRequest, actor shared.Actor) (*preset.Preset, error) {
	if !actor.Role.IsElevated() {
		return nil, ErrCatalogForbidden
	}

	p, err := preset.NewPreset(req.Name, req.Description, req.Priority, req.Items, actor.ID, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPreset)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		refs := p.ReferencedAssetIDs()
		if len(refs) > 0 {
			found, err := tx.Assets().FindByIDs(ctx, tx.DB(), refs)
			if err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if len(found) != len(refs) {
				return ErrUnknownPresetAssets
			}
		}

		if err := tx.Presets().Create(ctx, tx.DB(), p); err != nil {
			switch {
			case infra.IsKind(err, infra.KindDuplicateKey):
				return ErrDuplicatePreset
			case infra.IsKind(err, infra.KindForeignKeyViolated):
				return ErrUnknownPresetAssets
			default:
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
