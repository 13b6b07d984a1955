package queries

import (
	"context"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPresetNotFound = errs.Mark(errs.New("preset not found"), errs.ErrNotFound)

type PresetQueries interface {
	ListActive(ctx context.Context) ([]*preset.Preset, error)
	Detect(ctx context.Context, assetIDs []uuid.UUID) ([]preset.Match, error)
	// ValidateSubstitutions keys are preset item IDs, values substitute asset IDs.
	// Entries that do not parse are counted as requested and dropped.
	ValidateSubstitutions(ctx context.Context, presetID uuid.UUID, substitutions map[string]string) (*preset.Resolution, error)
}

type presetQueriesImpl struct {
	uow     shared.UnitOfWork
	matcher *preset.Matcher
}

func NewPresetQueries(uow shared.UnitOfWork, matcher *preset.Matcher) PresetQueries {
	return &presetQueriesImpl{uow: uow, matcher: matcher}
}

func (q *presetQueriesImpl) ListActive(ctx context.Context) ([]*preset.Preset, error) {
	var presets []*preset.Preset
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		presets, err = tx.Presets().ListActive(ctx, tx.DB())
		return err
	})
	if err != nil {
		return nil, err
	}
	return presets, nil
}

// Detect reads presets and substitute availability in one snapshot. The result
// is advisory; checkout re-validates every asset.
func (q *presetQueriesImpl) Detect(ctx context.Context, assetIDs []uuid.UUID) ([]preset.Match, error) {
	if len(assetIDs) == 0 {
		return []preset.Match{}, nil
	}

	var (
		presets  []*preset.Preset
		statuses map[uuid.UUID]asset.Status
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if presets, err = tx.Presets().ListActive(ctx, tx.DB()); err != nil {
			return err
		}
		statuses, err = tx.Assets().Statuses(ctx, tx.DB(), substituteIDs(presets))
		return err
	})
	if err != nil {
		return nil, err
	}

	return q.matcher.Detect(presets, assetIDs, statuses), nil
}

func (q *presetQueriesImpl) ValidateSubstitutions(ctx context.Context, presetID uuid.UUID, substitutions map[string]string) (*preset.Resolution, error) {
	proposals := make([]preset.Proposal, 0, len(substitutions))
	for rawItem, rawAsset := range substitutions {
		itemID, err := uuid.Parse(rawItem)
		if err != nil {
			continue
		}
		assetID, err := uuid.Parse(rawAsset)
		if err != nil {
			continue
		}
		proposals = append(proposals, preset.Proposal{ItemID: itemID, SubstituteAssetID: assetID})
	}

	var res preset.Resolution
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Presets().FindByID(ctx, tx.DB(), presetID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPresetNotFound
			}
			return err
		}

		ids := make([]uuid.UUID, 0, len(proposals))
		for _, prop := range proposals {
			ids = append(ids, prop.SubstituteAssetID)
		}
		statuses, err := tx.Assets().Statuses(ctx, tx.DB(), ids)
		if err != nil {
			return err
		}

		res = preset.Resolve(p, proposals, len(substitutions), statuses)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func substituteIDs(presets []*preset.Preset) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, p := range presets {
		for _, it := range p.Items() {
			for _, s := range it.Substitutions {
				if _, ok := seen[s.SubstituteAssetID]; ok {
					continue
				}
				seen[s.SubstituteAssetID] = struct{}{}
				ids = append(ids, s.SubstituteAssetID)
			}
		}
	}
	return ids
}
