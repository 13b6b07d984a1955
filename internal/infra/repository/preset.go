package repository

import (
	"context"
	"time"

	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/infra"
	"gear-ledger/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	presetsTable     = "presets"
	presetItemsTable = "preset_items"
	presetSubstTable = "preset_substitutions"
)

type presetRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	IsActive    bool      `db:"is_active"`
	Priority    int       `db:"priority"`
	CreatedBy   uuid.UUID `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

type presetItemRow struct {
	ID          uuid.UUID  `db:"id"`
	PresetID    uuid.UUID  `db:"preset_id"`
	AssetID     *uuid.UUID `db:"asset_id"`
	Category    string     `db:"category"`
	DisplayName string     `db:"display_name"`
	Quantity    int        `db:"quantity"`
	IsRequired  bool       `db:"is_required"`
	Priority    int        `db:"priority"`
}

type substitutionRow struct {
	ID                uuid.UUID `db:"id"`
	PresetItemID      uuid.UUID `db:"preset_item_id"`
	SubstituteAssetID uuid.UUID `db:"substitute_asset_id"`
	Preference        int       `db:"preference"`
}

var presetColumns = []any{"id", "name", "description", "is_active", "priority", "created_by", "created_at"}

type PresetRepository struct{}

func NewPresetRepository() *PresetRepository {
	return &PresetRepository{}
}

func (r *PresetRepository) ListActive(ctx context.Context, tx db.DBTX) ([]*preset.Preset, error) {
	ds := db.From(presetsTable).
		Select(presetColumns...).
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.C("priority").Desc(), goqu.C("name").Asc())

	rows, err := collectAll[presetRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list presets", err)
	}
	return r.hydrate(ctx, tx, rows)
}

func (r *PresetRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*preset.Preset, error) {
	ds := db.From(presetsTable).Select(presetColumns...).Where(goqu.C("id").Eq(id))

	row, err := collectOne[presetRow](ctx, tx, ds)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find preset", err)
	}
	presets, err := r.hydrate(ctx, tx, []presetRow{row})
	if err != nil {
		return nil, err
	}
	return presets[0], nil
}

// hydrate loads items and substitutions for all rows with two queries.
func (r *PresetRepository) hydrate(ctx context.Context, tx db.DBTX, rows []presetRow) ([]*preset.Preset, error) {
	if len(rows) == 0 {
		return []*preset.Preset{}, nil
	}
	presetIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		presetIDs = append(presetIDs, row.ID)
	}

	itemRows, err := collectAll[presetItemRow](ctx, tx, db.From(presetItemsTable).
		Select("id", "preset_id", "asset_id", "category", "display_name", "quantity", "is_required", "priority").
		Where(goqu.C("preset_id").In(presetIDs)).
		Order(goqu.C("priority").Asc(), goqu.C("id").Asc()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load preset items", err)
	}

	subsByItem := make(map[uuid.UUID][]preset.Substitution)
	if len(itemRows) > 0 {
		itemIDs := make([]uuid.UUID, 0, len(itemRows))
		for _, it := range itemRows {
			itemIDs = append(itemIDs, it.ID)
		}
		subRows, err := collectAll[substitutionRow](ctx, tx, db.From(presetSubstTable).
			Select("id", "preset_item_id", "substitute_asset_id", "preference").
			Where(goqu.C("preset_item_id").In(itemIDs)).
			Order(goqu.C("preference").Asc()))
		if err != nil {
			return nil, infra.WrapRepoErr("failed to load preset substitutions", err)
		}
		for _, s := range subRows {
			subsByItem[s.PresetItemID] = append(subsByItem[s.PresetItemID], preset.Substitution{
				ID:                s.ID,
				SubstituteAssetID: s.SubstituteAssetID,
				Preference:        s.Preference,
			})
		}
	}

	itemsByPreset := make(map[uuid.UUID][]preset.Item)
	for _, it := range itemRows {
		itemsByPreset[it.PresetID] = append(itemsByPreset[it.PresetID], preset.Item{
			ID:            it.ID,
			AssetID:       it.AssetID,
			Category:      it.Category,
			DisplayName:   it.DisplayName,
			Quantity:      it.Quantity,
			IsRequired:    it.IsRequired,
			Priority:      it.Priority,
			Substitutions: subsByItem[it.ID],
		})
	}

	presets := make([]*preset.Preset, 0, len(rows))
	for _, row := range rows {
		presets = append(presets, preset.Reconstruct(
			row.ID, row.Name, row.Description,
			itemsByPreset[row.ID],
			row.IsActive, row.Priority,
			row.CreatedBy, row.CreatedAt,
		))
	}
	return presets, nil
}

func (r *PresetRepository) Create(ctx context.Context, tx db.DBTX, p *preset.Preset) error {
	if _, err := execute(ctx, tx, db.Insert(presetsTable).Rows(goqu.Record{
		"id":          p.ID(),
		"name":        p.Name(),
		"description": p.Description(),
		"is_active":   p.IsActive(),
		"priority":    p.Priority(),
		"created_by":  p.CreatedBy(),
		"created_at":  p.CreatedAt(),
		"updated_at":  p.CreatedAt(),
	})); err != nil {
		return infra.WrapRepoErr("failed to create preset", err)
	}

	items := p.Items()
	if len(items) == 0 {
		return nil
	}

	itemRecords := make([]any, 0, len(items))
	var subRecords []any
	for _, it := range items {
		itemRecords = append(itemRecords, goqu.Record{
			"id":           it.ID,
			"preset_id":    p.ID(),
			"asset_id":     it.AssetID,
			"category":     it.Category,
			"display_name": it.DisplayName,
			"quantity":     it.Quantity,
			"is_required":  it.IsRequired,
			"priority":     it.Priority,
		})
		for _, s := range it.Substitutions {
			subRecords = append(subRecords, goqu.Record{
				"id":                  s.ID,
				"preset_item_id":      it.ID,
				"substitute_asset_id": s.SubstituteAssetID,
				"preference":          s.Preference,
			})
		}
	}

	if _, err := execute(ctx, tx, db.Insert(presetItemsTable).Rows(itemRecords...)); err != nil {
		return infra.WrapRepoErr("failed to create preset items", err)
	}
	if len(subRecords) > 0 {
		if _, err := execute(ctx, tx, db.Insert(presetSubstTable).Rows(subRecords...)); err != nil {
			return infra.WrapRepoErr("failed to create preset substitutions", err)
		}
	}
	return nil
}
