//go:build unit || e2e

package builder

import (
	"time"

	"gear-ledger/internal/domain/preset"

	"github.com/google/uuid"
)

type PresetBuilder struct {
	ID          uuid.UUID
	Name        string
	Description string
	Priority    int
	IsActive    bool
	Items       []preset.Item
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

func NewPresetBuilder() *PresetBuilder {
	return &PresetBuilder{
		ID:        uuid.New(),
		Name:      "Interview Kit",
		Priority:  0,
		IsActive:  true,
		CreatedBy: uuid.New(),
		CreatedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (p *PresetBuilder) With(mutate func(*PresetBuilder)) *PresetBuilder {
	mutate(p)
	return p
}

func (p *PresetBuilder) WithName(name string) *PresetBuilder {
	p.Name = name
	return p
}

func (p *PresetBuilder) WithPriority(priority int) *PresetBuilder {
	p.Priority = priority
	return p
}

func (p *PresetBuilder) AsInactive() *PresetBuilder {
	p.IsActive = false
	return p
}

// WithPinnedItem adds an item pinned to assetID and returns the item ID.
func (p *PresetBuilder) WithPinnedItem(assetID uuid.UUID, required bool, substitutes ...uuid.UUID) uuid.UUID {
	id := assetID
	item := preset.Item{
		ID:          uuid.New(),
		AssetID:     &id,
		DisplayName: "pinned " + assetID.String()[:8],
		Quantity:    1,
		IsRequired:  required,
		Priority:    len(p.Items),
	}
	for i, s := range substitutes {
		item.Substitutions = append(item.Substitutions, preset.Substitution{
			ID:                uuid.New(),
			SubstituteAssetID: s,
			Preference:        i + 1,
		})
	}
	p.Items = append(p.Items, item)
	return item.ID
}

// WithGenericItem adds an unpinned item satisfied only through substitutes.
func (p *PresetBuilder) WithGenericItem(category string, required bool, substitutes ...uuid.UUID) uuid.UUID {
	item := preset.Item{
		ID:          uuid.New(),
		Category:    category,
		DisplayName: "any " + category,
		Quantity:    1,
		IsRequired:  required,
		Priority:    len(p.Items),
	}
	for i, s := range substitutes {
		item.Substitutions = append(item.Substitutions, preset.Substitution{
			ID:                uuid.New(),
			SubstituteAssetID: s,
			Preference:        i + 1,
		})
	}
	p.Items = append(p.Items, item)
	return item.ID
}

func (p *PresetBuilder) BuildDomain() *preset.Preset {
	items := make([]preset.Item, len(p.Items))
	copy(items, p.Items)
	return preset.Reconstruct(p.ID, p.Name, p.Description, items, p.IsActive, p.Priority, p.CreatedBy, p.CreatedAt)
}
