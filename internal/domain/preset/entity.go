package preset

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName             = errors.New("preset name is required")
	ErrItemUnnamed           = errors.New("preset item must pin an asset or have a display name")
	ErrInvalidQuantity       = errors.New("preset item quantity must be at least 1")
	ErrSelfSubstitution      = errors.New("an item cannot list its own pinned asset as a substitute")
	ErrDuplicateSubstitution = errors.New("substitute asset listed more than once for the same item")
)

// Substitution is a declared alternative asset for a preset item.
// Lower Preference is more preferred.
type Substitution struct {
	ID                uuid.UUID
	SubstituteAssetID uuid.UUID
	Preference        int
}

// Item either pins a specific asset or is generic (category + display name).
// Lower Priority is evaluated first.
type Item struct {
	ID            uuid.UUID
	AssetID       *uuid.UUID
	Category      string
	DisplayName   string
	Quantity      int
	IsRequired    bool
	Priority      int
	Substitutions []Substitution
}

func (i Item) HasSubstitute(assetID uuid.UUID) (Substitution, bool) {
	for _, s := range i.Substitutions {
		if s.SubstituteAssetID == assetID {
			return s, true
		}
	}
	return Substitution{}, false
}

type Preset struct {
	id          uuid.UUID
	name        string
	description string
	items       []Item
	isActive    bool
	priority    int
	createdBy   uuid.UUID
	createdAt   time.Time
}

type ItemSpec struct {
	AssetID       *uuid.UUID
	Category      string
	DisplayName   string
	Quantity      int
	IsRequired    bool
	Priority      int
	Substitutions []SubstitutionSpec
}

type SubstitutionSpec struct {
	SubstituteAssetID uuid.UUID
	Preference        int
}

func NewPreset(name, description string, priority int, specs []ItemSpec, createdBy uuid.UUID, now time.Time) (*Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	items := make([]Item, 0, len(specs))
	for _, spec := range specs {
		item, err := newItem(spec)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Preset{
		id:          uuid.New(),
		name:        name,
		description: strings.TrimSpace(description),
		items:       items,
		isActive:    true,
		priority:    priority,
		createdBy:   createdBy,
		createdAt:   now,
	}, nil
}

func newItem(spec ItemSpec) (Item, error) {
	displayName := strings.TrimSpace(spec.DisplayName)
	if spec.AssetID == nil && displayName == "" {
		return Item{}, ErrItemUnnamed
	}

	quantity := spec.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQuantity
	}

	subs := make([]Substitution, 0, len(spec.Substitutions))
	seen := make(map[uuid.UUID]struct{}, len(spec.Substitutions))
	for _, s := range spec.Substitutions {
		if spec.AssetID != nil && *spec.AssetID == s.SubstituteAssetID {
			return Item{}, ErrSelfSubstitution
		}
		if _, dup := seen[s.SubstituteAssetID]; dup {
			return Item{}, ErrDuplicateSubstitution
		}
		seen[s.SubstituteAssetID] = struct{}{}
		subs = append(subs, Substitution{
			ID:                uuid.New(),
			SubstituteAssetID: s.SubstituteAssetID,
			Preference:        s.Preference,
		})
	}
	sortSubstitutions(subs)

	return Item{
		ID:            uuid.New(),
		AssetID:       spec.AssetID,
		Category:      strings.TrimSpace(spec.Category),
		DisplayName:   displayName,
		Quantity:      quantity,
		IsRequired:    spec.IsRequired,
		Priority:      spec.Priority,
		Substitutions: subs,
	}, nil
}

func Reconstruct(id uuid.UUID, name, description string, items []Item, isActive bool, priority int, createdBy uuid.UUID, createdAt time.Time) *Preset {
	for i := range items {
		sortSubstitutions(items[i].Substitutions)
	}
	return &Preset{
		id:          id,
		name:        name,
		description: description,
		items:       items,
		isActive:    isActive,
		priority:    priority,
		createdBy:   createdBy,
		createdAt:   createdAt,
	}
}

func (p *Preset) ID() uuid.UUID        { return p.id }
func (p *Preset) Name() string         { return p.name }
func (p *Preset) Description() string  { return p.description }
func (p *Preset) IsActive() bool       { return p.isActive }
func (p *Preset) Priority() int        { return p.priority }
func (p *Preset) CreatedBy() uuid.UUID { return p.createdBy }
func (p *Preset) CreatedAt() time.Time { return p.createdAt }

// Items returns a copy ordered by evaluation priority.
func (p *Preset) Items() []Item {
	items := slices.Clone(p.items)
	slices.SortStableFunc(items, func(a, b Item) int {
		return a.Priority - b.Priority
	})
	return items
}

func (p *Preset) Item(id uuid.UUID) (Item, bool) {
	for _, it := range p.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// ReferencedAssetIDs lists every pinned and substitute asset, without duplicates.
func (p *Preset) ReferencedAssetIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, it := range p.items {
		if it.AssetID != nil {
			add(*it.AssetID)
		}
		for _, s := range it.Substitutions {
			add(s.SubstituteAssetID)
		}
	}
	return ids
}

func sortSubstitutions(subs []Substitution) {
	slices.SortStableFunc(subs, func(a, b Substitution) int {
		return a.Preference - b.Preference
	})
}
