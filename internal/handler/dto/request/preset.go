package request

import (
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/pkg/patch"
	"gear-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubstitutionRequest struct {
	SubstituteAssetID uuid.UUID `json:"substituteAssetId" binding:"required"`
	Preference        int       `json:"preference" binding:"min=0"`
}

// PresetItemRequest items are required unless isRequired is sent as false.
type PresetItemRequest struct {
	AssetID       *uuid.UUID            `json:"assetId,omitempty"`
	Category      string                `json:"category" binding:"max=100"`
	DisplayName   string                `json:"displayName" binding:"max=200"`
	Quantity      int                   `json:"quantity" binding:"omitempty,min=1"`
	IsRequired    *bool                 `json:"isRequired,omitempty"`
	Priority      int                   `json:"priority"`
	Substitutions []SubstitutionRequest `json:"substitutions" binding:"omitempty,dive"`
}

type CreatePresetRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description string              `json:"description" binding:"max=2000"`
	Priority    int                 `json:"priority"`
	Items       []PresetItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r CreatePresetRequest) ToCommand() commands.CreatePresetRequest {
	items := make([]preset.ItemSpec, len(r.Items))
	for i, it := range r.Items {
		subs := make([]preset.SubstitutionSpec, len(it.Substitutions))
		for j, s := range it.Substitutions {
			subs[j] = preset.SubstitutionSpec{SubstituteAssetID: s.SubstituteAssetID, Preference: s.Preference}
		}
		items[i] = preset.ItemSpec{
			AssetID:       it.AssetID,
			Category:      it.Category,
			DisplayName:   it.DisplayName,
			Quantity:      it.Quantity,
			IsRequired:    patch.Coalesce(it.IsRequired, true),
			Priority:      it.Priority,
			Substitutions: subs,
		}
	}
	return commands.CreatePresetRequest{
		Name:        r.Name,
		Description: r.Description,
		Priority:    r.Priority,
		Items:       items,
	}
}

// DetectRequest accepts an empty list; it simply matches nothing.
type DetectRequest struct {
	AssetIDs []uuid.UUID `json:"assetIds"`
}

type ValidateSubstitutionsRequest struct {
	PresetID      *uuid.UUID        `json:"presetId,omitempty"`
	Substitutions map[string]string `json:"substitutions" binding:"required"`
}
