package response

import (
	"time"

	"gear-ledger/internal/domain/preset"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SubstitutionResponse struct {
	ID                uuid.UUID `json:"id"`
	SubstituteAssetID uuid.UUID `json:"substituteAssetId"`
	Preference        int       `json:"preference"`
}

type PresetItemResponse struct {
	ID            uuid.UUID              `json:"id"`
	AssetID       *uuid.UUID             `json:"assetId,omitempty"`
	Category      string                 `json:"category,omitempty"`
	DisplayName   string                 `json:"displayName,omitempty"`
	Quantity      int                    `json:"quantity"`
	IsRequired    bool                   `json:"isRequired"`
	Priority      int                    `json:"priority"`
	Substitutions []SubstitutionResponse `json:"substitutions"`
}

type PresetResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	IsActive    bool                 `json:"isActive"`
	Priority    int                  `json:"priority"`
	Items       []PresetItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"createdAt"`
}

func FromPreset(p *preset.Preset) (*PresetResponse, error) {
	res := &PresetResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		IsActive:    p.IsActive(),
		Priority:    p.Priority(),
		CreatedAt:   p.CreatedAt(),
	}
	items, err := fromItems(p.Items())
	if err != nil {
		return nil, err
	}
	res.Items = items
	return res, nil
}

func FromPresets(ps []*preset.Preset) ([]*PresetResponse, error) {
	res := make([]*PresetResponse, 0, len(ps))
	for _, p := range ps {
		r, err := FromPreset(p)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

func fromItems(items []preset.Item) ([]PresetItemResponse, error) {
	res := make([]PresetItemResponse, 0, len(items))
	if err := copier.Copy(&res, &items); err != nil {
		return nil, err
	}
	for i := range res {
		if res[i].Substitutions == nil {
			res[i].Substitutions = []SubstitutionResponse{}
		}
	}
	return res, nil
}

type PresetSummaryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Priority int       `json:"priority"`
}

type MissingItemResponse struct {
	PresetItemResponse
	AvailableSubstitutions []SubstitutionResponse `json:"availableSubstitutions"`
}

type MatchResponse struct {
	Preset          PresetSummaryResponse `json:"preset"`
	MatchedItems    int                   `json:"matchedItems"`
	TotalItems      int                   `json:"totalItems"`
	MatchPercentage int                   `json:"matchPercentage"`
	RequiredItems   int                   `json:"requiredItems"`
	RequiredMatched int                   `json:"requiredMatched"`
	MatchedItemIDs  []uuid.UUID           `json:"matchedItemIds"`
	MissingItems    []MissingItemResponse `json:"missingItems"`
}

type DetectResponse struct {
	Matches []MatchResponse `json:"matches"`
}

func FromMatches(ms []preset.Match) (*DetectResponse, error) {
	res := &DetectResponse{Matches: make([]MatchResponse, 0, len(ms))}
	for _, m := range ms {
		missing := make([]MissingItemResponse, 0, len(m.MissingItems))
		for _, mi := range m.MissingItems {
			items, err := fromItems([]preset.Item{mi.Item})
			if err != nil {
				return nil, err
			}
			subs := make([]SubstitutionResponse, 0, len(mi.AvailableSubstitutes))
			if len(mi.AvailableSubstitutes) > 0 {
				if err := copier.Copy(&subs, &mi.AvailableSubstitutes); err != nil {
					return nil, err
				}
			}
			missing = append(missing, MissingItemResponse{
				PresetItemResponse:     items[0],
				AvailableSubstitutions: subs,
			})
		}
		res.Matches = append(res.Matches, MatchResponse{
			Preset: PresetSummaryResponse{
				ID:       m.Preset.ID(),
				Name:     m.Preset.Name(),
				Priority: m.Preset.Priority(),
			},
			MatchedItems:    m.MatchedItems,
			TotalItems:      m.TotalItems,
			MatchPercentage: m.MatchPercentage,
			RequiredItems:   m.RequiredItems,
			RequiredMatched: m.RequiredMatched,
			MatchedItemIDs:  m.MatchedItemIDs,
			MissingItems:    missing,
		})
	}
	return res, nil
}

type ValidSubstitutionResponse struct {
	ItemID            uuid.UUID `json:"itemId"`
	ItemName          string    `json:"itemName,omitempty"`
	SubstituteAssetID uuid.UUID `json:"substituteAssetId"`
	Preference        int       `json:"preference"`
}

type SubstitutionSummaryResponse struct {
	Requested int `json:"requested"`
	Valid     int `json:"valid"`
}

type ValidateSubstitutionsResponse struct {
	ValidSubstitutions []ValidSubstitutionResponse `json:"validSubstitutions"`
	Summary            SubstitutionSummaryResponse `json:"summary"`
}

func FromResolution(r *preset.Resolution) (*ValidateSubstitutionsResponse, error) {
	res := &ValidateSubstitutionsResponse{
		ValidSubstitutions: make([]ValidSubstitutionResponse, 0, len(r.Valid)),
	}
	if len(r.Valid) > 0 {
		if err := copier.Copy(&res.ValidSubstitutions, &r.Valid); err != nil {
			return nil, err
		}
	}
	res.Summary = SubstitutionSummaryResponse{Requested: r.Summary.Requested, Valid: r.Summary.Valid}
	return res, nil
}
