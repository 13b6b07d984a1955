package preset

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Proposal asks for SubstituteAssetID to stand in for ItemID.
type Proposal struct {
	ItemID            uuid.UUID
	SubstituteAssetID uuid.UUID
}

type ValidSubstitution struct {
	ItemID            uuid.UUID
	ItemName          string
	SubstituteAssetID uuid.UUID
	Preference        int
}

type ResolutionSummary struct {
	Requested int
	Valid     int
}

type Resolution struct {
	Valid   []ValidSubstitution
	Summary ResolutionSummary
}

// Resolve keeps the proposals whose item belongs to p, whose substitute is a
// declared edge of that item, and whose substitute is AVAILABLE right now.
// Everything else is dropped. requested is the caller's raw entry count, which
// may exceed len(proposals) when some entries could not be parsed.
//
// The result is advisory: availability may change before checkout.
func Resolve(p *Preset, proposals []Proposal, requested int, statuses Statuses) Resolution {
	valid := make([]ValidSubstitution, 0, len(proposals))
	priority := make(map[uuid.UUID]int, len(proposals))

	for _, prop := range proposals {
		item, ok := p.Item(prop.ItemID)
		if !ok {
			continue
		}
		edge, ok := item.HasSubstitute(prop.SubstituteAssetID)
		if !ok {
			continue
		}
		if !statuses.IsAvailable(prop.SubstituteAssetID) {
			continue
		}
		priority[item.ID] = item.Priority
		valid = append(valid, ValidSubstitution{
			ItemID:            item.ID,
			ItemName:          item.DisplayName,
			SubstituteAssetID: edge.SubstituteAssetID,
			Preference:        edge.Preference,
		})
	}

	slices.SortFunc(valid, func(a, b ValidSubstitution) int {
		if c := cmp.Compare(priority[a.ItemID], priority[b.ItemID]); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID.String(), b.ItemID.String())
	})

	if requested < len(proposals) {
		requested = len(proposals)
	}
	return Resolution{
		Valid: valid,
		Summary: ResolutionSummary{
			Requested: requested,
			Valid:     len(valid),
		},
	}
}
