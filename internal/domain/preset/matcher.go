package preset

import (
	"cmp"
	"math"
	"slices"

	"gear-ledger/internal/domain/asset"

	"github.com/google/uuid"
)

const (
	DefaultOverallThreshold  = 30
	DefaultRequiredThreshold = 80
)

// Policy sets the percentages a preset has to reach to count as a candidate.
type Policy struct {
	OverallThreshold  int
	RequiredThreshold int
}

func DefaultPolicy() Policy {
	return Policy{
		OverallThreshold:  DefaultOverallThreshold,
		RequiredThreshold: DefaultRequiredThreshold,
	}
}

// Statuses maps asset IDs to their current status. Unknown assets are absent.
type Statuses map[uuid.UUID]asset.Status

func (s Statuses) IsAvailable(id uuid.UUID) bool {
	return s[id] == asset.StatusAvailable
}

type MissingItem struct {
	Item
	// AvailableSubstitutes holds the declared substitutes currently AVAILABLE,
	// most preferred first.
	AvailableSubstitutes []Substitution
}

type Match struct {
	Preset          *Preset
	MatchedItems    int
	TotalItems      int
	MatchPercentage int
	RequiredItems   int
	RequiredMatched int
	MatchedItemIDs  []uuid.UUID
	MissingItems    []MissingItem
}

// RequiredPercentage is 0 for presets without required items.
func (m Match) RequiredPercentage() int {
	return percentage(m.RequiredMatched, m.RequiredItems)
}

type Matcher struct {
	policy Policy
}

func NewMatcher(policy Policy) *Matcher {
	return &Matcher{policy: policy}
}

func (m *Matcher) Policy() Policy {
	return m.policy
}

// Detect scores every active preset against the scanned assets and returns the
// qualifying ones, best match first and then by preset priority.
func (m *Matcher) Detect(presets []*Preset, scanned []uuid.UUID, statuses Statuses) []Match {
	set := make(map[uuid.UUID]struct{}, len(scanned))
	for _, id := range scanned {
		set[id] = struct{}{}
	}

	matches := make([]Match, 0)
	for _, p := range presets {
		if p == nil || !p.IsActive() {
			continue
		}
		match := m.Evaluate(p, set, statuses)
		if m.Qualifies(match) {
			matches = append(matches, match)
		}
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.MatchPercentage, a.MatchPercentage); c != 0 {
			return c
		}
		return cmp.Compare(b.Preset.Priority(), a.Preset.Priority())
	})
	return matches
}

// Evaluate scores a single preset. Scanned membership alone decides whether an
// item is matched; the current status of a scanned asset is not consulted.
func (m *Matcher) Evaluate(p *Preset, scanned map[uuid.UUID]struct{}, statuses Statuses) Match {
	items := p.Items()
	match := Match{
		Preset:         p,
		TotalItems:     len(items),
		MatchedItemIDs: make([]uuid.UUID, 0, len(items)),
		MissingItems:   make([]MissingItem, 0),
	}

	for _, item := range items {
		if item.IsRequired {
			match.RequiredItems++
		}
		if itemMatched(item, scanned) {
			match.MatchedItems++
			match.MatchedItemIDs = append(match.MatchedItemIDs, item.ID)
			if item.IsRequired {
				match.RequiredMatched++
			}
			continue
		}

		missing := MissingItem{Item: item}
		for _, s := range item.Substitutions {
			if statuses.IsAvailable(s.SubstituteAssetID) {
				missing.AvailableSubstitutes = append(missing.AvailableSubstitutes, s)
			}
		}
		match.MissingItems = append(match.MissingItems, missing)
	}

	match.MatchPercentage = percentage(match.MatchedItems, match.TotalItems)
	return match
}

// Qualifies reports whether a scored preset passes either the overall threshold
// or, for presets that have required items, the required-item threshold.
func (m *Matcher) Qualifies(match Match) bool {
	if match.TotalItems == 0 {
		return false
	}
	if match.MatchPercentage >= m.policy.OverallThreshold {
		return true
	}
	if match.RequiredItems == 0 {
		return false
	}
	// integer form of RequiredMatched/RequiredItems >= threshold%
	return match.RequiredMatched*100 >= m.policy.RequiredThreshold*match.RequiredItems
}

func itemMatched(item Item, scanned map[uuid.UUID]struct{}) bool {
	if item.AssetID != nil {
		if _, ok := scanned[*item.AssetID]; ok {
			return true
		}
	}
	for _, s := range item.Substitutions {
		if _, ok := scanned[s.SubstituteAssetID]; ok {
			return true
		}
	}
	return false
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
