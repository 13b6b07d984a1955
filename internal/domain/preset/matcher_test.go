//go:build unit

package preset_test

import (
	"testing"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestDetect_Scenarios(t *testing.T) {
	m := preset.NewMatcher(preset.DefaultPolicy())

	t.Run("必須3件中2件と任意1件一致で75%として採用", func(t *testing.T) {
		a := ids(4)
		b := builder.NewPresetBuilder().WithName("P")
		b.WithPinnedItem(a[0], true)
		b.WithPinnedItem(a[1], true)
		b.WithPinnedItem(a[2], true)
		b.WithPinnedItem(a[3], false)
		p := b.BuildDomain()

		matches := m.Detect([]*preset.Preset{p}, []uuid.UUID{a[0], a[1], a[3]}, nil)

		require.Len(t, matches, 1)
		got := matches[0]
		assert.Equal(t, 3, got.MatchedItems)
		assert.Equal(t, 4, got.TotalItems)
		assert.Equal(t, 75, got.MatchPercentage)
		assert.Equal(t, 3, got.RequiredItems)
		assert.Equal(t, 2, got.RequiredMatched)
		assert.Equal(t, 67, got.RequiredPercentage())
		require.Len(t, got.MissingItems, 1)
		assert.Equal(t, a[2], *got.MissingItems[0].AssetID)
		assert.True(t, got.MissingItems[0].IsRequired)
	})

	t.Run("必須なし5件中1件一致の20%は除外", func(t *testing.T) {
		a := ids(5)
		b := builder.NewPresetBuilder().WithName("Q")
		for _, id := range a {
			b.WithPinnedItem(id, false)
		}

		matches := m.Detect([]*preset.Preset{b.BuildDomain()}, []uuid.UUID{a[0]}, nil)

		assert.Empty(t, matches)
	})

	t.Run("全体14%でも必須が全て一致なら採用", func(t *testing.T) {
		a := ids(7)
		b := builder.NewPresetBuilder()
		b.WithPinnedItem(a[0], true)
		for _, id := range a[1:] {
			b.WithPinnedItem(id, false)
		}
		p := b.BuildDomain()

		match := m.Evaluate(p, set(a[0]), nil)
		assert.Equal(t, 14, match.MatchPercentage)
		assert.True(t, m.Qualifies(match))
	})

	t.Run("必須の一致率が閾値未満なら不採用", func(t *testing.T) {
		a := ids(10)
		b := builder.NewPresetBuilder()
		for i, id := range a {
			b.WithPinnedItem(id, i < 5)
		}
		p := b.BuildDomain()

		// 2/10 overall, 2/5 required
		match := m.Evaluate(p, set(a[0], a[1]), nil)
		assert.Equal(t, 20, match.MatchPercentage)
		assert.False(t, m.Qualifies(match))

		// 4/10 overall passes on its own
		match = m.Evaluate(p, set(a[0], a[1], a[2], a[3]), nil)
		assert.True(t, m.Qualifies(match))
	})

	t.Run("必須の一致率がちょうど80%なら採用", func(t *testing.T) {
		a := ids(20)
		b := builder.NewPresetBuilder()
		for i, id := range a {
			b.WithPinnedItem(id, i < 5)
		}
		match := m.Evaluate(b.BuildDomain(), set(a[0], a[1], a[2], a[3]), nil)
		assert.Equal(t, 20, match.MatchPercentage)
		assert.True(t, m.Qualifies(match))
	})

	t.Run("アイテムなしのプリセットは0%で除外", func(t *testing.T) {
		p := builder.NewPresetBuilder().BuildDomain()
		match := m.Evaluate(p, set(uuid.New()), nil)
		assert.Equal(t, 0, match.MatchPercentage)
		assert.Empty(t, m.Detect([]*preset.Preset{p}, []uuid.UUID{uuid.New()}, nil))
	})

	t.Run("非アクティブなプリセットは評価しない", func(t *testing.T) {
		a := uuid.New()
		b := builder.NewPresetBuilder().AsInactive()
		b.WithPinnedItem(a, true)
		assert.Empty(t, m.Detect([]*preset.Preset{b.BuildDomain()}, []uuid.UUID{a}, nil))
	})

	t.Run("空のスキャンは一致なし", func(t *testing.T) {
		b := builder.NewPresetBuilder()
		b.WithPinnedItem(uuid.New(), true)
		assert.Empty(t, m.Detect([]*preset.Preset{b.BuildDomain()}, nil, nil))
	})
}

func TestDetect_Substitutions(t *testing.T) {
	m := preset.NewMatcher(preset.DefaultPolicy())

	t.Run("代替資産のスキャンでも一致扱い", func(t *testing.T) {
		primary, sub := uuid.New(), uuid.New()
		b := builder.NewPresetBuilder()
		b.WithPinnedItem(primary, true, sub)
		b.WithGenericItem("tripod", false, uuid.New())

		matches := m.Detect([]*preset.Preset{b.BuildDomain()}, []uuid.UUID{sub}, nil)

		require.Len(t, matches, 1)
		assert.Equal(t, 1, matches[0].MatchedItems)
		assert.Equal(t, 50, matches[0].MatchPercentage)
	})

	t.Run("不足アイテムには利用可能な代替のみ付与", func(t *testing.T) {
		primary, free, busy, scanned := uuid.New(), uuid.New(), uuid.New(), uuid.New()
		b := builder.NewPresetBuilder()
		b.WithPinnedItem(scanned, true)
		itemID := b.WithPinnedItem(primary, true, busy, free)

		statuses := preset.Statuses{
			free: asset.StatusAvailable,
			busy: asset.StatusCheckedOut,
		}
		matches := m.Detect([]*preset.Preset{b.BuildDomain()}, []uuid.UUID{scanned}, statuses)

		require.Len(t, matches, 1)
		require.Len(t, matches[0].MissingItems, 1)
		missing := matches[0].MissingItems[0]
		assert.Equal(t, itemID, missing.ID)
		require.Len(t, missing.AvailableSubstitutes, 1)
		assert.Equal(t, free, missing.AvailableSubstitutes[0].SubstituteAssetID)
	})

	t.Run("固定資産の状態に関係なくスキャンされていれば一致", func(t *testing.T) {
		retired := uuid.New()
		b := builder.NewPresetBuilder()
		b.WithPinnedItem(retired, true)
		statuses := preset.Statuses{retired: asset.StatusRetired}

		matches := m.Detect([]*preset.Preset{b.BuildDomain()}, []uuid.UUID{retired}, statuses)
		require.Len(t, matches, 1)
		assert.Equal(t, 100, matches[0].MatchPercentage)
	})
}

func TestDetect_Ordering(t *testing.T) {
	m := preset.NewMatcher(preset.DefaultPolicy())
	a := ids(4)

	full := builder.NewPresetBuilder().WithName("full").WithPriority(0)
	full.WithPinnedItem(a[0], false)

	halfLow := builder.NewPresetBuilder().WithName("half-low").WithPriority(1)
	halfLow.WithPinnedItem(a[0], false)
	halfLow.WithPinnedItem(a[1], false)

	halfHigh := builder.NewPresetBuilder().WithName("half-high").WithPriority(9)
	halfHigh.WithPinnedItem(a[0], false)
	halfHigh.WithPinnedItem(a[2], false)

	presets := []*preset.Preset{halfLow.BuildDomain(), full.BuildDomain(), halfHigh.BuildDomain()}
	matches := m.Detect(presets, []uuid.UUID{a[0]}, nil)

	var names []string
	for _, match := range matches {
		names = append(names, match.Preset.Name())
	}
	if diff := cmp.Diff([]string{"full", "half-high", "half-low"}, names); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_Monotonic(t *testing.T) {
	m := preset.NewMatcher(preset.DefaultPolicy())
	a := ids(6)
	subs := ids(2)
	b := builder.NewPresetBuilder()
	b.WithPinnedItem(a[0], true, subs[0])
	b.WithPinnedItem(a[1], true)
	b.WithPinnedItem(a[2], false, subs[1])
	b.WithGenericItem("audio", false, a[3])
	b.WithPinnedItem(a[4], false)
	p := b.BuildDomain()

	universe := append(append([]uuid.UUID{}, a...), subs...)
	scanned := map[uuid.UUID]struct{}{}
	prev := m.Evaluate(p, scanned, nil).MatchPercentage
	for _, id := range universe {
		scanned[id] = struct{}{}
		cur := m.Evaluate(p, scanned, nil).MatchPercentage
		assert.GreaterOrEqual(t, cur, prev, "adding %s decreased the score", id)
		prev = cur
	}
	assert.Equal(t, 100, prev)
}

func TestPolicyIsConfigurable(t *testing.T) {
	a := ids(5)
	b := builder.NewPresetBuilder()
	for _, id := range a {
		b.WithPinnedItem(id, false)
	}
	p := b.BuildDomain()

	strict := preset.NewMatcher(preset.Policy{OverallThreshold: 50, RequiredThreshold: 100})
	loose := preset.NewMatcher(preset.Policy{OverallThreshold: 20, RequiredThreshold: 100})

	assert.Empty(t, strict.Detect([]*preset.Preset{p}, a[:2], nil))
	assert.Len(t, loose.Detect([]*preset.Preset{p}, a[:1], nil), 1)
}

func set(ids ...uuid.UUID) map[uuid.UUID]struct{} {
	s := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
