//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/domain/ledger"
	"gear-ledger/internal/domain/preset"
	"gear-ledger/internal/usecase/queries"
	"gear-ledger/tests/common/builder"
	"gear-ledger/tests/common/memstore"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var t0 = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	store *memstore.Store
	ctx   context.Context
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	s.store = memstore.New()
	s.ctx = context.Background()
}

func (s *QueriesTestSuite) putAsset(status asset.Status) uuid.UUID {
	id := uuid.New()
	s.store.PutAsset(builder.NewAssetBuilder().
		WithID(id).
		WithSerial("SN-" + id.String()).
		WithTag("TAG-" + id.String()).
		WithStatus(status).
		BuildDomain())
	return id
}

func (s *QueriesTestSuite) putCheckout(assetID, holder uuid.UUID, at time.Time, complete bool) *ledger.Transaction {
	tx, err := ledger.NewCheckout(assetID, holder, holder, "", nil, at)
	s.Require().NoError(err)
	if complete {
		s.Require().NoError(tx.Complete(at.Add(time.Hour), ""))
	}
	s.store.PutTransaction(tx)
	return tx
}

// =============================================================================
// Preflight
// =============================================================================

func (s *QueriesTestSuite) TestPreflight() {
	available := s.putAsset(asset.StatusAvailable)
	checkedOut := s.putAsset(asset.StatusCheckedOut)
	orphaned := s.putAsset(asset.StatusCheckedOut)
	retired := s.putAsset(asset.StatusRetired)
	unknown := uuid.New()
	s.putCheckout(checkedOut, uuid.New(), t0, false)

	q := queries.NewTransactionQueries(s.store.Views().Transactions(), s.store, asset.NewStateMachine(), 10)

	s.Run("チェックアウトの事前判定", func() {
		results, err := q.Preflight(s.ctx, asset.ActionCheckOut, []uuid.UUID{available, checkedOut, retired, unknown})
		s.Require().NoError(err)
		s.Require().Len(results, 4)

		s.True(results[0].Allowed)
		s.Equal("AVAILABLE", results[0].CurrentStatus)
		s.False(results[1].Allowed)
		s.Equal("asset is already checked out", results[1].Reason)
		s.False(results[2].Allowed)
		s.False(results[3].Allowed)
		s.Equal("asset not found", results[3].Reason)
		s.Empty(results[3].CurrentStatus)
	})

	s.Run("check-in needs an active checkout", func() {
		results, err := q.Preflight(s.ctx, asset.ActionCheckIn, []uuid.UUID{checkedOut, orphaned, available})
		s.Require().NoError(err)

		s.True(results[0].Allowed)
		s.False(results[1].Allowed)
		s.Equal("no active checkout exists for asset", results[1].Reason)
		s.False(results[2].Allowed)
	})

	s.Run("preflight never changes state", func() {
		before := s.store.Commits()
		_, err := q.Preflight(s.ctx, asset.ActionCheckOut, []uuid.UUID{available})
		s.Require().NoError(err)
		s.Equal(before, s.store.Commits())
		a, _ := s.store.Asset(available)
		s.Equal(asset.StatusAvailable, a.Status())
	})

	s.Run("error: empty and oversized carts", func() {
		_, err := q.Preflight(s.ctx, asset.ActionCheckOut, nil)
		s.ErrorIs(err, queries.ErrEmptyPreflight)

		_, err = q.Preflight(s.ctx, asset.ActionCheckOut, make([]uuid.UUID, 11))
		s.ErrorIs(err, queries.ErrPreflightTooLarge)
	})
}

// =============================================================================
// Asset history
// =============================================================================

func (s *QueriesTestSuite) TestHistoryPaging() {
	id := s.putAsset(asset.StatusAvailable)
	holder := uuid.New()
	var want []uuid.UUID
	for i := range 5 {
		tx := s.putCheckout(id, holder, t0.Add(time.Duration(i)*time.Hour), true)
		want = append([]uuid.UUID{tx.ID()}, want...)
	}
	q := queries.NewAssetQueries(s.store.Views(), s.store.Views().Transactions())

	var (
		got   []uuid.UUID
		after string
		pages int
	)
	for {
		rows, next, err := q.History(s.ctx, id, after, 2)
		s.Require().NoError(err)
		for _, r := range rows {
			got = append(got, r.ID)
		}
		pages++
		if next == "" {
			break
		}
		after = next
	}

	s.Equal(3, pages)
	if diff := cmp.Diff(want, got); diff != "" {
		s.T().Errorf("history order mismatch (-want +got):\n%s", diff)
	}

	s.Run("error: unknown asset", func() {
		_, _, err := q.History(s.ctx, uuid.New(), "", 10)
		s.ErrorIs(err, queries.ErrAssetNotFound)
	})

	s.Run("error: malformed cursor", func() {
		_, _, err := q.History(s.ctx, id, "%%%", 10)
		s.ErrorIs(err, queries.ErrInvalidCursor)
	})
}

func (s *QueriesTestSuite) TestGetAsset_ShowsHolder() {
	id := s.putAsset(asset.StatusCheckedOut)
	holder := builder.NewUserBuilder().WithName("Hana").MustBuildDomain()
	s.store.PutUser(holder)
	tx := s.putCheckout(id, holder.ID(), t0, false)

	view, err := queries.NewAssetQueries(s.store.Views(), s.store.Views().Transactions()).GetByID(s.ctx, id)

	s.Require().NoError(err)
	s.Equal("CHECKED_OUT", view.Status)
	s.Require().NotNil(view.ActiveTransactionID)
	s.Equal(tx.ID(), *view.ActiveTransactionID)
	s.Require().NotNil(view.HolderName)
	s.Equal("Hana", *view.HolderName)
}

// =============================================================================
// Preset detection and substitutions
// =============================================================================

func (s *QueriesTestSuite) TestDetect() {
	camera := s.putAsset(asset.StatusAvailable)
	lens := s.putAsset(asset.StatusAvailable)
	spareLens := s.putAsset(asset.StatusAvailable)
	light := s.putAsset(asset.StatusAvailable)

	pb := builder.NewPresetBuilder().WithName("Shoot kit").WithPriority(1)
	pb.WithPinnedItem(camera, true)
	pb.WithPinnedItem(lens, true, spareLens)
	pb.WithPinnedItem(light, false)
	s.store.PutPreset(pb.BuildDomain())

	q := queries.NewPresetQueries(s.store, preset.NewMatcher(preset.DefaultPolicy()))

	s.Run("scanning a substitute counts the item as matched", func() {
		matches, err := q.Detect(s.ctx, []uuid.UUID{camera, spareLens})
		s.Require().NoError(err)
		s.Require().Len(matches, 1)
		s.Equal(2, matches[0].MatchedItems)
		s.Equal(67, matches[0].MatchPercentage)
		s.Equal(100, matches[0].RequiredPercentage())
	})

	s.Run("空のスキャンは空の結果", func() {
		matches, err := q.Detect(s.ctx, nil)
		s.Require().NoError(err)
		s.Empty(matches)
	})
}

func (s *QueriesTestSuite) TestValidateSubstitutions() {
	lens := s.putAsset(asset.StatusAvailable)
	spare := s.putAsset(asset.StatusAvailable)
	busy := s.putAsset(asset.StatusCheckedOut)

	pb := builder.NewPresetBuilder().WithName("Lens kit")
	itemID := pb.WithPinnedItem(lens, true, spare, busy)
	p := pb.BuildDomain()
	s.store.PutPreset(p)

	q := queries.NewPresetQueries(s.store, preset.NewMatcher(preset.DefaultPolicy()))

	s.Run("unavailable and malformed entries are dropped silently", func() {
		res, err := q.ValidateSubstitutions(s.ctx, p.ID(), map[string]string{
			itemID.String():     spare.String(),
			uuid.NewString():    busy.String(),
			"not-a-uuid":        spare.String(),
			uuid.New().String(): uuid.NewString(),
		})
		s.Require().NoError(err)
		s.Equal(4, res.Summary.Requested)
		s.Equal(1, res.Summary.Valid)
		s.Require().Len(res.Valid, 1)
		s.Equal(spare, res.Valid[0].SubstituteAssetID)
	})

	s.Run("checked-out substitute is not valid", func() {
		res, err := q.ValidateSubstitutions(s.ctx, p.ID(), map[string]string{itemID.String(): busy.String()})
		s.Require().NoError(err)
		s.Equal(0, res.Summary.Valid)
		s.Empty(res.Valid)
	})

	s.Run("error: unknown preset", func() {
		_, err := q.ValidateSubstitutions(s.ctx, uuid.New(), map[string]string{})
		s.ErrorIs(err, queries.ErrPresetNotFound)
	})
}

// =============================================================================
// Cursor
// =============================================================================

func TestCursorRoundTrip(t *testing.T) {
	c := queries.Cursor{At: time.Date(2024, 1, 2, 3, 4, 5, 123456000, time.UTC), ID: uuid.New()}

	decoded, err := queries.DecodeCursor(queries.EncodeCursor(c))

	require.NoError(t, err)
	assert.True(t, c.At.Equal(decoded.At))
	assert.Equal(t, c.ID, decoded.ID)
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
}
