//go:build unit

package ledger_test

import (
	"testing"
	"time"

	"gear-ledger/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)

func newActive(t *testing.T, notes string) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewCheckout(uuid.New(), uuid.New(), uuid.New(), notes, nil, base)
	require.NoError(t, err)
	return tx
}

func TestNewCheckout(t *testing.T) {
	t.Run("ACTIVEなCHECK_OUTとして作成", func(t *testing.T) {
		assetID, assignee, actor := uuid.New(), uuid.New(), uuid.New()
		due := base.Add(48 * time.Hour)

		tx, err := ledger.NewCheckout(assetID, assignee, actor, "  for shoot  ", &due, base)

		require.NoError(t, err)
		assert.Equal(t, ledger.TypeCheckOut, tx.Type())
		assert.Equal(t, ledger.StatusActive, tx.Status())
		assert.Equal(t, assetID, tx.AssetID())
		require.NotNil(t, tx.UserID())
		assert.Equal(t, assignee, *tx.UserID())
		assert.Equal(t, actor, tx.CreatedBy())
		assert.Equal(t, "for shoot", tx.Notes())
		assert.Equal(t, base, tx.CheckoutAt())
		assert.Nil(t, tx.ActualReturnDate())
		assert.True(t, tx.IsActiveCheckout())
	})

	t.Run("返却予定日が過去ならNG", func(t *testing.T) {
		past := base.Add(-time.Hour)
		_, err := ledger.NewCheckout(uuid.New(), uuid.New(), uuid.New(), "", &past, base)
		require.ErrorIs(t, err, ledger.ErrReturnBeforeCheckout)
	})
}

func TestComplete(t *testing.T) {
	t.Run("返却でCOMPLETEDとなりメモは追記される", func(t *testing.T) {
		tx := newActive(t, "lens cap missing")
		returnedAt := base.Add(3 * time.Hour)

		require.NoError(t, tx.Complete(returnedAt, "cap found"))

		assert.Equal(t, ledger.StatusCompleted, tx.Status())
		require.NotNil(t, tx.ActualReturnDate())
		assert.Equal(t, returnedAt, *tx.ActualReturnDate())
		assert.Equal(t, "lens cap missing\n\ncap found", tx.Notes())
		assert.False(t, tx.IsActiveCheckout())
	})

	t.Run("空メモは既存メモを変えない", func(t *testing.T) {
		tx := newActive(t, "original")
		require.NoError(t, tx.Complete(base, "   "))
		assert.Equal(t, "original", tx.Notes())
	})

	t.Run("完了済みは再度完了できない", func(t *testing.T) {
		tx := newActive(t, "")
		require.NoError(t, tx.Complete(base, ""))
		require.ErrorIs(t, tx.Complete(base, ""), ledger.ErrNotActive)
	})
}

func TestReassign(t *testing.T) {
	t.Run("担当者変更と監査メモ", func(t *testing.T) {
		tx := newActive(t, "kit A")
		to := uuid.New()
		at := time.Date(2024, 6, 2, 15, 0, 0, 0, time.UTC)

		require.NoError(t, tx.Reassign(to, "Alex Kim", at))

		assert.Equal(t, to, *tx.UserID())
		assert.Equal(t, ledger.StatusActive, tx.Status())
		assert.Equal(t, "kit A\n\nTransferred from Alex Kim on 2024-06-02", tx.Notes())
	})

	t.Run("同じ担当者への移管はNG", func(t *testing.T) {
		tx := newActive(t, "")
		require.ErrorIs(t, tx.Reassign(*tx.UserID(), "x", base), ledger.ErrSameCustodian)
	})

	t.Run("完了済みは移管不可", func(t *testing.T) {
		tx := newActive(t, "")
		require.NoError(t, tx.Complete(base, ""))
		require.ErrorIs(t, tx.Reassign(uuid.New(), "x", base), ledger.ErrNotActive)
	})
}
