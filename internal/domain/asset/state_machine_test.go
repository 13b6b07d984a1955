//go:build unit

package asset_test

import (
	"errors"
	"testing"
	"time"

	"gear-ledger/internal/domain/asset"
	"gear-ledger/internal/pkg/errs"
	"gear-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []asset.Status{
	asset.StatusAvailable,
	asset.StatusCheckedOut,
	asset.StatusInMaintenance,
	asset.StatusRetired,
	asset.StatusMissing,
	asset.StatusReserved,
}

func TestDecide(t *testing.T) {
	t.Run("CHECK_OUTはAVAILABLEからのみ許可", func(t *testing.T) {
		for _, st := range allStatuses {
			for _, active := range []bool{true, false} {
				d := asset.Decide(st, asset.ActionCheckOut, active)
				if st == asset.StatusAvailable {
					assert.True(t, d.Allowed, "status=%s", st)
					assert.Equal(t, asset.StatusCheckedOut, d.Next)
					assert.Empty(t, d.Reason)
				} else {
					assert.False(t, d.Allowed, "status=%s", st)
					assert.Equal(t, st, d.Next)
					assert.NotEmpty(t, d.Reason)
				}
			}
		}
	})

	t.Run("CHECK_INはCHECKED_OUTかつ有効な貸出がある場合のみ許可", func(t *testing.T) {
		for _, st := range allStatuses {
			for _, active := range []bool{true, false} {
				d := asset.Decide(st, asset.ActionCheckIn, active)
				want := st == asset.StatusCheckedOut && active
				assert.Equal(t, want, d.Allowed, "status=%s active=%v", st, active)
				if want {
					assert.Equal(t, asset.StatusAvailable, d.Next)
				} else {
					assert.NotEmpty(t, d.Reason)
				}
			}
		}
	})

	t.Run("拒否理由", func(t *testing.T) {
		cases := []struct {
			name   string
			status asset.Status
			action asset.Action
			active bool
			reason string
		}{
			{"貸出中", asset.StatusCheckedOut, asset.ActionCheckOut, true, "asset is already checked out"},
			{"メンテナンス中", asset.StatusInMaintenance, asset.ActionCheckOut, false, "asset is in maintenance and cannot be checked out"},
			{"廃棄済み", asset.StatusRetired, asset.ActionCheckOut, false, "asset is retired and cannot be checked out"},
			{"紛失", asset.StatusMissing, asset.ActionCheckOut, false, "asset is missing and cannot be checked out"},
			{"予約済み", asset.StatusReserved, asset.ActionCheckOut, false, "asset is reserved and cannot be checked out"},
			{"貸出記録なし", asset.StatusCheckedOut, asset.ActionCheckIn, false, "no active checkout exists for asset"},
			{"未貸出の返却", asset.StatusAvailable, asset.ActionCheckIn, false, "asset is not checked out (current status: AVAILABLE)"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				d := asset.Decide(c.status, c.action, c.active)
				assert.False(t, d.Allowed)
				assert.Equal(t, c.reason, d.Reason)
			})
		}
	})

	t.Run("同じ入力には同じ結果を返す", func(t *testing.T) {
		sm := asset.NewStateMachine()
		first := sm.Decide(asset.StatusInMaintenance, asset.ActionCheckOut, false)
		for range 5 {
			assert.Equal(t, first, sm.Decide(asset.StatusInMaintenance, asset.ActionCheckOut, false))
		}
	})

	t.Run("未知のアクションは拒否", func(t *testing.T) {
		d := asset.Decide(asset.StatusAvailable, asset.Action("REPAIR"), false)
		assert.False(t, d.Allowed)
		assert.Contains(t, d.Reason, "unsupported action")
	})
}

func TestAssetApply(t *testing.T) {
	sm := asset.NewStateMachine()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	actor := uuid.New()

	t.Run("許可された遷移でステータスと更新者が変わる", func(t *testing.T) {
		a := builder.NewAssetBuilder().BuildDomain()

		d, err := a.Apply(sm, asset.ActionCheckOut, false, actor, now)

		require.NoError(t, err)
		assert.Equal(t, asset.StatusAvailable, d.From)
		assert.Equal(t, asset.StatusCheckedOut, a.Status())
		assert.Equal(t, actor, a.LastModifiedBy())
		assert.Equal(t, now, a.UpdatedAt())
	})

	t.Run("拒否された遷移では何も変わらない", func(t *testing.T) {
		a := builder.NewAssetBuilder().WithStatus(asset.StatusCheckedOut).BuildDomain()
		before := a.LastModifiedBy()

		_, err := a.Apply(sm, asset.ActionCheckOut, true, actor, now)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, "asset is already checked out", err.Error())
		assert.Equal(t, asset.StatusCheckedOut, a.Status())
		assert.Equal(t, before, a.LastModifiedBy())
	})

	t.Run("二重貸出は2回目が失敗", func(t *testing.T) {
		a := builder.NewAssetBuilder().BuildDomain()

		_, err := a.Apply(sm, asset.ActionCheckOut, false, actor, now)
		require.NoError(t, err)
		_, err = a.Apply(sm, asset.ActionCheckOut, true, actor, now)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, asset.StatusCheckedOut, a.Status())
	})
}

func TestNewAsset(t *testing.T) {
	now := time.Now().UTC()

	t.Run("新規資産はAVAILABLE", func(t *testing.T) {
		a, err := asset.NewAsset(builder.NewAssetBuilder().BuildParams(), uuid.New(), now)
		require.NoError(t, err)
		assert.Equal(t, asset.StatusAvailable, a.Status())
		assert.Equal(t, a.CreatedBy(), a.LastModifiedBy())
	})

	t.Run("名前なしNG", func(t *testing.T) {
		_, err := asset.NewAsset(builder.NewAssetBuilder().WithName("  ").BuildParams(), uuid.New(), now)
		require.ErrorIs(t, err, asset.ErrEmptyName)
	})

	t.Run("負の評価額NG", func(t *testing.T) {
		params := builder.NewAssetBuilder().BuildParams()
		v := int64(-1)
		params.ValueCents = &v
		_, err := asset.NewAsset(params, uuid.New(), now)
		require.ErrorIs(t, err, asset.ErrNegativeValue)
	})

	t.Run("空の識別子はnilに正規化", func(t *testing.T) {
		params := builder.NewAssetBuilder().WithSerial(" ").BuildParams()
		a, err := asset.NewAsset(params, uuid.New(), now)
		require.NoError(t, err)
		assert.Nil(t, a.SerialNumber())
	})
}

func TestParse(t *testing.T) {
	s, err := asset.NewStatus("checked_out")
	require.NoError(t, err)
	assert.Equal(t, asset.StatusCheckedOut, s)

	_, err = asset.NewStatus("lost")
	require.ErrorIs(t, err, asset.ErrInvalidStatus)

	a, err := asset.NewAction(" check_in ")
	require.NoError(t, err)
	assert.Equal(t, asset.ActionCheckIn, a)

	_, err = asset.NewAction("transfer")
	require.ErrorIs(t, err, asset.ErrInvalidAction)
}
