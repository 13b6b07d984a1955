//go:build unit

package readstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectJobsByStatus(t *testing.T) {
	t.Run("filters by status when given", func(t *testing.T) {
		query, args, err := selectJobsByStatus("failed", 20).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, query, `WHERE ("status" = $1)`)
		assert.Contains(t, query, `ORDER BY "run_at" ASC, "id" ASC`)
		require.Len(t, args, 2)
		assert.Equal(t, "failed", args[0])
	})

	t.Run("空のステータスなら全件対象", func(t *testing.T) {
		query, args, err := selectJobsByStatus("", 5).ToSQL()
		require.NoError(t, err)

		assert.NotContains(t, query, "WHERE")
		assert.Len(t, args, 1)
	})
}

func TestToNotificationJobView(t *testing.T) {
	msg := "smtp timeout"
	row := notificationJobViewRow{
		ID:        uuid.New(),
		Kind:      "batch_processed",
		Topic:     "ledger.batch",
		Payload:   []byte(`{"succeeded":2}`),
		RunAt:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Attempts:  3,
		Status:    "failed",
		LastError: &msg,
	}

	view := toNotificationJobView(row)

	assert.Equal(t, row.ID, view.ID)
	assert.Equal(t, 3, view.Attempts)
	require.NotNil(t, view.LastError)
	assert.Equal(t, "smtp timeout", *view.LastError)
}
