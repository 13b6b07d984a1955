//go:build unit

package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Preset", "Match"}, [][]string{{"Shoot kit", "67%"}, {"Short row"}}, 1)

	assert.Contains(t, out, "Preset")
	assert.Contains(t, out, "Shoot kit")
	assert.Contains(t, out, "67%")
	assert.NotContains(t, out, "PRESET")
	assert.NotContains(t, out, "<nil>")
	assert.Len(t, strings.Split(out, "\n"), 6, out)
	assert.Empty(t, renderTable(nil, nil))
}

func TestParseIDs(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		ids, err := parseIDs([]string{id.String()})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id}, ids)
	})

	t.Run("error: not a uuid", func(t *testing.T) {
		_, err := parseIDs([]string{id.String(), "camera-1"})
		assert.ErrorContains(t, err, "camera-1")
	})
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{{"migrate", "up"}, {"migrate", "status"}, {"token"}, {"detect"}, {"preflight"}, {"outbox", "drain"}, {"outbox", "list"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
