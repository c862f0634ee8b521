package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/aretw0/stepwise/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScenario() domain.Scenario {
	return domain.Scenario{
		Name:      "components",
		Algorithm: domain.AlgorithmUnionFind,
		Input: map[string]any{
			"n":     5,
			"edges": []any{[]any{0, 1}, []any{3, 4}},
		},
	}
}

// RunSessionStoreContract is a reusable test suite that verifies if an adapter
// complies with ports.SessionStore.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID, sampleScenario())
		sess.Position = 3

		require.NoError(t, store.Save(ctx, sessionID, sess), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, 3, loaded.Position)
		assert.Equal(t, domain.AlgorithmUnionFind, loaded.Scenario.Algorithm)
		assert.Equal(t, "components", loaded.Scenario.Name)
		// JSON-backed stores turn numbers into float64; only presence is part of the contract.
		assert.NotNil(t, loaded.Scenario.Input["n"])
		assert.Len(t, loaded.Scenario.Input["edges"], 2)
		assert.WithinDuration(t, sess.CreatedAt, loaded.CreatedAt, time.Second)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		sess := domain.NewSession(sessionID, sampleScenario())
		sess.Position = 4
		require.NoError(t, store.Save(ctx, sessionID, sess))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, 4, loaded.Position)
	})

	t.Run("Loaded sessions are isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Position = 99
		loaded.Scenario.Input["n"] = 1000

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotEqual(t, 99, again.Position)
		assert.NotEqual(t, 1000, again.Scenario.Input["n"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession(sessionID, sampleScenario())))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1, sampleScenario())))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2, sampleScenario())))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
