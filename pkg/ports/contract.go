package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/menubot/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID)
		state.Flow = "order"
		state.Step = domain.StepInterpret
		state.Status = domain.StatusAwaitingChoice
		state.Cart = domain.NewCart()
		state.Cart.Add("Potato Salad", decimal.RequireFromString("5.99"))
		state.Cart.Add("Clam Chowder", decimal.RequireFromString("4.50"))
		state.Turns = 2

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "order", loaded.Flow)
		assert.Equal(t, domain.StepInterpret, loaded.Step)
		assert.Equal(t, domain.StatusAwaitingChoice, loaded.Status)
		assert.Equal(t, 2, loaded.Turns)
		require.NotNil(t, loaded.Cart)
		assert.Equal(t, []string{"Potato Salad", "Clam Chowder"}, loaded.Cart.Items)
		// Totals must survive serialization exactly.
		assert.True(t, loaded.Cart.Total.Equal(decimal.RequireFromString("10.49")), "got %s", loaded.Cart.Total)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Cart.Add("Tuna Sandwich", decimal.RequireFromString("6.89"))

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, again.Cart.Items, 2)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1))
		_ = store.Save(ctx, id2, domain.NewState(id2))

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
