package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartOf(total string, items ...string) *Cart {
	return &Cart{Items: items, Total: decimal.RequireFromString(total)}
}

func TestDiff(t *testing.T) {
	t.Run("Initial Load (Old is Nil)", func(t *testing.T) {
		next := &State{SessionID: "s1", Flow: "order", Step: StepInterpret, Status: StatusAwaitingChoice, Cart: cartOf("5.99", "Potato Salad")}
		d := Diff(nil, next)
		require.NotNil(t, d)
		assert.Equal(t, "order", *d.Flow)
		assert.Equal(t, StepInterpret, *d.Step)
		assert.Equal(t, StatusAwaitingChoice, *d.Status)
		assert.Equal(t, []string{"Potato Salad"}, d.Cart.Appended)
		assert.Equal(t, "5.99", d.Cart.Total)
	})

	t.Run("No Changes", func(t *testing.T) {
		s := &State{SessionID: "s1", Flow: "order", Step: StepInterpret, Status: StatusAwaitingChoice, Cart: cartOf("5.99", "Potato Salad")}
		assert.Nil(t, Diff(s, s.Snapshot()))
	})

	t.Run("Item Appended", func(t *testing.T) {
		old := &State{SessionID: "s1", Flow: "order", Step: StepInterpret, Status: StatusAwaitingChoice, Cart: cartOf("5.99", "Potato Salad")}
		next := old.Snapshot()
		next.Cart.Add("Clam Chowder", decimal.RequireFromString("4.50"))

		d := Diff(old, next)
		require.NotNil(t, d)
		assert.Nil(t, d.Flow)
		assert.Nil(t, d.Status)
		assert.Equal(t, []string{"Clam Chowder"}, d.Cart.Appended)
		assert.False(t, d.Cart.Reset)
		assert.Equal(t, "10.49", d.Cart.Total)
	})

	t.Run("Flow Completed Clears Cart", func(t *testing.T) {
		old := &State{SessionID: "s1", Flow: "order", Step: StepInterpret, Status: StatusAwaitingChoice, Cart: cartOf("5.99", "Potato Salad")}
		next := &State{SessionID: "s1", Status: StatusCompleted}

		d := Diff(old, next)
		require.NotNil(t, d)
		assert.Equal(t, "", *d.Flow)
		assert.Equal(t, StatusCompleted, *d.Status)
		assert.True(t, d.Cart.Reset)
		assert.Equal(t, "0.00", d.Cart.Total)
	})

	t.Run("JSON omits unchanged fields", func(t *testing.T) {
		old := &State{SessionID: "s1", Flow: "order", Step: StepInterpret, Status: StatusAwaitingChoice}
		next := old.Snapshot()
		next.Status = StatusCompleted

		b, err := json.Marshal(Diff(old, next))
		require.NoError(t, err)
		assert.JSONEq(t, `{"session_id":"s1","status":"completed"}`, string(b))
	})
}
