package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/menu"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	msgs []domain.Message
	err  error
}

func (r *recorder) Reply(ctx context.Context, msg domain.Message) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recorder) texts() []string {
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Text
	}
	return out
}

func (r *recorder) reset() { r.msgs = nil }

const (
	potato  = "Potato Salad - $5.99"
	tuna    = "Tuna Sandwich - $6.89"
	chowder = "Clam Chowder - $4.50"
)

// started returns a flow suspended at the interpret step with an empty cart.
func started(t *testing.T) (*Flow, *domain.State, *recorder) {
	t.Helper()
	f := New(menu.English())
	st := domain.NewState("s1")
	out := &recorder{}
	res, err := f.Begin(context.Background(), st, out, nil)
	require.NoError(t, err)
	require.Equal(t, domain.TurnWaiting, res.Status)
	out.reset()
	return f, st, out
}

func turn(t *testing.T, f *Flow, st *domain.State, out *recorder, input string) domain.TurnResult {
	t.Helper()
	res, err := f.Continue(context.Background(), st, out, input)
	require.NoError(t, err)
	return res
}

func TestBegin_PromptsWithChoices(t *testing.T) {
	f := New(menu.English())
	st := domain.NewState("s1")
	out := &recorder{}

	res, err := f.Begin(context.Background(), st, out, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.TurnWaiting, res.Status)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, "What would you like for dinner?", out.msgs[0].Text)
	assert.Equal(t, menu.English().Choices(), out.msgs[0].Choices)
	assert.Equal(t, Name, st.Flow)
	assert.Equal(t, domain.StepInterpret, st.Step)
	assert.Equal(t, domain.StatusAwaitingChoice, st.Status)
	assert.True(t, st.Cart.IsEmpty())
}

func TestBegin_AdoptsCarriedCartOnlyWhenGenuine(t *testing.T) {
	f := New(menu.English())
	out := &recorder{}

	carried := domain.NewCart()
	carried.Add("Clam Chowder", decimal.RequireFromString("4.50"))

	st := domain.NewState("s1")
	_, err := f.Begin(context.Background(), st, out, carried)
	require.NoError(t, err)
	assert.Equal(t, []string{"Clam Chowder"}, st.Cart.Items)
	assert.NotSame(t, carried, st.Cart)

	st = domain.NewState("s2")
	_, err = f.Begin(context.Background(), st, out, domain.NewCart())
	require.NoError(t, err)
	assert.True(t, st.Cart.IsEmpty())
}

func TestContinue_NoActiveFlow(t *testing.T) {
	f := New(menu.English())
	out := &recorder{}
	res, err := f.Continue(context.Background(), domain.NewState("s1"), out, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.TurnEmpty, res.Status)
	assert.Empty(t, out.msgs)
}

func TestScenarioA_SelectItem(t *testing.T) {
	f, st, out := started(t)

	res := turn(t, f, st, out, tuna)

	assert.Equal(t, domain.TurnWaiting, res.Status)
	assert.Equal(t, []string{"Tuna Sandwich"}, st.Cart.Items)
	assert.Equal(t, "6.89", st.Cart.FormatTotal())
	require.Len(t, out.msgs, 2)
	assert.Contains(t, out.msgs[0].Text, "6.89")
	assert.True(t, out.msgs[1].IsPrompt())
}

func TestScenarioB_CheckoutWithItems(t *testing.T) {
	f, st, out := started(t)
	turn(t, f, st, out, chowder)
	out.reset()

	res := turn(t, f, st, out, "Process order")

	require.Equal(t, domain.TurnComplete, res.Status)
	require.NotNil(t, res.Result)
	assert.False(t, res.Result.IsCancelled())
	assert.Equal(t, []string{"Clam Chowder"}, res.Result.Cart.Items)
	assert.Equal(t, "4.50", res.Result.Cart.FormatTotal())
	assert.Equal(t, []string{"Your order has been processed."}, out.texts())

	assert.False(t, st.Active())
	assert.Nil(t, st.Cart)
	assert.Equal(t, domain.StatusCompleted, st.Status)
}

func TestScenarioC_CheckoutEmptyCartRestarts(t *testing.T) {
	f, st, out := started(t)

	res := turn(t, f, st, out, "process order")

	assert.Equal(t, domain.TurnWaiting, res.Status)
	assert.True(t, st.Active())
	assert.True(t, st.Cart.IsEmpty())
	require.Len(t, out.msgs, 2)
	assert.Equal(t, "Your cart is empty. Please add items to your cart.", out.msgs[0].Text)
	assert.True(t, out.msgs[1].IsPrompt())
}

func TestScenarioD_CancelAlwaysTerminates(t *testing.T) {
	for _, picks := range [][]string{nil, {potato}, {potato, tuna, chowder}} {
		f, st, out := started(t)
		for _, p := range picks {
			turn(t, f, st, out, p)
		}
		out.reset()

		res := turn(t, f, st, out, "Cancel")

		require.Equal(t, domain.TurnComplete, res.Status)
		assert.True(t, res.Result.IsCancelled())
		assert.Nil(t, res.Result.Cart)
		assert.Equal(t, []string{"Your order has been canceled."}, out.texts())
	}
}

func TestScenarioE_TwoSelections(t *testing.T) {
	f, st, out := started(t)

	turn(t, f, st, out, potato)
	turn(t, f, st, out, chowder)

	assert.Equal(t, []string{"Potato Salad", "Clam Chowder"}, st.Cart.Items)
	assert.True(t, st.Cart.Total.Equal(decimal.RequireFromString("10.49")))
}

func TestCartInvariant_AnyOrder(t *testing.T) {
	m := menu.English()
	orders := [][]string{
		{potato, tuna, chowder, tuna},
		{chowder, chowder, potato},
		{tuna},
	}
	for _, picks := range orders {
		f, st, out := started(t)
		want := decimal.Zero
		for _, p := range picks {
			turn(t, f, st, out, p)
			item, _ := m.Lookup(p)
			want = want.Add(item.Price)
		}
		assert.Len(t, st.Cart.Items, len(picks))
		assert.True(t, st.Cart.Total.Equal(want), "want %s got %s", want, st.Cart.Total)
	}
}

func TestInfoCommandsDoNotMutateCart(t *testing.T) {
	f, st, out := started(t)
	turn(t, f, st, out, potato)
	before := st.Cart.Clone()

	for _, cmd := range []string{"More info", "Help", "more info"} {
		out.reset()
		res := turn(t, f, st, out, cmd)
		assert.Equal(t, domain.TurnWaiting, res.Status)
		assert.Equal(t, before.Items, st.Cart.Items)
		assert.True(t, before.Total.Equal(st.Cart.Total))
		require.Len(t, out.msgs, 2)
		assert.True(t, out.msgs[1].IsPrompt())
	}
	assert.Contains(t, f.Menu().InfoText(), "330 calories")
}

func TestNumberedChoice(t *testing.T) {
	f, st, out := started(t)
	turn(t, f, st, out, "3")
	assert.Equal(t, []string{"Clam Chowder"}, st.Cart.Items)
}

func TestUnrecognizedInputRepromptsWithCartUnchanged(t *testing.T) {
	var invalid []string
	f := New(menu.English(), WithLifecycleHooks(domain.LifecycleHooks{
		OnInvalidSelection: func(ctx context.Context, ev *domain.SelectionEvent) { invalid = append(invalid, ev.Input) },
	}))
	st := domain.NewState("s1")
	out := &recorder{}
	_, err := f.Begin(context.Background(), st, out, nil)
	require.NoError(t, err)
	turn(t, f, st, out, potato)
	out.reset()

	res := turn(t, f, st, out, "pizza")

	assert.Equal(t, domain.TurnWaiting, res.Status)
	assert.Equal(t, []string{"Potato Salad"}, st.Cart.Items)
	require.Len(t, out.msgs, 1)
	assert.Equal(t, "Please choose an option from the list.", out.msgs[0].Text)
	assert.True(t, out.msgs[0].IsPrompt())
	assert.Equal(t, []string{"pizza"}, invalid)
}

func TestRecognizedChoiceWithoutMenuEntry(t *testing.T) {
	// A command label whose pattern never matches leaves a choice that is
	// neither a command nor an item.
	def := menu.English().Definition()
	def.Commands.Help = menu.CommandEntry{Label: "Assist", Pattern: "^never$"}
	f := New(menu.MustNew(def))
	st := domain.NewState("s1")
	out := &recorder{}
	_, err := f.Begin(context.Background(), st, out, nil)
	require.NoError(t, err)
	turn(t, f, st, out, potato)
	out.reset()

	res := turn(t, f, st, out, "Assist")

	assert.Equal(t, domain.TurnWaiting, res.Status)
	assert.Equal(t, []string{"Potato Salad"}, st.Cart.Items)
	require.Len(t, out.msgs, 2)
	assert.Equal(t, `Sorry, "Assist" is not on the menu.`, out.msgs[0].Text)
}

func TestHooks(t *testing.T) {
	var added, checkouts, cancels int
	hooks := domain.LifecycleHooks{
		OnItemAdded: func(ctx context.Context, ev *domain.CartEvent) { added++ },
		OnCheckout: func(ctx context.Context, ev *domain.CartEvent) {
			checkouts++
			assert.Equal(t, "12.88", ev.Total.StringFixed(2))
		},
		OnCancel: func(ctx context.Context, ev *domain.CartEvent) { cancels++ },
	}
	f := New(menu.English(), WithLifecycleHooks(hooks))
	st := domain.NewState("s1")
	out := &recorder{}
	_, err := f.Begin(context.Background(), st, out, nil)
	require.NoError(t, err)

	turn(t, f, st, out, potato)
	turn(t, f, st, out, tuna)
	turn(t, f, st, out, "Process order")

	assert.Equal(t, 2, added)
	assert.Equal(t, 1, checkouts)
	assert.Equal(t, 0, cancels)
}

func TestStalePromptStepShowsPrompt(t *testing.T) {
	f := New(menu.English())
	st := domain.NewState("s1")
	st.Flow = Name
	st.Step = domain.StepPrompt
	out := &recorder{}

	res := turn(t, f, st, out, "whatever")
	assert.Equal(t, domain.TurnWaiting, res.Status)
	require.Len(t, out.msgs, 1)
	assert.True(t, out.msgs[0].IsPrompt())
}

func TestUnknownFlowIsDiscarded(t *testing.T) {
	f := New(menu.English())
	st := domain.NewState("s1")
	st.Flow = "survey"
	st.Step = domain.StepInterpret

	res := turn(t, f, st, &recorder{}, "1")
	assert.Equal(t, domain.TurnEmpty, res.Status)
	assert.False(t, st.Active())
}

func TestReplyFailureIsReturned(t *testing.T) {
	f, st, _ := started(t)
	boom := errors.New("transport down")

	_, err := f.Continue(context.Background(), st, &recorder{err: boom}, potato)
	assert.ErrorIs(t, err, boom)
}
