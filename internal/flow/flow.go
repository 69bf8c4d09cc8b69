// Package flow implements the ordering waterfall.
//
// The waterfall has two steps. The prompt step shows the menu and suspends.
// The interpret step consumes the next turn's choice and either re-enters the
// prompt (carrying the cart forward) or ends the flow with an Outcome.
// Suspension is explicit: everything needed to resume lives in domain.State.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/menubot/internal/logging"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/menu"
)

// Name identifies the ordering flow in persisted state.
const Name = "order"

// Replier sends a message back to the conversation being processed.
type Replier interface {
	Reply(ctx context.Context, msg domain.Message) error
}

// Flow is the ordering waterfall bound to one menu.
type Flow struct {
	menu   *menu.Menu
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Flow) {
		f.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates the ordering flow for the given menu.
func New(m *menu.Menu, opts ...Option) *Flow {
	f := &Flow{
		menu:   m,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Menu returns the menu the flow was built with.
func (f *Flow) Menu() *menu.Menu { return f.menu }

// Begin starts (or re-enters) the prompt step.
// A carried cart is adopted only if it holds something; otherwise a fresh
// cart is created.
func (f *Flow) Begin(ctx context.Context, st *domain.State, out Replier, carried *domain.Cart) (domain.TurnResult, error) {
	cart := domain.NewCart()
	if carried.Carried() {
		cart = carried.Clone()
	}
	st.Flow = Name
	st.Step = domain.StepPrompt
	st.Cart = cart
	return f.prompt(ctx, st, out, f.menu.Text().Prompt)
}

// Continue resumes a suspended flow with the turn's input.
// It reports TurnEmpty when no flow is active.
func (f *Flow) Continue(ctx context.Context, st *domain.State, out Replier, input string) (domain.TurnResult, error) {
	if !st.Active() {
		return domain.TurnResult{Status: domain.TurnEmpty}, nil
	}
	if st.Flow != Name {
		f.logger.Warn("discarding unknown flow", "session_id", st.SessionID, "flow", st.Flow)
		st.Reset()
		return domain.TurnResult{Status: domain.TurnEmpty}, nil
	}

	switch st.Step {
	case domain.StepPrompt:
		// Saved before the prompt went out; show it now.
		return f.Begin(ctx, st, out, st.Cart)
	case domain.StepInterpret:
		choice, ok := f.menu.Recognize(input)
		if !ok {
			f.logger.Debug("unrecognized choice", "session_id", st.SessionID, "flow", Name, "input", input)
			f.emitInvalid(ctx, st, input)
			return f.prompt(ctx, st, out, f.menu.Text().Retry)
		}
		return f.interpret(ctx, st, out, choice)
	default:
		f.logger.Warn("discarding flow at unknown step", "session_id", st.SessionID, "flow", Name, "step", st.Step)
		st.Reset()
		return domain.TurnResult{Status: domain.TurnEmpty}, nil
	}
}

func (f *Flow) interpret(ctx context.Context, st *domain.State, out Replier, choice string) (domain.TurnResult, error) {
	cart := st.Cart
	if cart == nil {
		cart = domain.NewCart()
	}
	text := f.menu.Text()
	cmd := f.menu.ResolveCommand(choice)

	f.logger.Debug("choice", "session_id", st.SessionID, "flow", Name, "choice", choice, "command", cmd.String())

	switch cmd {
	case menu.CommandCheckout:
		if cart.IsEmpty() {
			if err := f.send(ctx, out, text.EmptyCart); err != nil {
				return domain.TurnResult{}, err
			}
			return f.replace(ctx, st, out, nil)
		}
		if err := f.send(ctx, out, text.Processed); err != nil {
			return domain.TurnResult{}, err
		}
		if f.hooks.OnCheckout != nil {
			f.hooks.OnCheckout(ctx, domain.NewCartEvent(domain.EventCheckout, st.SessionID, "", cart))
		}
		return f.end(st, &domain.Outcome{Cart: cart}), nil

	case menu.CommandCancel:
		if err := f.send(ctx, out, text.Cancelled); err != nil {
			return domain.TurnResult{}, err
		}
		if f.hooks.OnCancel != nil {
			f.hooks.OnCancel(ctx, domain.NewCartEvent(domain.EventCancel, st.SessionID, "", cart))
		}
		return f.end(st, domain.CancelledOutcome()), nil

	case menu.CommandMoreInfo:
		if err := f.send(ctx, out, f.menu.InfoText()); err != nil {
			return domain.TurnResult{}, err
		}
		return f.replace(ctx, st, out, cart)

	case menu.CommandHelp:
		if err := f.send(ctx, out, text.Help); err != nil {
			return domain.TurnResult{}, err
		}
		return f.replace(ctx, st, out, cart)
	}

	item, ok := f.menu.Lookup(choice)
	if !ok {
		f.emitInvalid(ctx, st, choice)
		if err := f.send(ctx, out, f.menu.InvalidText(choice)); err != nil {
			return domain.TurnResult{}, err
		}
		return f.replace(ctx, st, out, cart)
	}

	cart.Add(item.Description, item.Price)
	f.logger.Info("item added", "session_id", st.SessionID, "item", item.Description, "total", cart.FormatTotal())
	if f.hooks.OnItemAdded != nil {
		f.hooks.OnItemAdded(ctx, domain.NewCartEvent(domain.EventItemAdded, st.SessionID, item.Description, cart))
	}
	if err := f.send(ctx, out, f.menu.AddedText(item, cart.Total)); err != nil {
		return domain.TurnResult{}, err
	}
	return f.replace(ctx, st, out, cart)
}

// replace restarts the waterfall at the prompt step with the given carry-over.
func (f *Flow) replace(ctx context.Context, st *domain.State, out Replier, carried *domain.Cart) (domain.TurnResult, error) {
	return f.Begin(ctx, st, out, carried)
}

func (f *Flow) prompt(ctx context.Context, st *domain.State, out Replier, text string) (domain.TurnResult, error) {
	msg := domain.Message{Text: text, Choices: f.menu.Choices()}
	if err := out.Reply(ctx, msg); err != nil {
		return domain.TurnResult{}, fmt.Errorf("failed to send prompt: %w", err)
	}
	st.Step = domain.StepInterpret
	st.Status = domain.StatusAwaitingChoice
	return domain.TurnResult{Status: domain.TurnWaiting}, nil
}

func (f *Flow) end(st *domain.State, outcome *domain.Outcome) domain.TurnResult {
	st.Flow = ""
	st.Step = domain.StepPrompt
	st.Cart = nil
	st.Status = domain.StatusCompleted
	return domain.TurnResult{Status: domain.TurnComplete, Result: outcome}
}

func (f *Flow) send(ctx context.Context, out Replier, text string) error {
	if err := out.Reply(ctx, domain.Message{Text: text}); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

func (f *Flow) emitInvalid(ctx context.Context, st *domain.State, input string) {
	if f.hooks.OnInvalidSelection == nil {
		return
	}
	f.hooks.OnInvalidSelection(ctx, &domain.SelectionEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventInvalidSelection, SessionID: st.SessionID},
		Input:     input,
	})
}
