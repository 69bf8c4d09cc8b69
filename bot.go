package menubot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/menubot/internal/flow"
	"github.com/aretw0/menubot/internal/logging"
	"github.com/aretw0/menubot/pkg/adapters/memory"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/menu"
	"github.com/aretw0/menubot/pkg/ports"
	"github.com/aretw0/menubot/pkg/runner"
	"github.com/aretw0/menubot/pkg/session"
)

// Bot is the turn dispatcher. It is safe for concurrent use; turns for the
// same session are serialized by the session manager.
type Bot struct {
	menu         *menu.Menu
	flow         *flow.Flow
	sessions     *session.Manager
	store        ports.StateStore
	locker       ports.DistributedLocker
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	eventNotices bool
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithMenu sets the menu (default: menu.English()).
func WithMenu(m *menu.Menu) Option {
	return func(b *Bot) {
		b.menu = m
	}
}

// WithStore sets the state store (default: in-memory).
// Ignored when WithSessionManager is used.
func WithStore(store ports.StateStore) Option {
	return func(b *Bot) {
		b.store = store
	}
}

// WithLocker enables distributed locking across replicas.
// Ignored when WithSessionManager is used.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(b *Bot) {
		b.locker = locker
	}
}

// WithSessionManager injects a preconfigured session manager.
func WithSessionManager(m *session.Manager) Option {
	return func(b *Bot) {
		b.sessions = m
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bot) {
		b.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the bot.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithEventNotices makes the bot echo a notice for non-message activity.
func WithEventNotices(enabled bool) Option {
	return func(b *Bot) {
		b.eventNotices = enabled
	}
}

// New creates a Bot.
func New(opts ...Option) *Bot {
	b := &Bot{}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.menu == nil {
		b.menu = menu.English()
	}
	b.logger = b.logger.With("locale", b.menu.Locale())

	if b.sessions == nil {
		if b.store == nil {
			b.store = memory.NewStore()
		}
		sessOpts := []session.Option{session.WithLogger(b.logger)}
		if b.locker != nil {
			sessOpts = append(sessOpts, session.WithLocker(b.locker))
		}
		b.sessions = session.NewManager(b.store, sessOpts...)
	}

	b.flow = flow.New(b.menu,
		flow.WithLifecycleHooks(b.hooks),
		flow.WithLogger(b.logger),
	)
	return b
}

// Menu returns the menu the bot serves.
func (b *Bot) Menu() *menu.Menu { return b.menu }

// Sessions returns the session manager.
func (b *Bot) Sessions() *session.Manager { return b.sessions }

// HandleTurn processes one inbound turn and replies through sender.
//
// The whole read-modify-write runs under the session lock. Store and sender
// failures are returned; in that case nothing is saved and the previous
// state stays the recovery point.
func (b *Bot) HandleTurn(ctx context.Context, turn domain.Turn, sender ports.Sender) error {
	_, _, err := b.Process(ctx, turn, sender)
	return err
}

// Process is HandleTurn returning the state as saved after the turn and
// what the turn changed. The diff is nil when nothing changed.
func (b *Bot) Process(ctx context.Context, turn domain.Turn, sender ports.Sender) (*domain.State, *domain.StateDiff, error) {
	if turn.SessionID == "" {
		return nil, nil, domain.ErrMissingSession
	}
	log := logging.ForSession(b.logger, turn.SessionID)

	if b.hooks.OnTurn != nil {
		b.hooks.OnTurn(ctx, &domain.TurnEvent{
			EventBase: domain.EventBase{Type: domain.EventTurn, SessionID: turn.SessionID, Timestamp: time.Now()},
			Kind:      turn.Kind,
		})
	}

	var before *domain.State
	state, err := b.sessions.Update(ctx, turn.SessionID, func(ctx context.Context, st *domain.State) error {
		before = st.Snapshot()
		st.Turns++
		tc := &turnContext{sessionID: turn.SessionID, sender: sender}

		if !turn.IsMessage() {
			log.Debug("non-message activity", "kind", turn.Kind)
			if b.eventNotices {
				return tc.Reply(ctx, domain.Message{Text: b.menu.EventText(string(turn.Kind))})
			}
			return nil
		}
		return b.dispatch(ctx, st, tc, turn.Text)
	})
	if err != nil {
		log.Error("turn failed", "err", err)
		return nil, nil, fmt.Errorf("turn failed for session %s: %w", turn.SessionID, err)
	}

	diff := domain.Diff(before, state)
	if diff != nil {
		log.Debug("turn applied", "flow", state.Flow, "step", state.Step, "status", state.Status, "diff", diff)
	}
	return state, diff, nil
}

func (b *Bot) dispatch(ctx context.Context, st *domain.State, tc *turnContext, text string) error {
	input, err := runner.SanitizeInput(text)
	if err != nil {
		// Oversized or malformed input is treated as an unrecognized choice.
		b.logger.Warn("rejected input", "session_id", st.SessionID, "err", err)
		input = ""
	}

	res, err := b.flow.Continue(ctx, st, tc, input)
	if err != nil {
		return err
	}

	switch res.Status {
	case domain.TurnComplete:
		if res.Result.IsCancelled() {
			return tc.Reply(ctx, domain.Message{Text: b.menu.Text().OrderCancelled})
		}
		return tc.Reply(ctx, domain.Message{Text: b.menu.OrderTotalText(res.Result.Cart.Total)})

	case domain.TurnEmpty:
		if tc.responded {
			return nil
		}
		if err := tc.Reply(ctx, domain.Message{Text: b.menu.Text().Greeting}); err != nil {
			return err
		}
		st.Reset()
		_, err := b.flow.Begin(ctx, st, tc, nil)
		return err
	}
	return nil
}

// turnContext scopes replies to the turn's session and records whether
// anything has been sent yet.
type turnContext struct {
	sessionID string
	sender    ports.Sender
	responded bool
}

func (tc *turnContext) Reply(ctx context.Context, msg domain.Message) error {
	if err := tc.sender.Send(ctx, tc.sessionID, msg); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	tc.responded = true
	return nil
}
