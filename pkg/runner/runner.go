package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/menubot/internal/logging"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/ports"
)

// exitWords end the loop without sending a turn.
var exitWords = map[string]bool{"exit": true, "quit": true}

// Runner reads lines from a handler and feeds them to a TurnHandler as
// message turns for a single session.
type Runner struct {
	// Bot processes each turn.
	Bot ports.TurnHandler

	// Handler is the strategy for IO. Defaults to a TextHandler on stdio.
	Handler IOHandler

	// SessionID identifies the conversation. Required.
	SessionID string

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Headless suppresses the opening conversation_update turn.
	Headless bool
}

// New creates a Runner for bot.
func New(bot ports.TurnHandler, opts ...Option) *Runner {
	r := &Runner{
		Bot:    bot,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops until the input ends, the user types exit/quit or ctx is done.
// A cancelled context is a clean stop, not an error.
func (r *Runner) Run(ctx context.Context) error {
	if r.Bot == nil {
		return errors.New("runner: no bot configured")
	}
	if r.SessionID == "" {
		return domain.ErrMissingSession
	}
	handler := r.resolveHandler()
	log := logging.ForSession(r.Logger, r.SessionID)

	if !r.Headless {
		// Mirror a channel's "member joined" activity before the first message.
		if err := r.turn(ctx, handler, domain.ActivityConversationUpdate, ""); err != nil {
			return err
		}
	}

	for {
		text, err := handler.Input(ctx)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				log.Debug("input closed")
				return nil
			case ctx.Err() != nil:
				log.Debug("runner interrupted", "err", ctx.Err())
				return nil
			case errors.Is(err, ErrInputTooLarge), errors.Is(err, ErrInvalidUTF8):
				if sysErr := handler.SystemOutput(ctx, err.Error()); sysErr != nil {
					return sysErr
				}
				continue
			default:
				return fmt.Errorf("input error: %w", err)
			}
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if exitWords[strings.ToLower(text)] {
			log.Debug("user exit")
			return nil
		}

		if err := r.turn(ctx, handler, domain.ActivityMessage, text); err != nil {
			return err
		}
	}
}

func (r *Runner) turn(ctx context.Context, handler IOHandler, kind domain.ActivityKind, text string) error {
	turn := domain.Turn{Kind: kind, Text: text, SessionID: r.SessionID}
	if err := r.Bot.HandleTurn(ctx, turn, handler); err != nil {
		return fmt.Errorf("turn error: %w", err)
	}
	return nil
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	return r.Handler
}
