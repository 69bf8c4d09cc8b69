// Package discord connects a bot to Discord text channels.
//
// Each author in each channel is a separate conversation; the session id is
// "channelID:authorID". Choices are rendered as a numbered list, and users
// answer with the number or the label.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/menubot/internal/logging"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/ports"
	"github.com/bwmarrin/discordgo"
)

// DefaultTurnTimeout bounds the processing of one inbound message.
const DefaultTurnTimeout = 10 * time.Second

// SendFunc posts content to a channel.
type SendFunc func(channelID, content string) error

// Adapter relays Discord messages to a TurnHandler.
type Adapter struct {
	bot     ports.TurnHandler
	session *discordgo.Session
	send    SendFunc
	logger  *slog.Logger
	timeout time.Duration
	typing  bool
	base    context.Context
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTurnTimeout overrides DefaultTurnTimeout.
func WithTurnTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithTypingActivity forwards typing indicators as typing turns.
func WithTypingActivity(enabled bool) Option {
	return func(a *Adapter) {
		a.typing = enabled
	}
}

// New creates an Adapter backed by a bot-token Discord session.
func New(token string, bot ports.TurnHandler, opts ...Option) (*Adapter, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMessageTyping |
		discordgo.IntentsDirectMessageTyping

	a := NewWithSender(bot, func(channelID, content string) error {
		_, err := session.ChannelMessageSend(channelID, content)
		return err
	}, opts...)
	a.session = session

	session.AddHandler(a.onReady)
	session.AddHandler(a.onMessageCreate)
	session.AddHandler(a.onTypingStart)
	return a, nil
}

// NewWithSender creates an Adapter that posts through send instead of a
// live session.
func NewWithSender(bot ports.TurnHandler, send SendFunc, opts ...Option) *Adapter {
	a := &Adapter{
		bot:     bot,
		send:    send,
		logger:  logging.NewNop(),
		timeout: DefaultTurnTimeout,
		base:    context.Background(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start opens the gateway connection. Turns are processed under ctx.
func (a *Adapter) Start(ctx context.Context) error {
	a.base = ctx
	if a.session == nil {
		return nil
	}
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	a.logger.Info("discord adapter running")
	return nil
}

// Stop closes the gateway connection.
func (a *Adapter) Stop() error {
	if a.session == nil {
		return nil
	}
	return a.session.Close()
}

// SessionID is the conversation key for an author in a channel.
func SessionID(channelID, authorID string) string {
	return channelID + ":" + authorID
}

// HandleMessage processes one Discord message. Messages from bots and
// messages without content are ignored.
func (a *Adapter) HandleMessage(ctx context.Context, m *discordgo.Message) error {
	if m == nil || m.Author == nil || m.Author.Bot {
		return nil
	}
	content := strings.TrimSpace(m.Content)
	if content == "" {
		return nil
	}
	turn := domain.Turn{
		Kind:      domain.ActivityMessage,
		Text:      content,
		SessionID: SessionID(m.ChannelID, m.Author.ID),
	}
	return a.dispatch(ctx, m.ChannelID, turn)
}

// HandleTyping forwards a typing indicator when enabled.
func (a *Adapter) HandleTyping(ctx context.Context, t *discordgo.TypingStart) error {
	if !a.typing || t == nil {
		return nil
	}
	turn := domain.Turn{
		Kind:      domain.ActivityTyping,
		SessionID: SessionID(t.ChannelID, t.UserID),
	}
	return a.dispatch(ctx, t.ChannelID, turn)
}

func (a *Adapter) dispatch(ctx context.Context, channelID string, turn domain.Turn) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.bot.HandleTurn(ctx, turn, channelSender{channelID: channelID, send: a.send})
}

func (a *Adapter) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	a.logger.Info("connected to discord", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (a *Adapter) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if err := a.HandleMessage(a.base, m.Message); err != nil {
		a.logger.Error("discord turn failed", "channel_id", m.ChannelID, "err", err)
	}
}

func (a *Adapter) onTypingStart(_ *discordgo.Session, t *discordgo.TypingStart) {
	if err := a.HandleTyping(a.base, t); err != nil {
		a.logger.Error("discord typing turn failed", "channel_id", t.ChannelID, "err", err)
	}
}

// channelSender posts replies for one turn into its channel.
type channelSender struct {
	channelID string
	send      SendFunc
}

func (c channelSender) Send(_ context.Context, _ string, msg domain.Message) error {
	return c.send(c.channelID, Format(msg))
}

// Format renders a message with its choices as a numbered list.
func Format(msg domain.Message) string {
	if !msg.IsPrompt() {
		return msg.Text
	}
	var b strings.Builder
	b.WriteString(msg.Text)
	for i, choice := range msg.Choices {
		fmt.Fprintf(&b, "\n%d. %s", i+1, choice)
	}
	return b.String()
}
