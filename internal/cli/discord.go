package cli

import (
	"context"
	"errors"

	"github.com/aretw0/menubot/internal/config"
	"github.com/aretw0/menubot/pkg/adapters/discord"
)

// ErrMissingDiscordToken is returned when the discord command has no token.
var ErrMissingDiscordToken = errors.New("MENUBOT_DISCORD_TOKEN is required")

// RunDiscord connects the bot to Discord until SIGINT/SIGTERM.
func RunDiscord(cfg *config.Config) error {
	if cfg.DiscordToken == "" {
		return ErrMissingDiscordToken
	}
	logger := CreateLogger(cfg.Debug)
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	bot, backend, err := NewBot(sigCtx, cfg, logger, BotOptions{})
	if err != nil {
		return err
	}
	defer backend.Close()

	adapter, err := discord.New(cfg.DiscordToken, bot, discord.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := adapter.Start(sigCtx); err != nil {
		return err
	}
	defer adapter.Stop()

	<-sigCtx.Done()
	return nil
}
