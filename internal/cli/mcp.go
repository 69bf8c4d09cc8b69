package cli

import (
	"context"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/internal/config"
	"github.com/aretw0/menubot/pkg/adapters/mcp"
)

// RunMCP serves the bot as an MCP server, on stdio or over SSE when addr
// is set.
func RunMCP(cfg *config.Config, addr, baseURL string) error {
	logger := CreateLogger(cfg.Debug)
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	bot, backend, err := NewBot(sigCtx, cfg, logger, BotOptions{})
	if err != nil {
		return err
	}
	defer backend.Close()

	srv := mcp.NewServer(bot, menubot.Version, mcp.WithLogger(logger))
	if addr == "" {
		return handleExecutionError(srv.ServeStdio())
	}
	return srv.ServeSSE(sigCtx, addr, baseURL)
}
