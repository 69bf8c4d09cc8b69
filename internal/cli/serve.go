package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/internal/config"
	httpadapter "github.com/aretw0/menubot/pkg/adapters/http"
	"github.com/aretw0/menubot/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ShutdownTimeout bounds graceful shutdown of long-running servers.
const ShutdownTimeout = 5 * time.Second

// newRegistry returns a registry with the process collectors and the bot
// metrics registered.
func newRegistry() (*prometheus.Registry, *observability.Metrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg, observability.NewMetrics(reg)
}

// RunServe serves the HTTP API on cfg.Addr until SIGINT/SIGTERM.
func RunServe(cfg *config.Config) error {
	logger := CreateLogger(cfg.Debug)
	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	reg, metrics := newRegistry()
	bot, backend, err := NewBot(sigCtx, cfg, logger, BotOptions{Metrics: metrics})
	if err != nil {
		return err
	}
	defer backend.Close()

	opts := []httpadapter.Option{
		httpadapter.WithLogger(logger),
		httpadapter.WithMetrics(reg),
		httpadapter.WithVersion(menubot.Version),
	}
	if cfg.JWTSecret != "" {
		opts = append(opts, httpadapter.WithJWTSecret([]byte(cfg.JWTSecret)))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpadapter.NewHandler(bot, opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serveUntilDone(sigCtx, srv, logger)
}

func serveUntilDone(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Warn("menubot server listening", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		logger.Warn("menubot server stopped")
		return nil
	}
}
