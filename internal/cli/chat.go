package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/internal/config"
	"github.com/aretw0/menubot/internal/presentation/tui"
	"github.com/aretw0/menubot/pkg/runner"
	"github.com/google/uuid"
)

// ChatOptions configure an interactive or piped conversation.
type ChatOptions struct {
	SessionID string
	JSON      bool
	Headless  bool
	Fresh     bool
	// Pretty enables the banner and markdown rendering.
	Pretty bool

	In  io.Reader
	Out io.Writer
}

// RunChat talks to the bot over stdio until EOF, exit/quit or a signal.
func RunChat(cfg *config.Config, opts ChatOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	quiet := opts.JSON || opts.Headless
	logger := CreateLogger(cfg.Debug)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	bot, backend, err := NewBot(sigCtx, cfg, logger, BotOptions{})
	if err != nil {
		return err
	}
	defer backend.Close()

	if opts.Fresh {
		if err := bot.Sessions().Delete(sigCtx, opts.SessionID); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	if opts.Pretty && !quiet {
		tui.PrintBanner(opts.Out, menubot.Version)
	}
	if !quiet {
		printSystemMessage(opts.Out, "Session '%s' active. Type 'exit' to leave.", opts.SessionID)
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.In, opts.Out)
	} else {
		var textOpts []runner.TextHandlerOption
		if opts.Pretty {
			textOpts = append(textOpts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
		}
		handler = runner.NewTextHandler(opts.In, opts.Out, textOpts...)
	}

	r := runner.New(bot,
		runner.WithLogger(logger),
		runner.WithSessionID(opts.SessionID),
		runner.WithHeadless(opts.Headless || opts.JSON),
		runner.WithInputHandler(handler),
	)
	runErr := r.Run(sigCtx)

	if !quiet && sigCtx.Signal() != nil {
		fmt.Fprintln(opts.Out)
		printSystemMessage(opts.Out, "Interrupted. Resume with --session %s", opts.SessionID)
	}
	return handleExecutionError(runErr)
}
