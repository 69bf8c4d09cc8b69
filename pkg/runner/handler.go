package runner

import (
	"context"

	"github.com/aretw0/menubot/pkg/ports"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (terminal) and JSON (structured) modes.
type IOHandler interface {
	// Send presents one bot reply. It makes every handler a ports.Sender.
	ports.Sender

	// Input reads the next line from the user.
	// It returns io.EOF when the stream is exhausted.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (errors, status) that is not a bot reply.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
