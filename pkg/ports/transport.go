package ports

import (
	"context"

	"github.com/aretw0/menubot/pkg/domain"
)

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks . Sender

// Sender delivers outbound messages for a session.
// Implementations must preserve call order within a session.
type Sender interface {
	Send(ctx context.Context, sessionID string, msg domain.Message) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, sessionID string, msg domain.Message) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, sessionID string, msg domain.Message) error {
	return f(ctx, sessionID, msg)
}

// TurnHandler processes one inbound turn, replying through the sender.
type TurnHandler interface {
	HandleTurn(ctx context.Context, turn domain.Turn, sender Sender) error
}
