package ports

import (
	"context"

	"github.com/aretw0/menubot/pkg/domain"
)

// StateStore defines the interface for persisting dialog state.
// A session's continuation (active flow, step, cart) is written once per turn
// and restored on the next one.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns all active session IDs.
	List(ctx context.Context) ([]string, error)
}
