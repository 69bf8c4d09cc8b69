package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/ports"
)

// Observer receives the outcome of each store call.
type Observer interface {
	ObserveStore(op string, started time.Time, err error)
}

type instrumented struct {
	next     ports.StateStore
	observer Observer
	logger   *slog.Logger
}

// Instrument records latency for every call and logs failures.
// A missing session on Load is not treated as a failure.
func Instrument(observer Observer, logger *slog.Logger) Middleware {
	return func(next ports.StateStore) ports.StateStore {
		return &instrumented{next: next, observer: observer, logger: logger}
	}
}

func (m *instrumented) done(op, sessionID string, started time.Time, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		err = nil
	}
	if m.observer != nil {
		m.observer.ObserveStore(op, started, err)
	}
	if err != nil && m.logger != nil {
		m.logger.Error("store operation failed", "op", op, "session_id", sessionID, "err", err)
	}
}

func (m *instrumented) Save(ctx context.Context, sessionID string, state *domain.State) error {
	started := time.Now()
	err := m.next.Save(ctx, sessionID, state)
	m.done("save", sessionID, started, err)
	return err
}

func (m *instrumented) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	started := time.Now()
	st, err := m.next.Load(ctx, sessionID)
	m.done("load", sessionID, started, err)
	return st, err
}

func (m *instrumented) Delete(ctx context.Context, sessionID string) error {
	started := time.Now()
	err := m.next.Delete(ctx, sessionID)
	m.done("delete", sessionID, started, err)
	return err
}

func (m *instrumented) List(ctx context.Context) ([]string, error) {
	started := time.Now()
	ids, err := m.next.List(ctx)
	m.done("list", "", started, err)
	return ids, err
}
