package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/menubot/internal/config"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/aretw0/menubot/pkg/ports"
)

// withStore opens the configured store for a one-shot command.
func withStore(ctx context.Context, cfg *config.Config, fn func(ports.StateStore) error) error {
	backend, err := OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	return fn(backend.Store)
}

// ListSessions prints every stored session id.
func ListSessions(ctx context.Context, w io.Writer, store ports.StateStore) error {
	sessions, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No active sessions found.")
		return nil
	}
	fmt.Fprintln(w, "Active Sessions:")
	for _, s := range sessions {
		fmt.Fprintln(w, "- "+s)
	}
	return nil
}

// InspectSession prints one session as indented JSON.
func InspectSession(ctx context.Context, w io.Writer, store ports.StateStore, sessionID string) error {
	state, err := store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", sessionID, err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling state: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// RemoveSessions deletes each id, reporting per id, and returns the joined
// failures.
func RemoveSessions(ctx context.Context, w io.Writer, store ports.StateStore, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := store.Delete(ctx, id); err != nil {
			fmt.Fprintf(w, "Error removing '%s': %v\n", id, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}

// RunSessionList backs "session ls".
func RunSessionList(ctx context.Context, cfg *config.Config, w io.Writer) error {
	return withStore(ctx, cfg, func(s ports.StateStore) error { return ListSessions(ctx, w, s) })
}

// RunSessionInspect backs "session inspect".
func RunSessionInspect(ctx context.Context, cfg *config.Config, w io.Writer, id string) error {
	return withStore(ctx, cfg, func(s ports.StateStore) error { return InspectSession(ctx, w, s, id) })
}

// RunSessionRemove backs "session rm".
func RunSessionRemove(ctx context.Context, cfg *config.Config, w io.Writer, ids []string) error {
	return withStore(ctx, cfg, func(s ports.StateStore) error { return RemoveSessions(ctx, w, s, ids) })
}

// PrintMenu writes the menu choices and prices.
func PrintMenu(w io.Writer, cfg *config.Config) error {
	m, err := LoadMenu(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Menu (%s)\n", m.Locale())
	for i, item := range m.Items() {
		fmt.Fprintf(w, "  %d. %-24s %s\n", i+1, item.Description, domain.FormatMoney(item.Price))
	}
	fmt.Fprintln(w, "Commands:")
	for _, label := range m.Choices()[len(m.Items()):] {
		fmt.Fprintf(w, "  - %s\n", label)
	}
	return nil
}

