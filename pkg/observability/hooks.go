package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/menubot/pkg/domain"
)

// LoggingHooks logs every lifecycle event at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			logger.Debug("turn", "session_id", e.SessionID, "kind", e.Kind)
		},
		OnItemAdded: func(_ context.Context, e *domain.CartEvent) {
			logger.Info("item_added", "session_id", e.SessionID, "item", e.Item, "items", e.Items, "total", domain.FormatMoney(e.Total))
		},
		OnCheckout: func(_ context.Context, e *domain.CartEvent) {
			logger.Info("checkout", "session_id", e.SessionID, "items", e.Items, "total", domain.FormatMoney(e.Total))
		},
		OnCancel: func(_ context.Context, e *domain.CartEvent) {
			logger.Info("cancel", "session_id", e.SessionID, "items", e.Items)
		},
		OnInvalidSelection: func(_ context.Context, e *domain.SelectionEvent) {
			logger.Info("invalid_selection", "session_id", e.SessionID, "input", e.Input)
		},
	}
}

// MergeHooks calls every non-nil hook of each set, in order.
func MergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var turn []func(context.Context, *domain.TurnEvent)
	var added, checkout, cancel []func(context.Context, *domain.CartEvent)
	var invalid []func(context.Context, *domain.SelectionEvent)

	for _, s := range sets {
		if s.OnTurn != nil {
			turn = append(turn, s.OnTurn)
		}
		if s.OnItemAdded != nil {
			added = append(added, s.OnItemAdded)
		}
		if s.OnCheckout != nil {
			checkout = append(checkout, s.OnCheckout)
		}
		if s.OnCancel != nil {
			cancel = append(cancel, s.OnCancel)
		}
		if s.OnInvalidSelection != nil {
			invalid = append(invalid, s.OnInvalidSelection)
		}
	}

	return domain.LifecycleHooks{
		OnTurn:             fanOut(turn),
		OnItemAdded:        fanOut(added),
		OnCheckout:         fanOut(checkout),
		OnCancel:           fanOut(cancel),
		OnInvalidSelection: fanOut(invalid),
	}
}

func fanOut[E any](fns []func(context.Context, E)) func(context.Context, E) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, e E) {
		for _, fn := range fns {
			fn(ctx, e)
		}
	}
}
