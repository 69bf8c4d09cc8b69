package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn             EventType = "turn"
	EventItemAdded        EventType = "item_added"
	EventCheckout         EventType = "checkout"
	EventCancel           EventType = "cancel"
	EventInvalidSelection EventType = "invalid_selection"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent is emitted once per inbound turn.
type TurnEvent struct {
	EventBase
	Kind ActivityKind `json:"kind"`
}

// CartEvent is emitted when the cart changes or the flow ends.
type CartEvent struct {
	EventBase
	Item  string          `json:"item,omitempty"`
	Items int             `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// SelectionEvent is emitted when a choice cannot be interpreted.
type SelectionEvent struct {
	EventBase
	Input string `json:"input"`
}

// LifecycleHooks defines callbacks for bot observability.
type LifecycleHooks struct {
	OnTurn             func(context.Context, *TurnEvent)
	OnItemAdded        func(context.Context, *CartEvent)
	OnCheckout         func(context.Context, *CartEvent)
	OnCancel           func(context.Context, *CartEvent)
	OnInvalidSelection func(context.Context, *SelectionEvent)
}

// NewCartEvent builds a CartEvent from the current cart.
func NewCartEvent(t EventType, sessionID, item string, cart *Cart) *CartEvent {
	ev := &CartEvent{
		EventBase: EventBase{Timestamp: time.Now(), Type: t, SessionID: sessionID},
		Item:      item,
		Total:     decimal.Zero,
	}
	if cart != nil {
		ev.Items = len(cart.Items)
		ev.Total = cart.Total
	}
	return ev
}
