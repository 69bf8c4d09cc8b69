package domain

// ActivityKind classifies an inbound turn.
type ActivityKind string

const (
	ActivityMessage            ActivityKind = "message"
	ActivityConversationUpdate ActivityKind = "conversation_update"
	ActivityTyping             ActivityKind = "typing"
	ActivityEvent              ActivityKind = "event"
)

// Turn is one inbound activity delivered by a transport.
type Turn struct {
	Kind      ActivityKind `json:"kind"`
	Text      string       `json:"text,omitempty"`
	SessionID string       `json:"session_id"`
}

// IsMessage reports whether the turn carries user text.
func (t Turn) IsMessage() bool {
	return t.Kind == ActivityMessage
}

// Message is one outbound reply.
// Choices is only set when the message is a prompt.
type Message struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices,omitempty"`
}

// IsPrompt reports whether the message asks the user to pick a choice.
func (m Message) IsPrompt() bool {
	return len(m.Choices) > 0
}

// TurnStatus is the outcome of resuming the flow for one turn.
type TurnStatus string

const (
	TurnEmpty    TurnStatus = "empty"    // No flow was active
	TurnWaiting  TurnStatus = "waiting"  // Flow is suspended awaiting the next turn
	TurnComplete TurnStatus = "complete" // Flow ended with a result
)

// Outcome is the terminal value of a completed flow.
type Outcome struct {
	Cancelled bool  `json:"cancelled"`
	Cart      *Cart `json:"cart,omitempty"`
}

// CancelledOutcome returns the cancellation marker.
func CancelledOutcome() *Outcome {
	return &Outcome{Cancelled: true}
}

// IsCancelled reports whether the outcome is absent or the cancellation marker.
func (o *Outcome) IsCancelled() bool {
	return o == nil || o.Cancelled || o.Cart == nil
}

// TurnResult is what the flow reports back to the dispatcher.
type TurnResult struct {
	Status TurnStatus
	Result *Outcome
}
