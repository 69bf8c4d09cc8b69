package domain

import "time"

// Status describes where a session stands in the ordering flow.
type Status string

const (
	StatusIdle           Status = "idle"            // No flow has been started
	StatusAwaitingChoice Status = "awaiting_choice" // Prompt issued, suspended until the next turn
	StatusCompleted      Status = "completed"       // Last flow ended with checkout or cancel
)

// Step is the suspended position inside the waterfall.
type Step int

const (
	// StepPrompt presents the menu (adopting a carried cart if any).
	StepPrompt Step = iota
	// StepInterpret consumes the choice made in reply to the prompt.
	StepInterpret
)

// State is the per-conversation continuation record.
// It is what the StateStore persists between turns.
type State struct {
	// SessionID identifies the conversation.
	SessionID string `json:"session_id"`

	// Flow is the name of the active flow. Empty means no flow is active.
	Flow string `json:"flow,omitempty"`

	// Step is the waterfall position the flow is suspended at.
	Step Step `json:"step"`

	// Status mirrors Flow/Step for observers (CLI inspect, HTTP).
	Status Status `json:"status"`

	// Cart holds the waterfall's carried values.
	Cart *Cart `json:"cart,omitempty"`

	// Turns counts the turns processed for this session.
	Turns int `json:"turns"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewState creates an idle state for the session.
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Status:    StatusIdle,
	}
}

// Active reports whether a flow is suspended awaiting input.
func (s *State) Active() bool {
	return s != nil && s.Flow != ""
}

// Reset clears any flow context, keeping identity and counters.
func (s *State) Reset() {
	s.Flow = ""
	s.Step = StepPrompt
	s.Cart = nil
	if s.Status == StatusAwaitingChoice {
		s.Status = StatusIdle
	}
}

// Snapshot returns a deep copy of the state.
func (s *State) Snapshot() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Cart = s.Cart.Clone()
	return &next
}
