package domain

// StateDiff represents the changes a turn made to a session.
// It is serialized to JSON so HTTP clients can follow the cart without
// fetching the whole session.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Flow   *string `json:"flow,omitempty"`
	Step   *Step   `json:"step,omitempty"`
	Status *Status `json:"status,omitempty"`

	// Cart is set when items were added or the cart was replaced/cleared.
	Cart *CartDelta `json:"cart,omitempty"`
}

// CartDelta describes a cart change.
// Appended holds new items when the cart only grew; Reset marks a cart that
// was dropped or replaced, in which case Items holds the full new list.
type CartDelta struct {
	Appended []string `json:"appended,omitempty"`
	Items    []string `json:"items,omitempty"`
	Reset    bool     `json:"reset,omitempty"`
	Total    string   `json:"total"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{SessionID: newState.SessionID}

	if oldState == nil || oldState.Flow != newState.Flow {
		f := newState.Flow
		diff.Flow = &f
	}
	if oldState == nil || oldState.Step != newState.Step {
		s := newState.Step
		diff.Step = &s
	}
	if oldState == nil || oldState.Status != newState.Status {
		s := newState.Status
		diff.Status = &s
	}

	var oldCart *Cart
	if oldState != nil {
		oldCart = oldState.Cart
	}
	diff.Cart = diffCart(oldCart, newState.Cart)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffCart(old, new *Cart) *CartDelta {
	if old == nil && new == nil {
		return nil
	}
	if new == nil {
		return &CartDelta{Reset: true, Total: (*Cart)(nil).FormatTotal()}
	}
	if old == nil {
		if len(new.Items) == 0 && new.Total.IsZero() {
			return &CartDelta{Reset: true, Total: new.FormatTotal()}
		}
		return &CartDelta{Appended: new.Items, Total: new.FormatTotal()}
	}

	if appendedOnly(old.Items, new.Items) {
		if len(new.Items) == len(old.Items) && old.Total.Equal(new.Total) {
			return nil
		}
		return &CartDelta{Appended: new.Items[len(old.Items):], Total: new.FormatTotal()}
	}

	return &CartDelta{Items: new.Items, Reset: true, Total: new.FormatTotal()}
}

func appendedOnly(old, new []string) bool {
	if len(new) < len(old) {
		return false
	}
	for i := range old {
		if old[i] != new[i] {
			return false
		}
	}
	return true
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.Flow == nil &&
		d.Step == nil &&
		d.Status == nil &&
		d.Cart == nil
}
