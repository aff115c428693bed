package models

import "time"

// Circulation event types.
const (
	EventSignUp = "SIGN_UP"
	EventBorrow = "BORROW"
	EventReturn = "RETURN"
)

// CirculationEvent is a single history entry.
type CirculationEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // SIGN_UP | BORROW | RETURN
	UserID      int       `json:"user_id"`
	BookID      int       `json:"book_id,omitempty"`
	Description string    `json:"description"`
}
