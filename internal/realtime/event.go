package realtime

import (
	"time"
)

const (
	EventConnected          = "connected"
	EventPong               = "pong"
	EventTransactionCreated = "transaction:created"
	EventTransactionUpdated = "transaction:updated"
	EventTransactionDeleted = "transaction:deleted"
	EventAccountChanged     = "account:changed"
	EventCategoryChanged    = "category:changed"
	EventBudgetChanged      = "budget:changed"
)

// Event is a single fire-and-forget message to one user's room.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"ts"`
}

func NewEvent(eventType string, payload any) Event {
	return Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Notifier is what the service layer sees: emit and forget. If the user has
// no active connection the event is dropped; there is no queuing or replay.
type Notifier interface {
	Emit(uid string, event Event)
}
