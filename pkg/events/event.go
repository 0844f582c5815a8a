package events

import "time"

const (
	// EventQueryLogged fires after an FAQ query outcome is appended to the log.
	EventQueryLogged = "FAQ_QUERY_LOGGED"

	// EventTriageCompleted fires after a successful intake analysis.
	EventTriageCompleted = "TRIAGE_COMPLETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FAQ_QUERY_LOGGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
