package models

import "time"

// Event types recorded in the maintenance log.
const (
	EventFilterStartDate = "FILTER_START_DATE"
	EventFilterReset     = "FILTER_RESET"
	EventOnline          = "ONLINE"
	EventOffline         = "OFFLINE"
	EventDrinkStatus     = "DRINK_STATUS"
)

// Event is a single log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // FILTER_START_DATE | FILTER_RESET | ONLINE | OFFLINE | DRINK_STATUS
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// IsEventType reports whether t names one of the logged event types.
func IsEventType(t string) bool {
	switch t {
	case EventFilterStartDate, EventFilterReset, EventOnline, EventOffline, EventDrinkStatus:
		return true
	}
	return false
}
