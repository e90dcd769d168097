// Package notify publishes drinkability transitions to an MQTT broker.
package notify

import (
	"encoding/json"
	"time"
)

// DefaultTopic is the MQTT topic for water status changes.
const DefaultTopic = "sanisip/water/status"

// Publisher publishes status events.
type Publisher interface {
	// PublishStatus sends a drinkability transition. Failures are returned,
	// never fatal to the caller.
	PublishStatus(event StatusEvent) error

	// Close disconnects from the broker.
	Close() error
}

// StatusEvent is one drinkability verdict with the reading that produced it.
type StatusEvent struct {
	Timestamp time.Time
	Drinkable bool
	TDS       float64
	PH        float64
	Turbidity float64
}

// Payload is the MQTT message body.
type Payload struct {
	Water WaterPayload `json:"water"`
}

// WaterPayload contains the status details.
type WaterPayload struct {
	Timestamp string  `json:"timestamp"`
	Status    string  `json:"status"` // SAFE | UNSAFE
	TDS       float64 `json:"tds"`
	PH        float64 `json:"ph"`
	Turbidity float64 `json:"turbidity"`
}

// FormatPayload creates the JSON payload for a status event.
func FormatPayload(event StatusEvent) ([]byte, error) {
	status := "SAFE"
	if !event.Drinkable {
		status = "UNSAFE"
	}
	return json.Marshal(Payload{
		Water: WaterPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Status:    status,
			TDS:       event.TDS,
			PH:        event.PH,
			Turbidity: event.Turbidity,
		},
	})
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

func (Noop) PublishStatus(StatusEvent) error { return nil }
func (Noop) Close() error                    { return nil }
