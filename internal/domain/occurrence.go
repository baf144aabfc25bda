package domain

import (
	"context"
	"time"
)

// EventOccurrence is one scheduled instance of a recurring event. It is
// owned by the external booking system; this service only reads it to
// build notification payloads and invite emails.
// swagger:model EventOccurrence
type EventOccurrence struct {
	ID        string    `json:"id"`
	EventName string    `json:"event_name"`
	Venue     string    `json:"venue"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"` // 24-hour "HH:MM" as stored by the booking system
}

// EventOccurrenceRepository defines read-only access to event occurrences.
type EventOccurrenceRepository interface {
	GetByID(ctx context.Context, id string) (*EventOccurrence, error)
}
