package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDataChanged EventType = "data_changed"
)

// Event is a change notification. It deliberately says nothing about which
// collection changed; receivers re-read everything they display.
type Event struct {
	Type       EventType
	Timestamp  time.Time
	SequenceID int64 // Monotonically increasing per bus
}
