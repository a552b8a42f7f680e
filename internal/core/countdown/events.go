package countdown

import (
	"time"

	"multitimer/internal/core/model"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventCompleted   EventType = "completed"
	EventSetChanged  EventType = "set_changed"
)

// Event represents a countdown update for observers.
type Event struct {
	Type      EventType
	TimerID   string
	Label     string
	State     model.State
	Remaining int
	At        time.Time
}
