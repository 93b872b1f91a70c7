package timekeeper

import (
	"time"

	"focusflow/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventSessionComplete EventType = "session_complete"
	EventSettingsChange  EventType = "settings_change"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type     EventType
	State    model.TimerState
	Settings model.Settings
	Progress float64
	At       time.Time
}
