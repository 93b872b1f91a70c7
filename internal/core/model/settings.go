package model

import "time"

// Default settings values.
const (
	DefaultWorkSeconds       = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60
	DefaultLongBreakInterval = 4
)

// Settings defines the user-editable timer configuration.
type Settings struct {
	WorkSeconds          int
	ShortBreakSeconds    int
	LongBreakSeconds     int
	LongBreakInterval    int
	NotificationsEnabled bool
	SoundEnabled         bool
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{
		WorkSeconds:          DefaultWorkSeconds,
		ShortBreakSeconds:    DefaultShortBreakSeconds,
		LongBreakSeconds:     DefaultLongBreakSeconds,
		LongBreakInterval:    DefaultLongBreakInterval,
		NotificationsEnabled: true,
		SoundEnabled:         true,
	}
}

// Normalize clamps durations and the long break interval to a minimum of 1.
func (settings Settings) Normalize() Settings {
	settings.WorkSeconds = atLeastOne(settings.WorkSeconds)
	settings.ShortBreakSeconds = atLeastOne(settings.ShortBreakSeconds)
	settings.LongBreakSeconds = atLeastOne(settings.LongBreakSeconds)
	settings.LongBreakInterval = atLeastOne(settings.LongBreakInterval)
	return settings
}

// Seconds returns the countdown length for the mode.
func (settings Settings) Seconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakSeconds
	case ModeLongBreak:
		return settings.LongBreakSeconds
	default:
		return settings.WorkSeconds
	}
}

// Duration returns Seconds(mode) as a time.Duration.
func (settings Settings) Duration(mode Mode) time.Duration {
	return time.Duration(settings.Seconds(mode)) * time.Second
}

// AlertsEnabled reports whether any alert channel is on.
func (settings Settings) AlertsEnabled() bool {
	return settings.NotificationsEnabled || settings.SoundEnabled
}

// LongBreakDue reports whether the given completed session count earns a long break.
func (settings Settings) LongBreakDue(sessionsCompleted int) bool {
	interval := atLeastOne(settings.LongBreakInterval)
	return sessionsCompleted > 0 && sessionsCompleted%interval == 0
}

func atLeastOne(value int) int {
	if value < 1 {
		return 1
	}
	return value
}
