package preferences

import (
	"strconv"
	"strings"

	"focusflow/internal/core/model"
)

// Upper bounds accepted by the form.
const (
	MaxWorkMinutes       = 60
	MaxShortBreakMinutes = 30
	MaxLongBreakMinutes  = 60
	MaxLongBreakInterval = 12
)

// Form is the editable view of model.Settings with durations in whole minutes.
type Form struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	Notifications     bool
	Sound             bool
}

// FormFromSettings converts settings to form values.
func FormFromSettings(settings model.Settings) Form {
	return Form{
		WorkMinutes:       toMinutes(settings.WorkSeconds),
		ShortBreakMinutes: toMinutes(settings.ShortBreakSeconds),
		LongBreakMinutes:  toMinutes(settings.LongBreakSeconds),
		LongBreakInterval: settings.LongBreakInterval,
		Notifications:     settings.NotificationsEnabled,
		Sound:             settings.SoundEnabled,
	}
}

// Apply writes form values over base. A duration whose minute value is
// unchanged keeps its exact seconds from base.
func (form Form) Apply(base model.Settings) model.Settings {
	current := FormFromSettings(base)
	settings := base

	if form.WorkMinutes != current.WorkMinutes {
		settings.WorkSeconds = form.WorkMinutes * 60
	}
	if form.ShortBreakMinutes != current.ShortBreakMinutes {
		settings.ShortBreakSeconds = form.ShortBreakMinutes * 60
	}
	if form.LongBreakMinutes != current.LongBreakMinutes {
		settings.LongBreakSeconds = form.LongBreakMinutes * 60
	}
	settings.LongBreakInterval = form.LongBreakInterval
	settings.NotificationsEnabled = form.Notifications
	settings.SoundEnabled = form.Sound

	return settings.Normalize()
}

func toMinutes(seconds int) int {
	minutes := seconds / 60
	if minutes < 1 {
		return 1
	}
	return minutes
}

func parseBounded(value string, max int) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 || parsed > max {
		return 0, false
	}
	return parsed, true
}
