package model

import (
	"errors"
	"fmt"
)

// ErrUnknownMode indicates a mode value outside the work/break cycle.
var ErrUnknownMode = errors.New("unknown timer mode")

// Mode is the current phase of the work/break cycle.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short-break"
	ModeLongBreak  Mode = "long-break"
)

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{ModeWork, ModeShortBreak, ModeLongBreak}
}

// Valid reports whether the mode is part of the cycle.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// IsBreak reports whether the mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Label returns the human-readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModeWork:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	}
	return string(mode)
}

// ParseMode converts a mode string or label into a Mode.
func ParseMode(value string) (Mode, error) {
	for _, mode := range Modes() {
		if value == string(mode) || value == mode.Label() {
			return mode, nil
		}
	}
	return "", fmt.Errorf("parse mode %q: %w", value, ErrUnknownMode)
}
