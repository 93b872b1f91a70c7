package model

import "fmt"

// TimerState is the in-memory countdown state. It is never persisted.
type TimerState struct {
	Mode              Mode
	SecondsRemaining  int
	IsRunning         bool
	SessionsCompleted int
}

// InitialState returns the paused work state for the given settings.
func InitialState(settings Settings) TimerState {
	return TimerState{
		Mode:             ModeWork,
		SecondsRemaining: settings.Seconds(ModeWork),
	}
}

// Progress returns the elapsed fraction of the current countdown.
func (state TimerState) Progress(settings Settings) float64 {
	total := settings.Seconds(state.Mode)
	if total <= 0 {
		return 1
	}
	progress := float64(total-state.SecondsRemaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Alert is a single notify request produced by the timer.
// Desktop and Sound carry the enabled channels at the time of the request.
type Alert struct {
	Title   string
	Body    string
	Desktop bool
	Sound   bool
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
