// Package timerview renders the main timer window: mode selector, countdown,
// controls and the completed session count.
package timerview

import (
	"fmt"

	"focusflow/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const clockTextSize = 64

// Callbacks defines timer window action handlers.
type Callbacks struct {
	OnToggle     func()
	OnReset      func()
	OnSwitchMode func(model.Mode)
	OnSettings   func()
}

// View is the timer window content.
type View struct {
	callbacks    Callbacks
	modeButtons  map[model.Mode]*widget.Button
	clock        *canvas.Text
	progress     *widget.ProgressBar
	toggleButton *widget.Button
	resetButton  *widget.Button
	sessions     *widget.Label
	content      fyne.CanvasObject
}

// New builds the view. Call Update to show a state.
func New(callbacks Callbacks) *View {
	view := &View{
		callbacks:   callbacks,
		modeButtons: make(map[model.Mode]*widget.Button, len(model.Modes())),
	}

	modeRow := container.NewHBox(layout.NewSpacer())
	for _, mode := range model.Modes() {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			if view.callbacks.OnSwitchMode != nil {
				view.callbacks.OnSwitchMode(mode)
			}
		})
		view.modeButtons[mode] = button
		modeRow.Add(button)
	}
	modeRow.Add(layout.NewSpacer())

	view.clock = canvas.NewText(model.FormatClock(0), theme.Color(theme.ColorNameForeground))
	view.clock.TextSize = clockTextSize
	view.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clock.Alignment = fyne.TextAlignCenter

	view.progress = widget.NewProgressBar()
	view.progress.TextFormatter = func() string { return "" }

	view.toggleButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if view.callbacks.OnToggle != nil {
			view.callbacks.OnToggle()
		}
	})
	view.toggleButton.Importance = widget.HighImportance
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.callbacks.OnSettings != nil {
			view.callbacks.OnSettings()
		}
	})

	view.sessions = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	controls := container.NewHBox(layout.NewSpacer(), view.toggleButton, view.resetButton, layout.NewSpacer())
	header := container.NewHBox(widget.NewLabelWithStyle("FocusFlow", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), layout.NewSpacer(), settingsButton)

	view.content = container.NewVBox(
		header,
		modeRow,
		view.clock,
		view.progress,
		controls,
		view.sessions,
	)
	return view
}

// Content returns the root canvas object.
func (view *View) Content() fyne.CanvasObject {
	return view.content
}

// Update shows state. Must run on the fyne goroutine.
func (view *View) Update(state model.TimerState, settings model.Settings) {
	for mode, button := range view.modeButtons {
		importance := widget.MediumImportance
		if mode == state.Mode {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}

	view.clock.Text = model.FormatClock(state.SecondsRemaining)
	view.clock.Refresh()
	view.progress.SetValue(state.Progress(settings))

	if state.IsRunning {
		view.toggleButton.SetText("Pause")
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggleButton.SetText("Start")
		view.toggleButton.SetIcon(theme.MediaPlayIcon())
	}

	view.sessions.SetText(fmt.Sprintf("Sessions completed: %d", state.SessionsCompleted))
}

// Title returns a window title for state, e.g. "24:59 - Focus".
func Title(state model.TimerState) string {
	return fmt.Sprintf("%s - %s", model.FormatClock(state.SecondsRemaining), state.Mode.Label())
}
