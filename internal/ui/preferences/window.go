package preferences

import (
	"fmt"
	"strconv"

	"focusflow/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	onCancel      func()
	visible       bool
	work          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	interval      *widget.Entry
	notifications *widget.Check
	sound         *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("FocusFlow Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		interval:      widget.NewEntry(),
		notifications: widget.NewCheck("Desktop notifications", nil),
		sound:         widget.NewCheck("Alert sound", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.work, widget.NewLabel(fmt.Sprintf("min (1-%d)", MaxWorkMinutes))),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel(fmt.Sprintf("min (1-%d)", MaxShortBreakMinutes))),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel(fmt.Sprintf("min (1-%d)", MaxLongBreakMinutes))),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.interval, widget.NewLabel("sessions")),
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		prefs.sound,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.hide()
		prefs.UpdateSettings(prefs.settings)
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(prefs.hide)
	window.Resize(fyne.NewSize(360, 320))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.visible = true
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	form := FormFromSettings(settings)
	prefs.work.SetText(strconv.Itoa(form.WorkMinutes))
	prefs.shortBreak.SetText(strconv.Itoa(form.ShortBreakMinutes))
	prefs.longBreak.SetText(strconv.Itoa(form.LongBreakMinutes))
	prefs.interval.SetText(strconv.Itoa(form.LongBreakInterval))
	prefs.notifications.SetChecked(form.Notifications)
	prefs.sound.SetChecked(form.Sound)
}

// SyncSettings adopts settings changed elsewhere. While the window is open the
// entries are left as typed; a later Save applies them over the new values.
func (prefs *Window) SyncSettings(settings model.Settings) {
	if settings == prefs.settings {
		return
	}
	if prefs.visible {
		prefs.settings = settings
		return
	}
	prefs.UpdateSettings(settings)
}

func (prefs *Window) hide() {
	prefs.visible = false
	prefs.window.Hide()
}

// Out-of-range entries keep their previous value.
func (prefs *Window) handleSave() {
	form := FormFromSettings(prefs.settings)

	if minutes, ok := parseBounded(prefs.work.Text, MaxWorkMinutes); ok {
		form.WorkMinutes = minutes
	}
	if minutes, ok := parseBounded(prefs.shortBreak.Text, MaxShortBreakMinutes); ok {
		form.ShortBreakMinutes = minutes
	}
	if minutes, ok := parseBounded(prefs.longBreak.Text, MaxLongBreakMinutes); ok {
		form.LongBreakMinutes = minutes
	}
	if sessions, ok := parseBounded(prefs.interval.Text, MaxLongBreakInterval); ok {
		form.LongBreakInterval = sessions
	}
	form.Notifications = prefs.notifications.Checked
	form.Sound = prefs.sound.Checked

	settings := form.Apply(prefs.settings)
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.hide()
}
