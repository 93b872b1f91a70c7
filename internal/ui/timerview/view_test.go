package timerview

import (
	"testing"

	"focusflow/internal/core/model"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
)

func TestUpdateShowsState(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	view := New(Callbacks{})
	settings := model.DefaultSettings()
	view.Update(model.TimerState{
		Mode:              model.ModeShortBreak,
		SecondsRemaining:  150,
		IsRunning:         true,
		SessionsCompleted: 3,
	}, settings)

	assert.Equal(t, "02:30", view.clock.Text)
	assert.InDelta(t, 0.5, view.progress.Value, 0.0001)
	assert.Equal(t, "Pause", view.toggleButton.Text)
	assert.Equal(t, "Sessions completed: 3", view.sessions.Text)
	assert.Equal(t, widget.HighImportance, view.modeButtons[model.ModeShortBreak].Importance)
	assert.Equal(t, widget.MediumImportance, view.modeButtons[model.ModeWork].Importance)

	view.Update(model.InitialState(settings), settings)
	assert.Equal(t, "Start", view.toggleButton.Text)
	assert.Equal(t, "25:00", view.clock.Text)
}

func TestButtonsInvokeCallbacks(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var toggled, reset, opened int
	var switched []model.Mode
	view := New(Callbacks{
		OnToggle:     func() { toggled++ },
		OnReset:      func() { reset++ },
		OnSwitchMode: func(mode model.Mode) { switched = append(switched, mode) },
		OnSettings:   func() { opened++ },
	})
	window := test.NewWindow(view.Content())
	defer window.Close()

	test.Tap(view.toggleButton)
	test.Tap(view.resetButton)
	test.Tap(view.modeButtons[model.ModeLongBreak])
	test.Tap(view.modeButtons[model.ModeWork])

	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, reset)
	assert.Equal(t, []model.Mode{model.ModeLongBreak, model.ModeWork}, switched)
	assert.Zero(t, opened)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "24:59 - Focus", Title(model.TimerState{Mode: model.ModeWork, SecondsRemaining: 1499}))
}
