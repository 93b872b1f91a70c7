package notify

import (
	"errors"
	"testing"

	"focusflow/internal/core/model"
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDesktop(t *testing.T, request PermissionRequester) (*Desktop, *[]*fyne.Notification) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	desktop := NewDesktop(app, request, nil)
	var sent []*fyne.Notification
	desktop.send = func(notification *fyne.Notification) {
		sent = append(sent, notification)
	}
	return desktop, &sent
}

func TestDesktopSendsWhenGranted(t *testing.T) {
	desktop, sent := newTestDesktop(t, nil)

	require.NoError(t, desktop.Deliver(model.Alert{Title: "Time to take a break!", Body: "Great job!"}))

	require.Len(t, *sent, 1)
	assert.Equal(t, "Time to take a break!", (*sent)[0].Title)
	assert.Equal(t, "Great job!", (*sent)[0].Content)
}

func TestDesktopRequestsPermissionOnce(t *testing.T) {
	requests := 0
	desktop, _ := newTestDesktop(t, func() (bool, error) {
		requests++
		return true, nil
	})

	assert.Equal(t, PermissionGranted, desktop.RequestPermission())
	assert.Equal(t, PermissionGranted, desktop.RequestPermission())
	require.NoError(t, desktop.Deliver(model.Alert{Title: "x"}))
	assert.Equal(t, 1, requests)
}

func TestDesktopDeniedIsSilent(t *testing.T) {
	desktop, sent := newTestDesktop(t, func() (bool, error) { return false, nil })

	require.NoError(t, desktop.Deliver(model.Alert{Title: "x"}))

	assert.Empty(t, *sent)
	assert.Equal(t, "denied", desktop.RequestPermission().String())
}

func TestDesktopRequestFailureIsSilent(t *testing.T) {
	desktop, sent := newTestDesktop(t, func() (bool, error) { return false, errors.New("portal unavailable") })

	require.NoError(t, desktop.Deliver(model.Alert{Title: "x"}))

	assert.Empty(t, *sent)
	assert.Equal(t, PermissionDenied, desktop.RequestPermission())
}
