//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxAutostartLifecycle(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	enabled, err := service.AutostartEnabled("FocusFlow")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart("FocusFlow", "/opt/focus flow/focusflow"))
	entry, err := os.ReadFile(filepath.Join(configDir, "autostart", "focusflow.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(entry), `Exec="/opt/focus flow/focusflow"`)

	enabled, err = service.AutostartEnabled("FocusFlow")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.DisableAutostart("FocusFlow"))
	require.NoError(t, service.DisableAutostart("FocusFlow"))
	enabled, err = service.AutostartEnabled("FocusFlow")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestLinuxDataDir(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	dataDir, err := NewService().DataDir("FocusFlow")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "focusflow"), dataDir)
}

func TestEnableAutostartValidatesInput(t *testing.T) {
	service := NewService()
	assert.ErrorIs(t, service.EnableAutostart("", "/bin/true"), ErrEmptyAppName)
	assert.ErrorIs(t, service.EnableAutostart("FocusFlow", " "), ErrEmptyExecPath)
	assert.ErrorIs(t, service.DisableAutostart(""), ErrEmptyAppName)
	_, err := service.AutostartEnabled("")
	assert.ErrorIs(t, err, ErrEmptyAppName)
}
