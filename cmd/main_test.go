package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"focusflow/internal/config"
	"focusflow/internal/core/model"
	"focusflow/internal/core/timekeeper"
	"focusflow/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	dataDir string
}

func (service *fakeService) GetConfigDir() (string, error) { return filepath.Dir(service.dataDir), nil }
func (service *fakeService) DataDir(string) (string, error) { return service.dataDir, nil }
func (service *fakeService) EnableAutostart(string, string) error { return nil }
func (service *fakeService) DisableAutostart(string) error { return nil }
func (service *fakeService) AutostartEnabled(string) (bool, error) { return false, nil }

func parse(t *testing.T, args ...string) (*CLI, string) {
	t.Helper()
	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx.Command()
}

func TestRunIsDefaultCommand(t *testing.T) {
	cli, command := parse(t)
	assert.Equal(t, "run", command)
	assert.False(t, cli.Run.Headless)
	assert.Empty(t, cli.Run.Store)

	cli, command = parse(t, "--headless", "--store", "sqlite", "--start")
	assert.Equal(t, "run", command)
	assert.True(t, cli.Run.Headless)
	assert.Equal(t, "sqlite", cli.Run.Store)
	assert.True(t, cli.Run.Start)
}

func TestAutostartCommands(t *testing.T) {
	_, command := parse(t, "autostart", "status")
	assert.Equal(t, "autostart status", command)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("FOCUSFLOW_STORE", "file")
	t.Setenv("FOCUSFLOW_HEADLESS", "true")

	cli, _ := parse(t)
	assert.Equal(t, "file", cli.Run.Store)
	assert.True(t, cli.Run.Headless)
}

func TestResolveRunOptionsDefaults(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "focusflow")
	options, err := resolveRunOptions(&CLI{}, &RunCmd{}, &fakeService{dataDir: dataDir})
	require.NoError(t, err)

	assert.DirExists(t, dataDir)
	assert.Equal(t, filepath.Join(dataDir, config.FileName), options.configPath)
	assert.Equal(t, storage.BackendPreferences, options.backend)
	assert.Equal(t, config.Default(), options.config)
	assert.False(t, options.start)
}

func TestResolveRunOptionsFlagsOverrideConfig(t *testing.T) {
	dataDir := t.TempDir()
	configPath := filepath.Join(dataDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("store: sqlite\nstart_on_launch: true\n"), 0o644))

	root := &CLI{DataDir: dataDir, Config: configPath}
	options, err := resolveRunOptions(root, &RunCmd{}, &fakeService{})
	require.NoError(t, err)
	assert.Equal(t, storage.BackendSQLite, options.backend)
	assert.True(t, options.start)

	options, err = resolveRunOptions(root, &RunCmd{Store: "file"}, &fakeService{})
	require.NoError(t, err)
	assert.Equal(t, storage.BackendFile, options.backend)
}

func TestResolveRunOptionsHeadlessAvoidsPreferences(t *testing.T) {
	options, err := resolveRunOptions(&CLI{DataDir: t.TempDir()}, &RunCmd{Headless: true}, &fakeService{})
	require.NoError(t, err)
	assert.Equal(t, storage.BackendFile, options.backend)
	assert.True(t, options.headless)
}

func TestResolveRunOptionsRejectsUnknownStore(t *testing.T) {
	_, err := resolveRunOptions(&CLI{DataDir: t.TempDir()}, &RunCmd{Store: "redis"}, &fakeService{})
	assert.ErrorIs(t, err, storage.ErrUnknownStore)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, (&CLI{}).logLevel(slog.LevelWarn))
	assert.Equal(t, slog.LevelDebug, (&CLI{Verbose: true}).logLevel(slog.LevelWarn))
}

func TestContinueAfter(t *testing.T) {
	paused := model.TimerState{Mode: model.ModeShortBreak, SecondsRemaining: 300}
	running := paused
	running.IsRunning = true

	assert.True(t, continueAfter(timekeeper.Event{Type: timekeeper.EventStateChange, State: paused}))
	assert.False(t, continueAfter(timekeeper.Event{Type: timekeeper.EventStateChange, State: running}))
	assert.False(t, continueAfter(timekeeper.Event{Type: timekeeper.EventSettingsChange, State: paused}))
}

func TestStatusLine(t *testing.T) {
	state := model.TimerState{Mode: model.ModeWork, SecondsRemaining: 61, SessionsCompleted: 2}
	assert.Equal(t, "Focus 01:01 (paused), 2 sessions", statusLine(state))
	state.IsRunning = true
	assert.Equal(t, "Focus 01:01, 2 sessions", statusLine(state))
}

func TestLogEventProgressLevels(t *testing.T) {
	var output bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&output, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logEvent(logger, timekeeper.Event{Type: timekeeper.EventProgress, State: model.TimerState{Mode: model.ModeWork, SecondsRemaining: 1499, IsRunning: true}})
	assert.Empty(t, output.String())

	logEvent(logger, timekeeper.Event{Type: timekeeper.EventProgress, State: model.TimerState{Mode: model.ModeWork, SecondsRemaining: 1440, IsRunning: true}})
	assert.Contains(t, output.String(), "Focus 24:00")

	output.Reset()
	logEvent(logger, timekeeper.Event{Type: timekeeper.EventSessionComplete, State: model.TimerState{SessionsCompleted: 4}, At: time.Now()})
	assert.Contains(t, output.String(), "sessions=4")
}

func TestOpenEngineHeadlessFileStore(t *testing.T) {
	options := runOptions{
		dataDir: t.TempDir(),
		config:  config.Default(),
		backend: storage.BackendFile,
	}
	eng, err := openEngine(options, nil, nil, slog.Default())
	require.NoError(t, err)

	settings := model.DefaultSettings()
	settings.WorkSeconds = 600
	eng.keeper.UpdateSettings(settings)
	eng.close()

	reopened, err := openEngine(options, nil, nil, slog.Default())
	require.NoError(t, err)
	defer reopened.close()
	assert.Equal(t, 600, reopened.keeper.Settings().WorkSeconds)
	assert.Equal(t, 600, reopened.keeper.Snapshot().SecondsRemaining)
}
