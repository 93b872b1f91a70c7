package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	changed := make(chan struct{}, 4)
	watcher, err := NewFileWatcher(path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	require.NoError(t, NewFileKV(path).Set(SettingsKey, `{"work":60}`))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)

	changed := make(chan struct{}, 4)
	watcher, err := NewFileWatcher(path, 10*time.Millisecond, func() {
		changed <- struct{}{}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-changed:
		t.Fatal("unexpected change notification")
	case <-time.After(200 * time.Millisecond):
	}
}
