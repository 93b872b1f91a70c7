package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls OnChange after the watched file settles following an edit.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func()
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
}

// NewFileWatcher watches the directory containing path; editors often
// replace files instead of writing in place.
func NewFileWatcher(path string, debounce time.Duration, onChange func(), logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watched path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch directory %s: %w", filepath.Dir(absPath), err)
	}

	return &FileWatcher{
		path:     absPath,
		debounce: debounce,
		onChange: onChange,
		watcher:  watcher,
		logger:   logger,
	}, nil
}

// Run blocks until ctx is done.
func (fw *FileWatcher) Run(ctx context.Context) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		_ = fw.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fw.logger.Debug("settings file changed", "path", fw.path, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(fw.debounce, fw.onChange)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("settings watcher error", "error", err)
		}
	}
}
