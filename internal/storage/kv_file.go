package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const backendFile = "file"

// FileKV keeps all keys in one JSON document on disk. Values that are valid
// JSON are stored inline so the file stays editable by hand.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a KV backed by the file at path.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the backing file path.
func (kv *FileKV) Path() string {
	return kv.path
}

// Get returns the value stored under key.
func (kv *FileKV) Get(key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	entries, err := kv.readLocked()
	if err != nil {
		return "", false, wrapErr(backendFile, "get", key, err)
	}
	raw, ok := entries[key]
	if !ok {
		return "", false, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text, true, nil
	}
	return string(raw), true, nil
}

// Set stores value under key, replacing the file atomically.
func (kv *FileKV) Set(key, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	entries, err := kv.readLocked()
	if err != nil {
		if !errors.Is(err, ErrCorruptValue) {
			return wrapErr(backendFile, "set", key, err)
		}
		entries = map[string]json.RawMessage{}
	}

	if json.Valid([]byte(value)) {
		entries[key] = json.RawMessage(value)
	} else {
		quoted, err := json.Marshal(value)
		if err != nil {
			return wrapErr(backendFile, "set", key, err)
		}
		entries[key] = quoted
	}

	if err := kv.writeLocked(entries); err != nil {
		return wrapErr(backendFile, "set", key, err)
	}
	return nil
}

func (kv *FileKV) readLocked() (map[string]json.RawMessage, error) {
	entries := map[string]json.RawMessage{}
	data, err := os.ReadFile(kv.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptValue, err)
	}
	return entries, nil
}

func (kv *FileKV) writeLocked(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(kv.path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	serialized, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal file: %w", err)
	}
	serialized = append(serialized, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(kv.path), "."+filepath.Base(kv.path)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(serialized); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, kv.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}
