package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStore indicates an unsupported settings backend name.
	ErrUnknownStore = errors.New("unknown settings store")
	// ErrCorruptValue indicates a stored value that cannot be decoded.
	ErrCorruptValue = errors.New("corrupt stored value")
)

// OpError describes a failed key-value operation.
type OpError struct {
	Op      string
	Backend string
	Key     string
	Err     error
}

func (e *OpError) Error() string {
	if e == nil {
		return ""
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Backend, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func wrapErr(backend, op, key string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Backend: backend, Key: key, Err: err}
}
