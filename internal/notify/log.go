package notify

import (
	"log/slog"

	"focusflow/internal/core/model"
)

// Log writes alerts to a structured logger. It stands in for desktop
// notifications when running without a GUI.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a log sink. A nil logger uses slog.Default.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Deliver logs the alert.
func (sink *Log) Deliver(alert model.Alert) error {
	sink.logger.Info(alert.Title, "body", alert.Body)
	return nil
}
