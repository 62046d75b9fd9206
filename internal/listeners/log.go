package listeners

import (
	"context"
	"log/slog"
)

// LogListener records every payload as a structured log entry.
type LogListener[T any] struct {
	name   string
	logger *slog.Logger
	level  slog.Level
}

// NewLogListener creates a log listener. A nil logger uses slog.Default().
func NewLogListener[T any](name string, logger *slog.Logger, level slog.Level) *LogListener[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogListener[T]{name: name, logger: logger, level: level}
}

// Receive logs payload.
func (l *LogListener[T]) Receive(payload T) error {
	l.logger.Log(context.Background(), l.level, "payload received",
		"listener", l.name,
		"payload", payload)
	return nil
}
