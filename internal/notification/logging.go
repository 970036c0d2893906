package notification

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Package-level logger for the notification center. All service instances
// share it; the level can be raised to debug at runtime.
var (
	notificationLogger     *slog.Logger
	notificationLevelVar   = new(slog.LevelVar)
	notificationLoggerOnce sync.Once
)

// getLogger returns the shared notification logger. The debug parameter
// only applies on first use; use SetDebugLevel to change it afterwards.
func getLogger(debug bool) *slog.Logger {
	notificationLoggerOnce.Do(func() {
		if debug {
			notificationLevelVar.Set(slog.LevelDebug)
		} else {
			notificationLevelVar.Set(slog.LevelInfo)
		}

		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: notificationLevelVar,
		})
		notificationLogger = slog.New(handler).With("module", "notification")
	})

	return notificationLogger
}

// SetLogLevel dynamically changes the logging level for the notification
// logger.
func SetLogLevel(level slog.Level) {
	notificationLevelVar.Set(level)
}

// SetDebugLevel sets the logging level based on debug mode.
func SetDebugLevel(debug bool) {
	if debug {
		notificationLevelVar.Set(slog.LevelDebug)
	} else {
		notificationLevelVar.Set(slog.LevelInfo)
	}
}

// discardLogger returns a logger that drops all output. Useful for tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
