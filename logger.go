package pixwin

import (
	"log/slog"
	"os"
)

// logLevel controls the level of the default logger.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// defaultLogger writes text records to stderr at logLevel.
var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// SetVerbose enables or disables debug logging on the default logger.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetLogLevel sets the default logger's level.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// DefaultLogger returns the logger used by contexts created without WithLogger.
func DefaultLogger() *slog.Logger {
	return defaultLogger
}
