package log

import "sync"

// The package-level facade logs through one process-wide Logger so the TUI models
// and the catalog client do not thread a logger through every constructor.  Until
// SetDefaultLogger is called every facade call is a silent no-op, which keeps early
// startup (before the config is loaded) and tests quiet.

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// SetDefaultLogger installs the logger used by the package-level functions.  Called
// once from main after the config has been loaded.
func SetDefaultLogger(logger *Logger) {
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// DefaultLogger returns the current default logger, or nil if none is installed
func DefaultLogger() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Debug logs at debug level using the default logger
func Debug(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs at info level using the default logger
func Info(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs at warn level using the default logger
func Warn(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs at error level using the default logger
func Error(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil {
		logger.Error(msg, args...)
	}
}

// Trace logs wire-level detail, currently the catalog client's request/response
// lines.  slog has no trace level, so entries are written at debug with a TRACE
// prefix and only when the configured level is "trace".  That keeps per-request
// noise out of ordinary debug logs.
func Trace(msg string, args ...any) {
	if logger := DefaultLogger(); logger != nil && logger.traceEnabled {
		logger.Debug("TRACE: "+msg, args...)
	}
}
