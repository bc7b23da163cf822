package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance
var Logger *slog.Logger

// InitLogger initializes the global logger writing to stdout.
// For production, use JSON format; for development, use text format
func InitLogger(production bool, level slog.Level) {
	InitLoggerWithWriter(os.Stdout, production, level)
}

// InitLoggerWithWriter initializes the global logger writing to w
func InitLoggerWithWriter(w io.Writer, production bool, level slog.Level) {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logger() *slog.Logger {
	if Logger == nil {
		InitLogger(false, slog.LevelInfo)
	}
	return Logger
}

// Info logs an info message
func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}

// Fatal logs an error message and exits
func Fatal(msg string, args ...any) {
	logger().Error(msg, args...)
	os.Exit(1)
}

// WithSymbol returns a logger with symbol field
func WithSymbol(symbol string) *slog.Logger {
	return logger().With("symbol", symbol)
}

// WithSignal returns a logger scoped to one signal of one symbol
func WithSignal(symbol, signal string) *slog.Logger {
	return logger().With("symbol", symbol, "signal", signal)
}
