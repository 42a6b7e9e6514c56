// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// Config holds logger configuration
type Config struct {
	Level     string // DEBUG, INFO, WARN, ERROR
	Format    string // json, text
	AddSource bool
	// Output defaults to os.Stderr so that command output on stdout stays clean
	Output io.Writer
}

// ParseLevel converts a level name to a slog.Level. Unknown names are INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger from cfg without touching the global one.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Init replaces the global logger
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Get returns the global logger
func Get() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	// Default fallback if not initialized
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = New(Config{Level: "INFO", Format: "text"})
	}
	return logger
}

// Debug logs at debug level on the global logger
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Info logs at info level on the global logger
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Warn logs at warn level on the global logger
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs at error level on the global logger
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
