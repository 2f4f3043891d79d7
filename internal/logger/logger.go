// Package logger wraps log/slog with the level names accepted on the
// command line.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Default is the logger used by the package-level helpers.
	Default *slog.Logger
)

func init() {
	// stdout carries reports and exports, so logs go to stderr
	Default = NewText("warn", os.Stderr)
}

// ParseLevel maps a level name to a slog level, falling back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a JSON logger with the specified level and output.
func New(level string, output io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// NewText creates a text-formatted logger for interactive use.
func NewText(level string, output io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ForFormat builds a "text" or "json" logger.
func ForFormat(format, level string, output io.Writer) (*slog.Logger, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return NewText(level, output), nil
	case "json":
		return New(level, output), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (text, json)", format)
	}
}

// SetDefault replaces Default and the slog default.
func SetDefault(logger *slog.Logger) {
	Default = logger
	slog.SetDefault(logger)
}

func Debug(msg string, args ...any) {
	Default.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	Default.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	Default.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	Default.Error(msg, args...)
}

// With returns a logger with additional attributes.
func With(args ...any) *slog.Logger {
	return Default.With(args...)
}
