// Package logging builds the zerolog loggers used by redirectctl. The browser
// owns the terminal, so it logs JSON lines to a file; one-shot commands log to
// stderr through a console writer.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultLevel = zerolog.InfoLevel

// ParseLevel converts a config string to a zerolog level. Unknown or empty
// values fall back to info.
func ParseLevel(level string) zerolog.Level {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return defaultLevel
	}
	if trimmed == "warning" {
		trimmed = "warn"
	}
	parsed, err := zerolog.ParseLevel(trimmed)
	if err != nil || parsed == zerolog.NoLevel {
		return defaultLevel
	}
	return parsed
}

// NewConsole returns a human-readable logger writing to w.
func NewConsole(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewFile opens path for appending, creating parent directories, and returns a
// JSON logger writing to it. The caller closes the returned file.
func NewFile(path, level string) (zerolog.Logger, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return zerolog.Nop(), nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(file).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
	return logger, file, nil
}
