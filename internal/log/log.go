// Package log builds the slog loggers used by the syncdemo command.
package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// New creates a [slog.Logger] writing to w at the given level and format.
// The text format is rendered by charmbracelet/log.
func New(w io.Writer, logLevel, logFormat string) (*slog.Logger, error) {
	level, err := ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	case TextFormat, "":
		h := charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmLevel(level),
			ReportTimestamp: true,
		})
		return slog.New(h), nil
	default:
		return nil, fmt.Errorf("%w: log format %q", ErrInvalidArgument, logFormat)
	}
}

// ErrInvalidArgument indicates an unknown level or format name.
var ErrInvalidArgument = errors.New("invalid argument")

// ParseLevel maps a level name to a [slog.Level]. Names below debug and
// above error collapse onto the nearest slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalidArgument, level)
	}
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}
