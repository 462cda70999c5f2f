package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Log output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string
	Format string
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config and defaults to INFO if invalid or empty.
// Format "text" selects the text handler, anything else the JSON handler.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource:   false,
		Level:       ParseLevel(config.Level),
		ReplaceAttr: nil,
	}

	if strings.EqualFold(config.Format, FormatText) {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(level string) slog.Level {
	level, _ = lookupLevel(level)

	return levelFor(level)
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	_, ok := lookupLevel(level)

	return ok
}

func lookupLevel(level string) (string, bool) {
	switch upper := strings.ToUpper(level); upper {
	case "DEBUG", "INFO", "WARN", "ERROR":
		return upper, true
	case "WARNING":
		return "WARN", true
	default:
		return "INFO", false
	}
}

func levelFor(level string) slog.Level {
	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
