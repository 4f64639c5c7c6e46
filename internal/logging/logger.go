// Package logging wraps a process-wide slog text logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel is a level name accepted by --log-level.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

var logger *slog.Logger

// Until the CLI parses its flags, log info and above to stderr.
func init() {
	SetupLogger(os.Stderr, LevelInfo)
}

// ParseLevel accepts a level name in any case, ignoring surrounding spaces.
func ParseLevel(name string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := slogLevels[level]; !ok {
		return "", fmt.Errorf("invalid log level %q: must be debug, info, warn or error", name)
	}
	return level, nil
}

// SetupLogger sends log records at or above level to w. Unknown levels log
// at info.
func SetupLogger(w io.Writer, level LogLevel) {
	threshold, ok := slogLevels[level]
	if !ok {
		threshold = slog.LevelInfo
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: threshold}))
	slog.SetDefault(logger)
}

func Debug(msg string, args ...any) { logger.Debug(msg, args...) }
func Info(msg string, args ...any)  { logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func Error(msg string, args ...any) { logger.Error(msg, args...) }

// MaskHeaders returns a copy of headers with every value masked.
func MaskHeaders(headers map[string]string) map[string]string {
	masked := make(map[string]string, len(headers))
	for k, v := range headers {
		masked[k] = MaskSensitive(v)
	}
	return masked
}

// MaskSensitive keeps the first four characters of long values and hides the
// rest. Short values only report that they are set.
func MaskSensitive(value string) string {
	switch {
	case value == "":
		return "<not set>"
	case len(value) <= 4:
		return "<set>"
	default:
		return value[:4] + "...***"
	}
}
