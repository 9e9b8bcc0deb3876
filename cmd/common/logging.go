package common

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SetupLogging configures slog to write to the log file at path. The UI owns
// the terminal, so when the file cannot be opened logs are discarded rather
// than written to stderr. The returned func closes the file.
func SetupLogging(path, level string) (*slog.Logger, func()) {
	var out io.Writer = io.Discard
	closeFn := func() {}

	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err == nil {
				out = logFile
				closeFn = func() { _ = logFile.Close() }
			}
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: ParseLogLevel(level),
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn
}

// ParseLogLevel maps a config level name to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
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
