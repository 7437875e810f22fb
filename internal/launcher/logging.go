package launcher

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnv selects the log level: debug, info, warn or error.
const LogLevelEnv = "LAUNCHER_LOG_LEVEL"

// NewLogger builds a text logger on w at the level named by
// LAUNCHER_LOG_LEVEL, defaulting to info.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv(LogLevelEnv)),
	}))
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
