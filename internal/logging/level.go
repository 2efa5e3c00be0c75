package logging

import (
	"log/slog"
	"strings"
)

// LevelTrace is more verbose than slog.LevelDebug. It is used for
// per-line parser decisions that are too noisy for -vv.
const LevelTrace = slog.Level(-8)

// DebugEnv raises verbosity when no -v flag is given: "1" or "true"
// means debug, "2" means trace.
const DebugEnv = "AIRULES_DEBUG"

// LevelFromVerbosity maps the count of -v flags to a log level.
// Zero verbosity only shows warnings so that unmapped-section notices
// stay visible without burying command output.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

func verbosityFromEnv(val string) int {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true":
		return 2
	case "2":
		return 3
	default:
		return 0
	}
}

func levelLabel(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	case l >= slog.LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}
