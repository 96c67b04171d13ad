package logging

import (
	"os"
	"strings"

	"github.com/pion/logging"
)

// LevelEnv overrides the default level of every scope, e.g. YUVGL_LOG=debug.
// Per-scope levels still come from the PION_LOG_* variables.
const LevelEnv = "YUVGL_LOG"

var loggerFactory = newLoggerFactory()

func newLoggerFactory() *logging.DefaultLoggerFactory {
	f := logging.NewDefaultLoggerFactory()
	if lvl, ok := parseLevel(os.Getenv(LevelEnv)); ok {
		f.DefaultLogLevel = lvl
	}
	return f
}

func parseLevel(s string) (logging.LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disable", "disabled", "off":
		return logging.LogLevelDisabled, true
	case "error":
		return logging.LogLevelError, true
	case "warn", "warning":
		return logging.LogLevelWarn, true
	case "info":
		return logging.LogLevelInfo, true
	case "debug":
		return logging.LogLevelDebug, true
	case "trace":
		return logging.LogLevelTrace, true
	}
	return 0, false
}

// NewLogger returns a leveled logger for scope. Scopes are prefixed with
// "yuvgl/" by convention.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}
