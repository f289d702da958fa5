// Package logger provides the process-wide structured logger.
package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config controls log level and output format.
type Config struct {
	Level       string
	Environment string
}

var (
	global *slog.Logger
	once   sync.Once
)

func levelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
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

// New creates a logger without touching the global instance. Production
// environments get JSON output, everything else text.
func New(cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromString(cfg.Level)}
	var handler slog.Handler
	if strings.ToLower(cfg.Environment) == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

// Init sets up the global logger; repeated calls keep the first instance.
func Init(cfg Config) *slog.Logger {
	once.Do(func() {
		global = New(cfg)
	})
	return global
}

// L returns the global logger, initialising a default one if needed.
func L() *slog.Logger {
	if global == nil {
		return Init(Config{})
	}
	return global
}
