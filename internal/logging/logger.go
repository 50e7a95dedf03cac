package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/config"
)

const appName = "shareit"

// New constructs a zerolog logger based on config settings.
// Defaults to JSON, info level, stdout when fields are empty or unknown.
func New(cfg config.LogConfig, env string) *zerolog.Logger {
	return NewWithWriter(cfg, env, nil)
}

// NewWithWriter is New with an explicit destination, used by tests.
func NewWithWriter(cfg config.LogConfig, env string, w io.Writer) *zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	output := w
	if output == nil {
		output = os.Stdout
		if strings.EqualFold(strings.TrimSpace(cfg.Output), "stderr") {
			output = os.Stderr
		}
	}

	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()

	return &logger
}
