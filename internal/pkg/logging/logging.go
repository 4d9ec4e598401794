package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog logger. Defaults to JSON on stdout at info
// level when level is empty or unknown.
func New(app, level string) *zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil && level != "" {
		lvl = parsed
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log := zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Timestamp().
		Str("app", app).
		Logger()
	return &log
}
