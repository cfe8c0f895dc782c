package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, output format and the service name stamped on
// every line.
type Config struct {
	Level   string // trace, debug, info, warn, error
	Format  string // json, console
	Service string // defaults to "finlab"
}

// New returns a logger writing to stdout.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter returns a logger writing to w. The console format is meant
// for local runs and the CLI.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	service := cfg.Service
	if service == "" {
		service = "finlab"
	}

	var output io.Writer = w
	if strings.EqualFold(cfg.Format, "console") {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return zerolog.New(output).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// parseLevel accepts zerolog level names plus "warning"; anything else
// logs at info.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}
