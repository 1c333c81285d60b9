// Package logging configures the zerolog logger used across the application.
//
// JSON output is the default and the right choice for production; console
// output is available for local development. The logger is constructed once
// in main() and injected, never accessed through package globals.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to out at the given minimum level.
// Format is "json" or "console"; unknown values fall back to json.
// Unknown levels fall back to info.
func New(level, format string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}
