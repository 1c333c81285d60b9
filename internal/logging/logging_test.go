package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmitsStructuredJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := New("info", "json", &buf)
	logger.Info().Str("component", "api").Msg("server starting")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "server starting", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := New("error", "json", &buf)
	logger.Info().Msg("suppressed")
	logger.Error().Msg("emitted")

	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "emitted")
}

func TestNewFatalLevelEntries(t *testing.T) {
	var buf bytes.Buffer

	// WithLevel emits at fatal severity without terminating the process.
	logger := New("fatal", "json", &buf)
	logger.Error().Msg("suppressed")
	logger.WithLevel(zerolog.FatalLevel).Msg("going down")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, `"level":"fatal"`)
	assert.Contains(t, out, "going down")
}

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New("info", "console", &buf)
	logger.Info().Msg("readable output")

	out := buf.String()
	assert.Contains(t, out, "readable output")
	assert.NotContains(t, out, `"message"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("WARNING"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("bogus"))
}
