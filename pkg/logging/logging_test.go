package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_WritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "fxql", true)

	logger.Info("dropped")
	logger.Warn("kept", "pair", "USD-GBP")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "fxql", entry["service"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "USD-GBP", entry["pair"])
}
