package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", FormatJSON, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("key", "paintings_0").Msg("resolved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "exactly one JSON line is written")
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "resolved", entry["message"])
	assert.Equal(t, "paintings_0", entry["key"])
	assert.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := New("debug", FormatConsole, &buf)

	logger.Debug().Msg("serving")

	assert.Contains(t, buf.String(), "serving")
	assert.Contains(t, buf.String(), "DBG")
}

func TestSetLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := New("debug", FormatJSON, &buf)

	assert.Equal(t, zerolog.WarnLevel, SetLevel("warn"))
	logger.Info().Msg("filtered")
	assert.Empty(t, buf.String())

	SetLevel("debug")
	logger.Info().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}
