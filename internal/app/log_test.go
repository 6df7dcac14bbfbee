package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		format string
		level  string
		want   zerolog.Level
	}{
		{"json", "info", zerolog.InfoLevel},
		{"text", "debug", zerolog.DebugLevel},
		{"color", "trace", zerolog.TraceLevel},
		{"", "", zerolog.InfoLevel},
		{"json", "loud", zerolog.InfoLevel},
	}

	for _, tc := range tests {
		logger := NewLogger(&bytes.Buffer{}, tc.format, tc.level, "")
		require.Equal(t, tc.want, logger.GetLevel(), "%s/%s", tc.format, tc.level)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, "json", "debug", "")
	logger.Debug().Str("stream", "cam0").Msg("[expbuf] export")

	var entry map[string]string
	require.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "debug", entry["level"])
	require.Equal(t, "cam0", entry["stream"])
	require.Equal(t, "[expbuf] export", entry["message"])
}

func TestNewLoggerText(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, "text", "info", "")
	logger.Info().Msg("[expbuf] listen")
	logger.Debug().Msg("hidden")

	require.Contains(t, buf.String(), "[expbuf] listen")
	require.NotContains(t, buf.String(), "hidden")
}

func TestGetLogger(t *testing.T) {
	prev := modules
	t.Cleanup(func() { modules = prev })

	modules = map[string]string{
		"module1": "debug",
		"module2": "warn",
	}

	require.Equal(t, zerolog.DebugLevel, GetLogger("module1").GetLevel())
	require.Equal(t, zerolog.WarnLevel, GetLogger("module2").GetLevel())
	require.Equal(t, Logger.GetLevel(), GetLogger("nonexistent").GetLevel())
}
