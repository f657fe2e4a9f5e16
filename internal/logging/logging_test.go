package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Setenv("ASEQ_LOG_LEVEL", "")
	t.Setenv("ASEQ_JSON_LOG", "")

	buf := new(bytes.Buffer)
	logger := New(buf, "debug", "json")
	logger.Debug("scan finished", "matches", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "scan finished", rec["msg"])
	require.Equal(t, "aseq", rec["service"])
	require.EqualValues(t, 2, rec["matches"])
}

func TestNewEnvOverrides(t *testing.T) {
	t.Setenv("ASEQ_LOG_LEVEL", "error")
	t.Setenv("ASEQ_JSON_LOG", "true")

	buf := new(bytes.Buffer)
	logger := New(buf, "debug", "text")
	logger.Warn("dropped")
	require.Empty(t, buf.String())

	logger.Error("kept")
	require.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
}
