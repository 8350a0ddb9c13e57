package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/brightlabs/sitesync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Slog().Info("sync complete", "deleted", 2)

	out := buf.String()
	assert.Contains(t, out, `"msg":"sync complete"`)
	assert.Contains(t, out, `"deleted":2`)
}

func TestTerminalLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "WARN")

	logger.Slog().Info("hidden")
	logger.Slog().Warn("visible", "url", "https://example.org")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "url")
}

func TestTerminalHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := newTerminalHandler(&buf, slog.LevelInfo)
	logger := slog.New(handler).With("component", "scraper")

	logger.Info("fetched listing")

	require.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "component")
	assert.Contains(t, buf.String(), "scraper")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}
