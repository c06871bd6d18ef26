package iologger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecoglobe/biosync/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		res slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.in), v.in)
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	h := newHandler(&buf, config.LogConfig{Format: "json", Level: "warn"})
	log := slog.New(h)
	log.Info("hidden")
	log.Warn("shown", "country", "CL")

	var rec map[string]any
	err := json.Unmarshal(buf.Bytes(), &rec)
	require.NoError(t, err)
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "CL", rec["country"])

	buf.Reset()
	h = newHandler(&buf, config.LogConfig{Format: "text", Level: "info"})
	slog.New(h).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
	assert.Contains(t, buf.String(), "time=")

	buf.Reset()
	h = newHandler(&buf, config.LogConfig{Format: "tint", Level: "info"})
	slog.New(h).Info("terminal", "country", "KE")
	assert.NotContains(t, buf.String(), "time=")
	assert.Contains(t, buf.String(), "country=KE")
}

func TestInitFile(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	err := Init(dir, cfg, false)
	require.NoError(t, err)

	Component("test").Info("hello")
	content, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"component":"test"`)

	err = Init(filepath.Join(dir, "missing"), cfg, true)
	assert.Error(t, err)
}

func TestInitAppend(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first")
	require.NoError(t, Init(dir, cfg, true))
	slog.Info("second")

	content, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=first")
	assert.Contains(t, string(content), "msg=second")

	require.NoError(t, Init(dir, cfg, false))
	content, err = os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Empty(t, content, "log is truncated without append")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	fallback := slog.New(slog.NewJSONHandler(&buf, nil))
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	log := fallback.With("request_id", "r1")
	ctx := WithLogger(context.Background(), log)
	FromContext(ctx, fallback).Info("scoped")
	assert.Contains(t, buf.String(), `"request_id":"r1"`)
}
