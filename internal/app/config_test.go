package app

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://u:p@localhost:5432/bizcore")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 30*time.Second, cfg.AppRequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.DBApplySchema)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresDSN(t *testing.T) {
	t.Setenv("PG_DSN", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsNonPositiveRate(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://u:p@localhost:5432/bizcore")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestNewLoggerHonoursFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{LogFormat: "json", LogLevel: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", slog.String("entity", "vendor"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"entity":"vendor"`)
}

func TestLogLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, logLevel(nil))
	assert.Equal(t, slog.LevelInfo, logLevel(&Config{LogLevel: "loud"}))
	assert.Equal(t, slog.LevelDebug, logLevel(&Config{LogLevel: "debug"}))
}
