package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "ALLOW_ORIGINS", "LOG_LEVEL", "MAX_UPLOAD_MB", "LOG_FILE",
		"RECON_THRESHOLD", "RECON_CHANGE_PERCENT", "RECON_DEFAULT_PROFILE", "PPROF"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, 256, cfg.MaxUploadMB)
	assert.Equal(t, 0.33, cfg.Threshold)
	assert.Equal(t, 5.0, cfg.ChangePercent)
	assert.Equal(t, "auto", cfg.DefaultProfile)
	assert.Equal(t, "logs/price-recon.log", cfg.LogFile)
	assert.False(t, cfg.Pprof)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("RECON_THRESHOLD", "0,5")
	t.Setenv("RECON_CHANGE_PERCENT", "-1")
	t.Setenv("RECON_DEFAULT_PROFILE", "vitya")
	t.Setenv("PPROF", "true")

	cfg := Load()
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowOrigins)
	assert.Equal(t, 0.5, cfg.Threshold)
	assert.Equal(t, 5.0, cfg.ChangePercent)
	assert.Equal(t, "vitya", cfg.DefaultProfile)
	assert.True(t, cfg.Pprof)
}

func TestNewLoggerLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	logger := NewLogger(Config{LogLevel: "warn"}, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
