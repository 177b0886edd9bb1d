package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvKeys = []string{
	"SERVER_PORT", "SERVER_READ_TIMEOUT", "CORS_ALLOW_ORIGINS",
	"DB_HOST", "DB_PORT", "DB_PASSWORD", "DB_MAX_CONNECTIONS",
	"FETCH_FEED_TIMEOUT", "FETCH_MEDIA_TIMEOUT", "FETCH_MAX_REDIRECTS", "FETCH_FEED_MAX_BYTES",
	"MEDIA_PROXY_MAX_BYTES", "MEDIA_DEFAULT_MODE",
	"RATE_LIMIT_WINDOW", "RATE_LIMIT_CEILING", "RATE_LIMIT_BACKEND", "RATE_LIMIT_REDIS_URL",
	"HISTORY_RETENTION_DAYS", "HISTORY_MAX_BATCH_ITEMS",
	"ARCHIVE_ENABLED", "ARCHIVE_CONCURRENCY",
	"OTEL_ENABLED", "OTEL_TRACE_SAMPLE_RATIO",
}

func clearTestEnv(t *testing.T) {
	t.Helper()
	for _, key := range testEnvKeys {
		if value, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		}
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearTestEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.Fetch.FeedTimeout)
	assert.Equal(t, 30*time.Second, cfg.Fetch.MediaTimeout)
	assert.Equal(t, 5, cfg.Fetch.MaxRedirects)
	assert.Equal(t, int64(10*1024*1024), cfg.MediaProxy.MaxBytes)
	assert.Equal(t, "public, max-age=43200, immutable", cfg.MediaProxy.CacheControl)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 30, cfg.RateLimit.Ceiling)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Equal(t, 60, cfg.History.RetentionDays)
	assert.Equal(t, 60*24*time.Hour, cfg.History.Retention())
	assert.Equal(t, 200, cfg.History.MaxBatchItems)
	assert.True(t, cfg.Archive.Enabled)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.InDelta(t, 0.1, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("FETCH_FEED_TIMEOUT", "3s")
	t.Setenv("MEDIA_PROXY_MAX_BYTES", "2048")
	t.Setenv("RATE_LIMIT_CEILING", "5")
	t.Setenv("RATE_LIMIT_BACKEND", "redis")
	t.Setenv("RATE_LIMIT_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("ARCHIVE_ENABLED", "false")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_TRACE_SAMPLE_RATIO", "1")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.Fetch.FeedTimeout)
	assert.Equal(t, int64(2048), cfg.MediaProxy.MaxBytes)
	assert.Equal(t, 5, cfg.RateLimit.Ceiling)
	assert.Equal(t, "redis", cfg.RateLimit.Backend)
	assert.False(t, cfg.Archive.Enabled)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestNewConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "70000"}, "port must be between"},
		{"unparseable int", map[string]string{"RATE_LIMIT_CEILING": "many"}, "invalid integer value"},
		{"unparseable duration", map[string]string{"FETCH_FEED_TIMEOUT": "soon"}, "invalid duration value"},
		{"unparseable bool", map[string]string{"ARCHIVE_ENABLED": "perhaps"}, "invalid boolean value"},
		{"zero ceiling", map[string]string{"RATE_LIMIT_CEILING": "0"}, "ceiling must be at least 1"},
		{"unknown backend", map[string]string{"RATE_LIMIT_BACKEND": "memcached"}, "backend must be memory or redis"},
		{"bad media mode", map[string]string{"MEDIA_DEFAULT_MODE": "cdn"}, "default mode must be proxy or direct"},
		{"zero retention", map[string]string{"HISTORY_RETENTION_DAYS": "0"}, "retention days must be at least 1"},
		{"sample ratio", map[string]string{"OTEL_TRACE_SAMPLE_RATIO": "1.5"}, "sample ratio must be between"},
		{"zero proxy bytes", map[string]string{"MEDIA_PROXY_MAX_BYTES": "0"}, "max bytes must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearTestEnv(t)
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := NewConfig()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "n", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=n sslmode=require", cfg.DSN())
}
