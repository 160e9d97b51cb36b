package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "laz", cfg.Queue.Name)
	assert.Equal(t, 4, cfg.Queue.Concurrency)
	assert.Equal(t, 0, cfg.Queue.MaxRetry)
	assert.Equal(t, 24*time.Hour, cfg.Queue.Retention)
	assert.Equal(t, time.Second, cfg.Queue.PollInterval)
	assert.Equal(t, "laszip", cfg.Codec.Binary)
	assert.False(t, cfg.Archive.UseBucket())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REDIS_HOST", "pool.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("QUEUE_CONCURRENCY", "16")
	t.Setenv("QUEUE_POLL_INTERVAL", "250ms")
	t.Setenv("LAZ_CODEC_BIN", "/opt/lastools/bin/laszip64")
	t.Setenv("ARCHIVE_BUCKET", "laz-archive")
	t.Setenv("ARCHIVE_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pool.internal:6380", cfg.Redis.Addr())
	assert.Equal(t, 16, cfg.Queue.Concurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.Queue.PollInterval)
	assert.Equal(t, "/opt/lastools/bin/laszip64", cfg.Codec.Binary)
	assert.True(t, cfg.Archive.UseBucket())
	assert.True(t, cfg.Archive.UseSSL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero concurrency", key: "QUEUE_CONCURRENCY", value: "0"},
		{name: "negative retry", key: "QUEUE_MAX_RETRY", value: "-1"},
		{name: "zero poll interval", key: "QUEUE_POLL_INTERVAL", value: "0s"},
		{name: "unparsable port", key: "REDIS_PORT", value: "six"},
		{name: "zero retention", key: "QUEUE_RETENTION", value: "0s"},
		{name: "retention shorter than poll interval", key: "QUEUE_RETENTION", value: "500ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_RetentionEqualToPollInterval(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUEUE_POLL_INTERVAL", "2s")
	t.Setenv("QUEUE_RETENTION", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Queue.Retention)
}
