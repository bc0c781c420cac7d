package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Applies defaults for missing keys", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: unspecified values fall back to their defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, 500*time.Millisecond, conf.Pacing.ComputerMove)
		assert.Equal(t, 300*time.Millisecond, conf.Pacing.ResultReveal)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.Redis.TTL)
	})

	t.Run("Reads nested sections", func(t *testing.T) {
		// Given: a config file with pacing and redis sections
		path := writeConfig(t, "pacing:\n  computer-move: 1s\nredis:\n  enabled: true\n  host: cache\n  port: \"6380\"\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the nested values are used
		require.NoError(t, err)
		assert.Equal(t, time.Second, conf.Pacing.ComputerMove)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Returns error for a missing file", func(t *testing.T) {
		// When: loading a path that does not exist
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		// Then: an error is returned
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})
}
