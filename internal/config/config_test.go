package config

import (
	"os"
	"path/filepath"
	"testing"

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
	t.Run("Defaults when the file is missing", func(t *testing.T) {
		// Given: a path with no config file
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "warn", conf.LogLevel)
		assert.Equal(t, "json", conf.LogFormat)
		assert.False(t, conf.NoColor)
		assert.False(t, conf.Feed.Enabled)
		assert.Equal(t, "tictactoe:events", conf.Feed.Channel)
		assert.Equal(t, "localhost:6379", conf.Feed.Redis.GetRedisAddr())
	})

	t.Run("Values from the file", func(t *testing.T) {
		// Given: a config file enabling the feed
		path := writeConfig(t, `
log-level: debug
log-format: text
no-color: true
feed:
  enabled: true
  channel: games
  redis:
    host: cache
    port: "6380"
`)

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the file values win over defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "text", conf.LogFormat)
		assert.True(t, conf.NoColor)
		assert.True(t, conf.Feed.Enabled)
		assert.Equal(t, "games", conf.Feed.Channel)
		assert.Equal(t, "cache:6380", conf.Feed.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		// Given: no file and a log level in the environment
		t.Setenv("LOG_LEVEL", "error")
		path := filepath.Join(t.TempDir(), "config.yml")

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the environment value is used
		require.NoError(t, err)
		assert.Equal(t, "error", conf.LogLevel)
	})

	t.Run("Rejects an unknown log level", func(t *testing.T) {
		path := writeConfig(t, "log-level: verbose\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("Rejects a non-numeric redis port", func(t *testing.T) {
		path := writeConfig(t, "feed:\n  redis:\n    port: abc\n")

		_, err := Load(path)

		require.Error(t, err)
	})
}

func TestMustLoad(t *testing.T) {
	path := writeConfig(t, "log-format: xml\n")

	assert.Panics(t, func() {
		MustLoad(path)
	})
}
