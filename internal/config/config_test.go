package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yml file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
log-level: debug
storage: redis
bot-mode: true
redis:
  host: cache
  port: "6380"
  finished-ttl: 1m
players:
  x-name: Ann
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		config, err := Load(path)

		// Then: values from the file and defaults are both applied
		require.NoError(t, err)
		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, StorageRedis, config.Storage)
		assert.True(t, config.BotMode)
		assert.Equal(t, "cache:6380", config.Redis.GetRedisAddr())
		assert.Equal(t, time.Minute, config.Redis.FinishedTTL)
		assert.Equal(t, "Ann", config.Players.XName)
		assert.Equal(t, "Computer", config.Players.BotName)
		assert.Equal(t, "tictactoe.log", config.LogFile)
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and an env override
		t.Setenv("PLAYER_O_NAME", "Bob")

		// When: loading a missing path
		config, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults and env values are used
		require.NoError(t, err)
		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, StorageMemory, config.Storage)
		assert.Equal(t, "Bob", config.Players.OName)
		assert.Equal(t, "localhost:6379", config.Redis.GetRedisAddr())
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log-level: [unterminated"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
