package config_test

import (
	"testing"
	"time"

	"github.com/KirkDiggler/macro-relay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "gm", cfg.Relay.GMUserID)
	assert.Equal(t, 10*time.Second, cfg.Relay.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Relay.PresenceTTL)
	assert.Equal(t, 5*time.Second, cfg.Relay.Heartbeat)
	assert.Equal(t, 24*time.Hour, cfg.Relay.EffectTTL)
	assert.False(t, cfg.Discord.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6380/2")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RELAY_GM_USER_ID", "1234")
	t.Setenv("RELAY_TIMEOUT", "3s")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_CHANNEL_ID", "chan")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redis://cache:6380/2", cfg.Redis.URL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "1234", cfg.Relay.GMUserID)
	assert.Equal(t, 3*time.Second, cfg.Relay.Timeout)
	assert.True(t, cfg.Discord.Enabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "RELAY_TIMEOUT", "soon"},
		{"zero timeout", "RELAY_TIMEOUT", "0s"},
		{"heartbeat too slow", "RELAY_HEARTBEAT", "20s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestRedisConfig_Options(t *testing.T) {
	opts, err := config.RedisConfig{URL: "redis://:secret@cache:6380/2"}.Options()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)

	opts, err = config.RedisConfig{Addr: "localhost:6379", DB: 1}.Options()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 1, opts.DB)

	_, err = config.RedisConfig{URL: "http://nope"}.Options()
	assert.Error(t, err)
}
