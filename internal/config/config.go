package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
)

// Config is the process configuration shared by the relay and macroctl binaries
type Config struct {
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Relay   RelayConfig   `envPrefix:"RELAY_"`
	Discord DiscordConfig `envPrefix:"DISCORD_"`
}

// RedisConfig locates the shared Redis. URL wins over Addr when both are set.
type RedisConfig struct {
	URL      string `env:"URL"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Options builds go-redis options, parsing URL when it is set
func (r RedisConfig) Options() (*redis.Options, error) {
	if r.URL != "" {
		opts, err := redis.ParseURL(r.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	}, nil
}

// RelayConfig controls delegation between participants and the game master
type RelayConfig struct {
	// GMUserID is the participant the relay server acts as
	GMUserID    string        `env:"GM_USER_ID" envDefault:"gm"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"10s"`
	PresenceTTL time.Duration `env:"PRESENCE_TTL" envDefault:"15s"`
	Heartbeat   time.Duration `env:"HEARTBEAT" envDefault:"5s"`
	EffectTTL   time.Duration `env:"EFFECT_TTL" envDefault:"24h"`
}

// DiscordConfig is optional; an empty token keeps notifications in the log
type DiscordConfig struct {
	Token     string `env:"TOKEN"`
	ChannelID string `env:"CHANNEL_ID"`
}

// Enabled reports whether a Discord notifier can be built
func (d DiscordConfig) Enabled() bool {
	return d.Token != "" && d.ChannelID != ""
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	if c.Redis.URL == "" && c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_URL or REDIS_ADDR is required")
	}
	if c.Relay.Timeout <= 0 {
		return fmt.Errorf("RELAY_TIMEOUT must be positive, got %s", c.Relay.Timeout)
	}
	if c.Relay.PresenceTTL <= 0 {
		return fmt.Errorf("RELAY_PRESENCE_TTL must be positive, got %s", c.Relay.PresenceTTL)
	}
	if c.Relay.Heartbeat <= 0 || c.Relay.Heartbeat >= c.Relay.PresenceTTL {
		return fmt.Errorf("RELAY_HEARTBEAT must be positive and shorter than RELAY_PRESENCE_TTL")
	}
	return nil
}
