// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token       string `yaml:"-"`            // positional CLI argument only
	Workers     int    `yaml:"workers"`      // update workers, keyed by user id
	PollTimeout int    `yaml:"poll_timeout"` // long-poll timeout in seconds
	Debug       bool   `yaml:"debug"`        // tgbotapi request logging
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the ops HTTP server
}

type StoreConfig struct {
	Backend string        `yaml:"backend"` // memory|redis
	TTL     time.Duration `yaml:"ttl"`     // forward link lifetime
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Bot     BotConfig     `yaml:"bot"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// LoadConfig reads the optional YAML file at path and fills in defaults.
// An empty path skips the file; the token always comes from the command line.
func LoadConfig(path, token string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 4
	}
	if cfg.Bot.PollTimeout <= 0 {
		cfg.Bot.PollTimeout = 60
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = BackendMemory
	}
	cfg.Store.TTL = normalizeTTL(cfg.Store.TTL)

	// Minimal validation
	cfg.Bot.Token = strings.TrimSpace(token)
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot token is required")
	}
	switch cfg.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if cfg.Redis.URL == "" {
			return nil, errors.New("redis.url is required when store.backend is redis")
		}
	default:
		return nil, fmt.Errorf("unknown store.backend %q", cfg.Store.Backend)
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return 7 * 24 * time.Hour
	}
	return d
}
