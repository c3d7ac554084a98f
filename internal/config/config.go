// Package config loads the serve configuration: defaults, then an optional
// yaml file, then CLICHING_* environment overrides.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store backends for the serve session registry.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Redis holds the connection settings for the redis session store.
type Redis struct {
	Addr     string `mapstructure:"addr" env:"CLICHING_REDIS_ADDR"`
	Password string `mapstructure:"password" env:"CLICHING_REDIS_PASSWORD"`
	DB       int    `mapstructure:"db" env:"CLICHING_REDIS_DB"`
}

// Config is the serve configuration.
type Config struct {
	Addr       string        `mapstructure:"addr" env:"CLICHING_ADDR"`
	Store      string        `mapstructure:"store" env:"CLICHING_STORE"`
	SessionTTL time.Duration `mapstructure:"session_ttl" env:"CLICHING_SESSION_TTL"`
	Redis      Redis         `mapstructure:"redis"`

	// EncryptionKey, when set, encrypts stored sessions. Base64 of 32
	// bytes (AES-256).
	EncryptionKey string `mapstructure:"encryption_key" env:"CLICHING_ENCRYPTION_KEY"`

	// RedactPatterns mask matching question fragments before persistence.
	RedactPatterns []string `mapstructure:"redact_patterns" env:"CLICHING_REDACT_PATTERNS" envSeparator:","`
}

// EncryptionKeyBytes decodes the configured key. Returns nil when no key
// is set.
func (c Config) EncryptionKeyBytes() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}

	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode encryption key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:       ":8080",
		Store:      StoreMemory,
		SessionTTL: time.Hour,
		Redis: Redis{
			Addr: "localhost:6379",
		},
	}
}

// Load builds the configuration. The file is optional; a missing path
// argument skips it entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		// Decode through a generic map so partial files only override the
		// keys they mention.
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
			Result:     &cfg,
		})
		if err != nil {
			return Config{}, fmt.Errorf("build config decoder: %w", err)
		}
		if err := decoder.Decode(raw); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}

	if cfg.Store != StoreMemory && cfg.Store != StoreRedis {
		return Config{}, fmt.Errorf("unknown store backend %q (want %q or %q)",
			cfg.Store, StoreMemory, StoreRedis)
	}

	if _, err := cfg.EncryptionKeyBytes(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
