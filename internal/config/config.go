// Package config loads runtime settings from a YAML or JSON file and
// GRUNBERG_* environment variables, in that order of precedence (env wins).
package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GRUNBERG_"

// Storage backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
	SaveKey  string `yaml:"save_key" json:"save_key" env:"SAVE_KEY"`

	Storage  StorageConfig  `yaml:"storage" json:"storage" envPrefix:"STORAGE_"`
	Autosave AutosaveConfig `yaml:"autosave" json:"autosave" envPrefix:"AUTOSAVE_"`

	// EncryptionKey is a base64 AES-256 key. Empty disables encryption at rest.
	EncryptionKey string `yaml:"encryption_key" json:"encryption_key" env:"ENCRYPTION_KEY"`
	// FallbackKeys are older base64 keys still accepted for reading.
	FallbackKeys []string `yaml:"fallback_keys" json:"fallback_keys" env:"FALLBACK_KEYS" envSeparator:","`

	HTTP HTTPConfig `yaml:"http" json:"http" envPrefix:"HTTP_"`

	// QuestsDir holds quest documents (.md, .yaml, .json). Empty disables the catalog.
	QuestsDir string `yaml:"quests_dir" json:"quests_dir" env:"QUESTS_DIR"`
}

// StorageConfig selects and configures the save store.
type StorageConfig struct {
	Backend  string        `yaml:"backend" json:"backend" env:"BACKEND"`
	Path     string        `yaml:"path" json:"path" env:"PATH"`
	Addr     string        `yaml:"addr" json:"addr" env:"ADDR"`
	Password string        `yaml:"password" json:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" json:"db" env:"DB"`
	Prefix   string        `yaml:"prefix" json:"prefix" env:"PREFIX"`
	TTL      time.Duration `yaml:"ttl" json:"ttl" env:"TTL"`
	// Lock serializes writers across processes (redis only).
	Lock bool `yaml:"lock" json:"lock" env:"LOCK"`
}

type AutosaveConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled" env:"ENABLED"`
	Delay   time.Duration `yaml:"delay" json:"delay" env:"DELAY"`
}

type HTTPConfig struct {
	Addr    string `yaml:"addr" json:"addr" env:"ADDR"`
	Metrics bool   `yaml:"metrics" json:"metrics" env:"METRICS"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		SaveKey:  "grunberg_save",
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    filepath.Join(".grunberg", "saves"),
			Addr:    "localhost:6379",
		},
		Autosave: AutosaveConfig{
			Enabled: true,
			Delay:   500 * time.Millisecond,
		},
		HTTP: HTTPConfig{
			Addr:    ":8080",
			Metrics: true,
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the environment.
// A missing file is an error only when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendBolt, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if (c.Storage.Backend == BackendBolt || c.Storage.Backend == BackendSQLite) && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for %s", c.Storage.Backend)
	}
	if c.Storage.Lock && c.Storage.Backend != BackendRedis {
		return fmt.Errorf("storage.lock requires the redis backend")
	}
	if c.Autosave.Delay < 0 {
		return fmt.Errorf("autosave.delay must not be negative")
	}
	if _, _, err := c.Keys(); err != nil {
		return err
	}
	return nil
}

// Keys decodes the encryption keys. A nil active key means encryption is off.
func (c Config) Keys() (active []byte, fallback [][]byte, err error) {
	if c.EncryptionKey == "" {
		if len(c.FallbackKeys) > 0 {
			return nil, nil, fmt.Errorf("fallback_keys require encryption_key")
		}
		return nil, nil, nil
	}
	active, err = decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryption_key: %w", err)
	}
	for i, k := range c.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
