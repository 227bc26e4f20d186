// Package config provides configuration structures and loading logic for pathfinder.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the global configuration.
type Config struct {
	LogLevel    string       `mapstructure:"log_level"`
	FilePathEnv string       `mapstructure:"file_path_env"`
	FilePaths   []string     `mapstructure:"file_paths"`
	Suffixes    []string     `mapstructure:"suffixes"`
	Memo        bool         `mapstructure:"memo"`
	Watch       bool         `mapstructure:"watch"`
	Cache       CacheConfig  `mapstructure:"cache"`
	Server      ServerConfig `mapstructure:"server"`
}

// CacheConfig selects and configures the fingerprint cache.
type CacheConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the connection settings of the redis cache backend.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port    int  `mapstructure:"port"`
	Metrics bool `mapstructure:"metrics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		FilePathEnv: "PATHFINDER_FILE_PATH",
		Cache: CacheConfig{
			Backend: CacheMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "pathfinder:digest:",
			},
		},
		Server: ServerConfig{
			Port:    8080,
			Metrics: true,
		},
	}
}

// Load reads configuration from a YAML or JSON file and applies environment
// variable overrides. An empty path yields the defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- config file path is supplied by the operator
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := Decode(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Decode merges a YAML (or JSON) document into cfg. Unknown keys are rejected.
// Durations accept Go syntax ("30s"); lists accept either sequences or a
// single string separated by the OS path list separator.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(string(filepath.ListSeparator)),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnvOverrides(cfg *Config) error {
	var errs []error
	if val := os.Getenv("PATHFINDER_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("PATHFINDER_SUFFIXES"); val != "" {
		cfg.Suffixes = append(cfg.Suffixes, filepath.SplitList(val)...)
	}
	if val := os.Getenv("PATHFINDER_MEMO"); val != "" {
		memo, err := strconv.ParseBool(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("PATHFINDER_MEMO=%q: %w", val, err))
		} else {
			cfg.Memo = memo
		}
	}
	if val := os.Getenv("PATHFINDER_CACHE_BACKEND"); val != "" {
		cfg.Cache.Backend = strings.ToLower(val)
	}
	if val := os.Getenv("PATHFINDER_REDIS_ADDR"); val != "" {
		cfg.Cache.Redis.Addr = val
	}
	if val := os.Getenv("PATHFINDER_REDIS_PASSWORD"); val != "" {
		cfg.Cache.Redis.Password = val
	}
	if val := os.Getenv("PATHFINDER_SERVER_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			errs = append(errs, fmt.Errorf("PATHFINDER_SERVER_PORT=%q: %w", val, err))
		} else {
			cfg.Server.Port = port
		}
	}
	return errors.Join(errs...)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
		if c.Cache.Redis.TTL < 0 {
			return fmt.Errorf("cache.redis.ttl must not be negative")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (supported: none, memory, redis)", c.Cache.Backend)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}
