// Package config loads bankocr settings from a YAML file.
//
// The file is decoded into a generic map first and then applied over the
// defaults with mapstructure, so a file only needs the keys it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/bankocr/pkg/report"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "bankocr.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config holds every tunable of the CLI and servers.
type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	Format   string      `mapstructure:"format"`
	PadRows  bool        `mapstructure:"pad_rows"`
	Store    StoreConfig `mapstructure:"store"`
	HTTP     HTTPConfig  `mapstructure:"http"`
	Watch    WatchConfig `mapstructure:"watch"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Redis  RedisConfig `mapstructure:"redis"`
	Mask   int         `mapstructure:"mask_digits"` // last N digits stay visible in stored batches; 0 disables
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type WatchConfig struct {
	Pattern  string        `mapstructure:"pattern"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Format:   "text",
		Store: StoreConfig{
			Driver: DriverMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "bankocr:batch:",
			},
		},
		HTTP: HTTPConfig{Port: 8080},
		Watch: WatchConfig{
			Pattern:  "*.txt",
			Debounce: 250 * time.Millisecond,
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path, or a missing DefaultPath, yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode applies YAML data over cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	add := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	if !known(report.Formats(), c.Format) {
		add("format", fmt.Sprintf("must be one of %v", report.Formats()), c.Format)
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Store.Redis.Addr == "" {
			add("store.redis.addr", "required when store.driver is redis", nil)
		}
	default:
		add("store.driver", "must be memory or redis", c.Store.Driver)
	}
	if c.Store.Redis.TTL < 0 {
		add("store.redis.ttl", "must not be negative", c.Store.Redis.TTL)
	}
	if c.Store.Mask < 0 || c.Store.Mask > 9 {
		add("store.mask_digits", "must be between 0 and 9", c.Store.Mask)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		add("http.port", "must be between 1 and 65535", c.HTTP.Port)
	}
	if c.Watch.Debounce < 0 {
		add("watch.debounce", "must not be negative", c.Watch.Debounce)
	}
	if c.Watch.Pattern == "" {
		add("watch.pattern", "must not be empty", nil)
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func known(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
