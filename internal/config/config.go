package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Session store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	ServerAddr      string        `mapstructure:"SERVER_ADDR"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	StoreBackend    string        `mapstructure:"STORE_BACKEND"`
	RedisConnString string        `mapstructure:"REDIS_CONNSTRING"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL"`
	JanitorInterval time.Duration `mapstructure:"JANITOR_INTERVAL"`
	HistoryDSN      string        `mapstructure:"HISTORY_DSN"`
	OtelEnabled     bool          `mapstructure:"OTEL_ENABLED"`
	OtelEndpoint    string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_ADDR":                 ":8080",
	"LOG_LEVEL":                   "info",
	"STORE_BACKEND":               BackendMemory,
	"REDIS_CONNSTRING":            "localhost:6379",
	"SESSION_TTL":                 "24h",
	"JANITOR_INTERVAL":            "5m",
	"HISTORY_DSN":                 ":memory:",
	"OTEL_ENABLED":                false,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel-collector:4317",
	"SHUTDOWN_TIMEOUT":            "5s",
}

// Load reads the configuration. Defaults come first, then the file at
// cfgPath when it is not empty, then environment variables.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgPath, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	c.StoreBackend = strings.ToLower(c.StoreBackend)
	switch c.StoreBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: want %s or %s", c.StoreBackend, BackendMemory, BackendRedis)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.ServerAddr == "" {
		return fmt.Errorf("SERVER_ADDR must not be empty")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.JanitorInterval <= 0 {
		return fmt.Errorf("JANITOR_INTERVAL must be positive")
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
