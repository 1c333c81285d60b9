// Package config loads the application configuration from environment
// variables using Koanf v2 with layered sources:
//
//  1. Defaults: built-in sensible defaults
//  2. Environment variables: override any setting
//
// Environment variables map onto the nested configuration structure, e.g.
// DB_HOST -> db.host and HTTP_PORT -> http.port. Unknown variables are
// ignored so unrelated environment noise never pollutes the config.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type (
	// Config holds all the configuration settings for the application.
	Config struct {
		Env     string        `koanf:"env"`
		DB      DBConfig      `koanf:"db"`
		HTTP    HTTPConfig    `koanf:"http"`
		Limiter LimiterConfig `koanf:"limiter"`
		Logging LoggingConfig `koanf:"logging"`
	}

	// DBConfig represents the connection settings for the movies store.
	DBConfig struct {
		Host     string `koanf:"host"`
		Port     int    `koanf:"port"`
		User     string `koanf:"user"`
		Password string `koanf:"password"`
		Name     string `koanf:"name"`
		SSLMode  string `koanf:"sslmode"`

		// MaxConns is the fixed limit on pooled connections; acquisition
		// blocks when the pool is exhausted.
		MaxConns int `koanf:"max_conns"`

		// MaxConnIdleTime sets the maximum length of time that a connection
		// can be idle for before it is marked as expired.
		MaxConnIdleTime time.Duration `koanf:"max_conn_idle_time"`
	}

	// HTTPConfig represents the listen settings for the API server.
	HTTPConfig struct {
		Port int `koanf:"port"`
	}

	// LimiterConfig represents the per-client rate limiter settings.
	LimiterConfig struct {
		RPS     float64 `koanf:"rps"`
		Burst   int     `koanf:"burst"`
		Enabled bool    `koanf:"enabled"`
	}

	// LoggingConfig represents the structured logging settings.
	LoggingConfig struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	}
)

// defaultConfig returns a Config with all default values. These are applied
// first and then overridden by environment variables.
func defaultConfig() *Config {
	return &Config{
		Env: "development",
		DB: DBConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "",
			Name:            "movies",
			SSLMode:         "disable",
			MaxConns:        10,
			MaxConnIdleTime: 15 * time.Minute,
		},
		HTTP: HTTPConfig{
			Port: 4000,
		},
		Limiter: LimiterConfig{
			RPS:     2,
			Burst:   4,
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults plus environment variables,
// highest priority last, and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform maps environment variable names to koanf config paths.
// Unmapped variables return an empty string and are skipped.
func envTransform(key string) string {
	mappings := map[string]string{
		"env": "env",

		"db_host":               "db.host",
		"db_port":               "db.port",
		"db_user":               "db.user",
		"db_password":           "db.password",
		"db_name":               "db.name",
		"db_sslmode":            "db.sslmode",
		"db_max_conns":          "db.max_conns",
		"db_max_conn_idle_time": "db.max_conn_idle_time",

		"http_port": "http.port",

		"limiter_rps":     "limiter.rps",
		"limiter_burst":   "limiter.burst",
		"limiter_enabled": "limiter.enabled",

		"log_level":  "logging.level",
		"log_format": "logging.format",
	}

	if mapped, ok := mappings[strings.ToLower(key)]; ok {
		return mapped
	}

	return ""
}

// Validate checks that required configuration is present and within range.
// Error messages name the environment variable that must be fixed.
func (c *Config) Validate() error {
	if c.DB.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1 and 65535")
	}
	if c.DB.User == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DB.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Limiter.Enabled && c.Limiter.RPS <= 0 {
		return fmt.Errorf("LIMITER_RPS must be greater than zero when LIMITER_ENABLED=true")
	}

	return nil
}

// DSN renders the store settings as a PostgreSQL connection URL.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}

	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}

	return u.String()
}
