// Package config provides YAML-based configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// AppConfig is the root of the configuration file.
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port           int     `yaml:"port"`
	BindAddress    string  `yaml:"bindAddress"`
	EnableCORS     bool    `yaml:"enableCors"`
	AllowOrigins   string  `yaml:"allowOrigins"`
	ReadTimeout    int     `yaml:"readTimeoutSeconds"`
	WriteTimeout   int     `yaml:"writeTimeoutSeconds"`
	IdleTimeout    int     `yaml:"idleTimeoutSeconds"`
	RequestTimeout int     `yaml:"requestTimeoutSeconds"`
	BodyLimit      string  `yaml:"bodyLimit"`
	RateLimit      float64 `yaml:"rateLimit"` // requests per second per client, 0 disables
	RateBurst      int     `yaml:"rateBurst"`
}

// SessionConfig bounds the wizard sessions kept in memory.
type SessionConfig struct {
	MaxSessions            int `yaml:"maxSessions"`
	IdleTimeoutMinutes     int `yaml:"idleTimeoutMinutes"`
	CleanupIntervalSeconds int `yaml:"cleanupIntervalSeconds"`
}

// DisplayConfig controls how records are rendered.
type DisplayConfig struct {
	Locale      string `yaml:"locale"`
	Timezone    string `yaml:"timezone"`
	RecentCount int    `yaml:"recentCount"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level          string `yaml:"level"`
	Pretty         bool   `yaml:"pretty"`
	RequestLogging bool   `yaml:"requestLogging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:           8089,
			BindAddress:    "0.0.0.0",
			EnableCORS:     true,
			AllowOrigins:   "*",
			ReadTimeout:    30,
			WriteTimeout:   30,
			IdleTimeout:    120,
			RequestTimeout: 10,
			BodyLimit:      "64K",
			RateLimit:      20,
			RateBurst:      40,
		},
		Session: SessionConfig{
			MaxSessions:            100,
			IdleTimeoutMinutes:     30,
			CleanupIntervalSeconds: 60,
		},
		Display: DisplayConfig{
			Locale:      "pt-BR",
			Timezone:    "America/Sao_Paulo",
			RecentCount: 3,
		},
		Logging: LoggingConfig{
			Level:          "info",
			Pretty:         false,
			RequestLogging: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file, writing the defaults there
// on first run. A .env file next to it is loaded before environment
// overrides are applied; variables already set win.
func LoadConfig(configPath string) (*AppConfig, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
	}

	var config *AppConfig
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config = DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		config = DefaultConfig()
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyEnvironmentOverrides()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes the configuration as YAML.
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# BDO activity wizard configuration\n# This file is auto-generated on first run\n\n")
	content := append(header, output...)

	if dir := filepath.Dir(configPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if locale := os.Getenv("BDO_LOCALE"); locale != "" {
		c.Display.Locale = locale
	}
	if zone := os.Getenv("BDO_TIMEZONE"); zone != "" {
		c.Display.Timezone = zone
	}
	if level := os.Getenv("BDO_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate rejects values the server cannot start with.
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.maxSessions must be positive, got %d", c.Session.MaxSessions)
	}
	if c.Display.RecentCount < 0 {
		return fmt.Errorf("display.recentCount must not be negative, got %d", c.Display.RecentCount)
	}
	if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
		return fmt.Errorf("invalid display.timezone %q: %w", c.Display.Timezone, err)
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level %q: %w", c.Logging.Level, err)
	}
	return nil
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

// ReadTimeoutDuration returns the HTTP read timeout.
func (s ServerConfig) ReadTimeoutDuration() time.Duration { return seconds(s.ReadTimeout) }

// WriteTimeoutDuration returns the HTTP write timeout.
func (s ServerConfig) WriteTimeoutDuration() time.Duration { return seconds(s.WriteTimeout) }

// IdleTimeoutDuration returns the HTTP keep-alive timeout.
func (s ServerConfig) IdleTimeoutDuration() time.Duration { return seconds(s.IdleTimeout) }

// RequestTimeoutDuration returns the per-request handler timeout.
func (s ServerConfig) RequestTimeoutDuration() time.Duration { return seconds(s.RequestTimeout) }

// IdleTimeout returns how long an untouched session survives.
func (s SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// CleanupInterval returns how often idle sessions are swept.
func (s SessionConfig) CleanupInterval() time.Duration { return seconds(s.CleanupIntervalSeconds) }
