package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// =============================================================================
// Config Types
// =============================================================================

// Config holds all application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Truncate TruncateConfig `mapstructure:"truncate"`
	Date     DateConfig     `mapstructure:"date"`
	Random   RandomConfig   `mapstructure:"random"`
	Env      EnvConfig      `mapstructure:"env"`
	Output   OutputConfig   `mapstructure:"output"`
	Server   ServerConfig   `mapstructure:"server"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TruncateConfig holds the defaults of the truncate command.
type TruncateConfig struct {
	Length int    `mapstructure:"length"`
	Suffix string `mapstructure:"suffix"`
}

// DateConfig holds date parsing and formatting defaults.
type DateConfig struct {
	Format string `mapstructure:"format"`

	// Timezone is an IANA name used for date text without an offset.
	// "Local" means the host zone.
	Timezone string `mapstructure:"timezone"`
}

// Location resolves Timezone.
func (c DateConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "date.timezone %q", c.Timezone),
			"use an IANA zone name such as UTC or Europe/Berlin",
		)
	}
	return loc, nil
}

// RandomConfig holds the default length of generated strings.
type RandomConfig struct {
	Length int `mapstructure:"length"`
}

// EnvConfig holds environment lookup configuration.
type EnvConfig struct {
	// File is an optional dotenv file consulted after the process environment.
	File string `mapstructure:"file"`
}

// OutputConfig selects how command results are printed.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server configuration for the serve command.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// TrustProxies honours X-Forwarded-Proto and X-Forwarded-Host.
	TrustProxies bool `mapstructure:"trust_proxies"`
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// =============================================================================
// Config Loading
// =============================================================================

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("truncate.length", 100)
	v.SetDefault("truncate.suffix", "...")
	v.SetDefault("date.format", "Y-m-d H:i:s")
	v.SetDefault("date.timezone", "Local")
	v.SetDefault("random.length", 16)
	v.SetDefault("env.file", "")
	v.SetDefault("output.format", "text")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.trust_proxies", false)

	// Load from file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// A missing file falls back to defaults; a broken one does not
			var parseErr viper.ConfigParseError
			if errors.As(err, &parseErr) {
				return nil, errors.Wrap(err, "failed to parse config file")
			}
		}
	}

	v.SetEnvPrefix("HELPERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// =============================================================================
// Logger Setup
// =============================================================================

// SetupLogger creates a logger with the configured level and format.
// Logs go to w so they never mix with command output.
func SetupLogger(cfg *Config, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}
