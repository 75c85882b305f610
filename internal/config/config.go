// Package config provides configuration loading for minuted.
//
// Configuration is read from an optional YAML file and overridden by
// environment variables, with hardcoded defaults underneath.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the complete minuted configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	SMTP    SMTPConfig    `koanf:"smtp"`
	Watch   WatchConfig   `koanf:"watch"`
	Extract ExtractConfig `koanf:"extract"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
	// RateLimit is the per-client request rate (requests/second) for the
	// extract endpoints. Zero disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SMTPConfig holds summary email delivery settings.
type SMTPConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password Secret `koanf:"password"`
	From     string `koanf:"from"`
	UseTLS   bool   `koanf:"use_tls"`
}

// Configured reports whether credentials are present.
func (c SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password.IsSet()
}

// WatchConfig holds inbox-watcher settings for the daemon.
type WatchConfig struct {
	Enabled bool   `koanf:"enabled"`
	Inbox   string `koanf:"inbox"`
	Outbox  string `koanf:"outbox"`
}

// ExtractConfig holds extraction tuning.
type ExtractConfig struct {
	CaptureContext bool `koanf:"capture_context"`
	ContextWindow  int  `koanf:"context_window"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9180
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if cfg.Server.RateLimit == 0 {
		cfg.Server.RateLimit = 20
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	if cfg.Watch.Inbox == "" {
		cfg.Watch.Inbox = "transcripts"
	}
	if cfg.Watch.Outbox == "" {
		cfg.Watch.Outbox = "reports"
	}

	if cfg.Extract.ContextWindow == 0 {
		cfg.Extract.ContextWindow = 1
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit cannot be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port out of range: %d", c.SMTP.Port)
	}
	if c.Watch.Enabled && c.Watch.Inbox == c.Watch.Outbox {
		return fmt.Errorf("watch.inbox and watch.outbox must differ")
	}
	return nil
}
