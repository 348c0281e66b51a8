// Package config provides environment-variable-first configuration loading
// with optional YAML file fallback for the email backend.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Mailgun  MailgunConfig  `yaml:"mailgun"`
	SendGrid SendGridConfig `yaml:"sendgrid"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LoggingConfig holds logging configuration. Dir is optional; when set the
// logger appends to a file there in addition to stdout.
type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// MailgunConfig holds the Mailgun provider credentials and endpoint.
type MailgunConfig struct {
	APIKey  string `yaml:"api_key"`
	Domain  string `yaml:"domain"`
	BaseURL string `yaml:"base_url"`
}

// SendGridConfig holds the SendGrid provider credentials and endpoint.
type SendGridConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Error reports a configuration problem that prevents startup.
type Error struct {
	Key string
}

func (e *Error) Error() string {
	return "missing required configuration: " + e.Key
}

// Load loads configuration from environment variables with sensible
// defaults. A .env file in the working directory is merged into the
// environment first; real environment variables always win.
func Load() (*Config, error) {
	loadDotenv()
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables. Returns an error if the
// specified file path does not exist.
func LoadFromFile(path string) (*Config, error) {
	loadDotenv()
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables always override YAML values
	cfg.applyEnvVars()

	return cfg, nil
}

// Validate checks that every mandatory provider credential is present and
// returns an *Error naming the first missing one. Both providers must be
// fully configured before the server takes traffic.
func (c *Config) Validate() error {
	switch {
	case c.Mailgun.APIKey == "":
		return &Error{Key: "MAILGUN_API_KEY"}
	case c.Mailgun.Domain == "":
		return &Error{Key: "MAILGUN_DOMAIN"}
	case c.SendGrid.APIKey == "":
		return &Error{Key: "SENDGRID_API_KEY"}
	}
	return nil
}

// loadDotenv merges a .env file into the process environment when one
// exists. godotenv never overrides variables that are already set.
func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
}

// applyDefaults sets sensible default values for all configuration fields.
func (c *Config) applyDefaults() {
	c.Server.Listen = ":8080"
	c.Logging.Level = "info"
	c.Mailgun.BaseURL = "https://api.mailgun.net"
	c.SendGrid.BaseURL = "https://api.sendgrid.com"
}

// applyEnvVars overrides configuration with environment variable values.
// Only non-empty environment variables override existing values.
func (c *Config) applyEnvVars() {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.Logging.Dir = v
	}

	if v := os.Getenv("MAILGUN_API_KEY"); v != "" {
		c.Mailgun.APIKey = v
	}
	if v := os.Getenv("MAILGUN_DOMAIN"); v != "" {
		c.Mailgun.Domain = v
	}
	if v := os.Getenv("MAILGUN_BASE_URL"); v != "" {
		c.Mailgun.BaseURL = v
	}

	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		c.SendGrid.APIKey = v
	}
	if v := os.Getenv("SENDGRID_BASE_URL"); v != "" {
		c.SendGrid.BaseURL = v
	}
}
