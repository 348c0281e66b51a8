package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// allEnvVars lists every variable the loader reads, for clearing in tests.
var allEnvVars = []string{
	"LISTEN_ADDR", "LOG_LEVEL", "LOG_DIR",
	"MAILGUN_API_KEY", "MAILGUN_DOMAIN", "MAILGUN_BASE_URL",
	"SENDGRID_API_KEY", "SENDGRID_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range allEnvVars {
		t.Setenv(env, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":8080" {
		t.Errorf("Server.Listen: got %q, want %q", cfg.Server.Listen, ":8080")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Dir != "" {
		t.Errorf("Logging.Dir: got %q, want empty", cfg.Logging.Dir)
	}
	if cfg.Mailgun.APIKey != "" {
		t.Errorf("Mailgun.APIKey: got %q, want empty", cfg.Mailgun.APIKey)
	}
	if cfg.Mailgun.BaseURL != "https://api.mailgun.net" {
		t.Errorf("Mailgun.BaseURL: got %q, want %q", cfg.Mailgun.BaseURL, "https://api.mailgun.net")
	}
	if cfg.SendGrid.APIKey != "" {
		t.Errorf("SendGrid.APIKey: got %q, want empty", cfg.SendGrid.APIKey)
	}
	if cfg.SendGrid.BaseURL != "https://api.sendgrid.com" {
		t.Errorf("SendGrid.BaseURL: got %q, want %q", cfg.SendGrid.BaseURL, "https://api.sendgrid.com")
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_DIR", "/var/log/email-backend")
	t.Setenv("MAILGUN_API_KEY", "key-abc")
	t.Setenv("MAILGUN_DOMAIN", "mail.example.com")
	t.Setenv("MAILGUN_BASE_URL", "https://api.eu.mailgun.net")
	t.Setenv("SENDGRID_API_KEY", "SG.xyz")
	t.Setenv("SENDGRID_BASE_URL", "https://sendgrid.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":9090" {
		t.Errorf("Server.Listen: got %q, want %q", cfg.Server.Listen, ":9090")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q (lowercased)", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Dir != "/var/log/email-backend" {
		t.Errorf("Logging.Dir: got %q, want %q", cfg.Logging.Dir, "/var/log/email-backend")
	}
	if cfg.Mailgun.APIKey != "key-abc" {
		t.Errorf("Mailgun.APIKey: got %q, want %q", cfg.Mailgun.APIKey, "key-abc")
	}
	if cfg.Mailgun.Domain != "mail.example.com" {
		t.Errorf("Mailgun.Domain: got %q, want %q", cfg.Mailgun.Domain, "mail.example.com")
	}
	if cfg.Mailgun.BaseURL != "https://api.eu.mailgun.net" {
		t.Errorf("Mailgun.BaseURL: got %q, want %q", cfg.Mailgun.BaseURL, "https://api.eu.mailgun.net")
	}
	if cfg.SendGrid.APIKey != "SG.xyz" {
		t.Errorf("SendGrid.APIKey: got %q, want %q", cfg.SendGrid.APIKey, "SG.xyz")
	}
	if cfg.SendGrid.BaseURL != "https://sendgrid.example.com" {
		t.Errorf("SendGrid.BaseURL: got %q, want %q", cfg.SendGrid.BaseURL, "https://sendgrid.example.com")
	}
}

func TestLoadFromFile(t *testing.T) {
	yamlContent := `
server:
  listen: ":3080"
logging:
  level: "warn"
  dir: "/tmp/logs"
mailgun:
  api_key: "yaml-mg-key"
  domain: "yaml.example.com"
sendgrid:
  api_key: "yaml-sg-key"
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	clearEnv(t)

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":3080" {
		t.Errorf("Server.Listen: got %q, want %q", cfg.Server.Listen, ":3080")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Logging.Dir != "/tmp/logs" {
		t.Errorf("Logging.Dir: got %q, want %q", cfg.Logging.Dir, "/tmp/logs")
	}
	if cfg.Mailgun.APIKey != "yaml-mg-key" {
		t.Errorf("Mailgun.APIKey: got %q, want %q", cfg.Mailgun.APIKey, "yaml-mg-key")
	}
	if cfg.Mailgun.Domain != "yaml.example.com" {
		t.Errorf("Mailgun.Domain: got %q, want %q", cfg.Mailgun.Domain, "yaml.example.com")
	}
	// Values the file does not mention keep their defaults.
	if cfg.Mailgun.BaseURL != "https://api.mailgun.net" {
		t.Errorf("Mailgun.BaseURL: got %q, want default", cfg.Mailgun.BaseURL)
	}
	if cfg.SendGrid.BaseURL != "https://api.sendgrid.com" {
		t.Errorf("SendGrid.BaseURL: got %q, want default", cfg.SendGrid.BaseURL)
	}
}

func TestLoadFromFile_EnvOverridesYAML(t *testing.T) {
	yamlContent := `
server:
  listen: ":3080"
mailgun:
  api_key: "yaml-mg-key"
  domain: "yaml.example.com"
`

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("MAILGUN_API_KEY", "env-mg-key")

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env var should override YAML
	if cfg.Server.Listen != ":9090" {
		t.Errorf("Server.Listen: got %q, want %q (env should override YAML)", cfg.Server.Listen, ":9090")
	}
	if cfg.Mailgun.APIKey != "env-mg-key" {
		t.Errorf("Mailgun.APIKey: got %q, want %q (env should override YAML)", cfg.Mailgun.APIKey, "env-mg-key")
	}
	// Empty env var should NOT override YAML value
	if cfg.Mailgun.Domain != "yaml.example.com" {
		t.Errorf("Mailgun.Domain: got %q, want %q (empty env should not override YAML)", cfg.Mailgun.Domain, "yaml.example.com")
	}
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	_, err := LoadFromFile(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	complete := func() *Config {
		return &Config{
			Mailgun:  MailgunConfig{APIKey: "mg", Domain: "example.com"},
			SendGrid: SendGridConfig{APIKey: "sg"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{name: "complete", mutate: func(c *Config) {}, wantKey: ""},
		{
			name:    "missing mailgun api key",
			mutate:  func(c *Config) { c.Mailgun.APIKey = "" },
			wantKey: "MAILGUN_API_KEY",
		},
		{
			name:    "missing mailgun domain",
			mutate:  func(c *Config) { c.Mailgun.Domain = "" },
			wantKey: "MAILGUN_DOMAIN",
		},
		{
			name:    "missing sendgrid api key",
			mutate:  func(c *Config) { c.SendGrid.APIKey = "" },
			wantKey: "SENDGRID_API_KEY",
		},
		{
			name: "first missing credential wins",
			mutate: func(c *Config) {
				c.Mailgun.APIKey = ""
				c.SendGrid.APIKey = ""
			},
			wantKey: "MAILGUN_API_KEY",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := complete()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if cfgErr.Key != tt.wantKey {
				t.Errorf("Key: got %q, want %q", cfgErr.Key, tt.wantKey)
			}
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	t.Parallel()

	err := &Error{Key: "MAILGUN_API_KEY"}
	want := "missing required configuration: MAILGUN_API_KEY"
	if err.Error() != want {
		t.Errorf("Error(): got %q, want %q", err.Error(), want)
	}
}
