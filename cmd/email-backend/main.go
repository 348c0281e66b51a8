// Package main is the entry point for the email relay backend.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoolam/email-backend/internal/config"
	"github.com/hoolam/email-backend/internal/httpserver"
	"github.com/hoolam/email-backend/internal/logging"
	"github.com/hoolam/email-backend/internal/provider"
	"github.com/hoolam/email-backend/internal/provider/mailgun"
	"github.com/hoolam/email-backend/internal/provider/sendgrid"
	"github.com/hoolam/email-backend/internal/relay"
	"github.com/hoolam/email-backend/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logCloser, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Dir)
	if err != nil {
		slog.Error("failed to setup logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	// Refuse to start without complete credentials for both providers.
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	telemetry.Init("email_backend")

	// Both providers share one pooled outbound client.
	httpClient := provider.NewHTTPClient()

	providers := []provider.Provider{
		mailgun.New(mailgun.MailgunProviderConfig{
			APIKey:  cfg.Mailgun.APIKey,
			Domain:  cfg.Mailgun.Domain,
			BaseURL: cfg.Mailgun.BaseURL,
		}, httpClient),
		sendgrid.New(sendgrid.SendGridProviderConfig{
			APIKey:  cfg.SendGrid.APIKey,
			BaseURL: cfg.SendGrid.BaseURL,
		}, httpClient),
	}

	server := httpserver.New(httpserver.ServerConfig{
		ListenAddr: cfg.Server.Listen,
		Relay:      relay.New(providers),
	})

	slog.Info("starting email-backend",
		"listen", cfg.Server.Listen,
		"active_provider", providers[0].Name(),
		"providers", len(providers),
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigCh
		slog.Info("received signal, initiating shutdown", "signal", sig)
		cancel()
	}()

	// Start the server (blocks until context is cancelled)
	if err := server.ListenAndServe(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("email-backend stopped")
}

// loadConfig loads configuration from the specified path (YAML + env override)
// or from environment variables only if no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
