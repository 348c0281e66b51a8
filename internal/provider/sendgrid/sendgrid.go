// Package sendgrid implements a Provider that sends emails via the SendGrid
// v3 mail send API.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hoolam/email-backend/internal/email"
	"github.com/hoolam/email-backend/internal/provider"
)

// SendGridProviderConfig holds the configuration for creating a SendGridProvider.
type SendGridProviderConfig struct {
	APIKey  string
	BaseURL string
}

// SendGridProvider sends emails via the SendGrid HTTP API using a JSON
// request authenticated with a bearer token.
type SendGridProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New creates a new SendGridProvider with the given configuration. The HTTP
// client is shared with the other providers and owns the request timeout.
func New(cfg SendGridProviderConfig, client *http.Client) *SendGridProvider {
	return &SendGridProvider{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/v3/mail/send",
		httpClient: client,
	}
}

// Send delivers an email message via the SendGrid mail send endpoint. The
// result is reported through the shared provider error taxonomy; there is
// no retrying here.
func (p *SendGridProvider) Send(ctx context.Context, msg *email.Email) error {
	bodyJSON, err := json.Marshal(buildSendRequest(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &provider.OutageError{Err: err}
	}
	defer resp.Body.Close()

	return provider.ClassifyResponse(resp)
}

// Name returns the provider name.
func (p *SendGridProvider) Name() string {
	return "sendgrid"
}
