// Package mailgun implements a Provider that sends emails via the Mailgun
// messages API.
package mailgun

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hoolam/email-backend/internal/email"
	"github.com/hoolam/email-backend/internal/provider"
)

// MailgunProviderConfig holds the configuration for creating a MailgunProvider.
type MailgunProviderConfig struct {
	APIKey  string
	Domain  string
	BaseURL string
}

// MailgunProvider sends emails via the Mailgun HTTP API using a
// form-encoded request authenticated with basic auth.
type MailgunProvider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New creates a new MailgunProvider with the given configuration. The HTTP
// client is shared with the other providers and owns the request timeout.
func New(cfg MailgunProviderConfig, client *http.Client) *MailgunProvider {
	return &MailgunProvider{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(cfg.BaseURL, "/") + "/v3/" + cfg.Domain + "/messages",
		httpClient: client,
	}
}

// Send delivers an email message via the Mailgun messages endpoint. The
// result is reported through the shared provider error taxonomy; there is
// no retrying here.
func (p *MailgunProvider) Send(ctx context.Context, msg *email.Email) error {
	form := buildForm(msg)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("api", p.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &provider.OutageError{Err: err}
	}
	defer resp.Body.Close()

	return provider.ClassifyResponse(resp)
}

// Name returns the provider name.
func (p *MailgunProvider) Name() string {
	return "mailgun"
}

// buildForm translates the message into Mailgun's form fields. Each
// recipient becomes one repeated to/cc/bcc entry; this route carries bare
// addresses only, display names are dropped.
func buildForm(msg *email.Email) url.Values {
	form := url.Values{}
	form.Set("from", msg.From.Address)
	for _, to := range msg.To {
		form.Add("to", to.Address)
	}
	for _, cc := range msg.Cc {
		form.Add("cc", cc.Address)
	}
	for _, bcc := range msg.Bcc {
		form.Add("bcc", bcc.Address)
	}
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Text)
	return form
}
