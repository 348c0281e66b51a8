// Package provider defines the interface for outbound email delivery
// services and the error taxonomy shared by their adapters.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hoolam/email-backend/internal/email"
)

// sendTimeout caps every outbound attempt, connection setup included.
const sendTimeout = 15 * time.Second

// poolSize caps pooled connections per destination host.
const poolSize = 3

// maxDetailBytes bounds how much of a provider error body is kept for logs.
const maxDetailBytes = 2048

// Provider is the interface that outbound delivery services implement.
// Each adapter translates a parsed email into one provider-specific HTTP
// request and reports the result through the shared error taxonomy.
type Provider interface {
	// Send delivers an email message through this provider. A nil return
	// means the provider accepted the message; failures are reported as
	// *ClientError or *OutageError.
	Send(ctx context.Context, msg *email.Email) error

	// Name returns the short name of this provider, used in logs and metrics.
	Name() string
}

// ClientError reports that the provider rejected the request as malformed
// (HTTP 400). The same submission would fail at any provider, so it is not
// treated as an outage.
type ClientError struct {
	StatusCode int
	Detail     string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("provider rejected request (HTTP %d): %s", e.StatusCode, e.Detail)
}

// OutageError reports that the provider could not take the request: an
// unexpected response status, a transport failure, or a timeout. StatusCode
// is zero when no response arrived.
type OutageError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *OutageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unreachable: %v", e.Err)
	}
	return fmt.Sprintf("provider failed (HTTP %d): %s", e.StatusCode, e.Detail)
}

func (e *OutageError) Unwrap() error { return e.Err }

// ClassifyResponse maps a provider HTTP response onto the error taxonomy:
// 200 and 202 are success, 400 is a ClientError, every other status is an
// OutageError. The body is read (truncated) for error detail; the caller
// remains responsible for closing it.
func ClassifyResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	case http.StatusBadRequest:
		return &ClientError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	default:
		return &OutageError{StatusCode: resp.StatusCode, Detail: readDetail(resp.Body)}
	}
}

// NewHTTPClient builds the outbound client shared by all adapters. Every
// request is capped at a fixed 15-second timeout, and connections pool per
// destination host with idle reuse between requests.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: sendTimeout,
		Transport: &http.Transport{
			MaxConnsPerHost:     poolSize,
			MaxIdleConnsPerHost: poolSize,
		},
	}
}

func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxDetailBytes))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
