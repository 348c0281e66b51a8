package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hoolam/email-backend/internal/parser"
	"github.com/hoolam/email-backend/internal/relay"
	"github.com/hoolam/email-backend/internal/telemetry"
)

// User-facing response bodies for failed deliveries. Provider error detail
// stays in the logs and never reaches the caller.
const (
	msgRejected    = "message rejected by the delivery provider"
	msgUnavailable = "mail delivery is temporarily unavailable"
)

// handleMail accepts a form-encoded mail submission, validates it, and
// relays it to an outbound provider.
func (s *Server) handleMail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Warn("malformed form body", "error", err)
		countSubmission("invalid")
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	msg, err := parser.Parse(r.PostForm)
	if err != nil {
		countSubmission("invalid")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A dropped client connection must not abort the outbound attempt.
	ctx := context.WithoutCancel(r.Context())
	outcome := s.config.Relay.Deliver(ctx, msg)

	countDelivery(outcome)
	countSubmission(string(outcome.Status))

	switch outcome.Status {
	case relay.StatusSent:
		slog.Info("message relayed",
			"provider", outcome.Provider,
			"from", msg.From.Address,
			"recipients", len(msg.To)+len(msg.Cc)+len(msg.Bcc),
		)
		w.WriteHeader(http.StatusOK)
	case relay.StatusRejected:
		slog.Warn("message rejected by provider",
			"provider", outcome.Provider,
			"error", outcome.Detail,
		)
		http.Error(w, msgRejected, http.StatusBadRequest)
	default:
		slog.Error("delivery unavailable",
			"provider", outcome.Provider,
			"error", outcome.Detail,
		)
		http.Error(w, msgUnavailable, http.StatusInternalServerError)
	}
}

// handleHealthz reports process liveness. It does not probe providers.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func countDelivery(outcome relay.Outcome) {
	if telemetry.Relay == nil {
		return
	}
	telemetry.Relay.Deliveries.WithLabelValues(outcome.Provider, string(outcome.Status)).Inc()
}

func countSubmission(status string) {
	if telemetry.Relay == nil {
		return
	}
	telemetry.Relay.Submissions.WithLabelValues(status).Inc()
}
