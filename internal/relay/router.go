// Package relay routes validated mail to the active delivery provider and
// fails over to the next provider when the active one cannot take traffic.
package relay

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/hoolam/email-backend/internal/email"
	"github.com/hoolam/email-backend/internal/provider"
	"github.com/hoolam/email-backend/internal/telemetry"
)

// DeliveryStatus represents the outcome of one delivery attempt.
type DeliveryStatus string

const (
	// StatusSent means the active provider accepted the message.
	StatusSent DeliveryStatus = "sent"

	// StatusRejected means the provider refused the submission as malformed.
	// The same request would fail at every provider, so no failover happens.
	StatusRejected DeliveryStatus = "rejected"

	// StatusUnavailable means the provider could not take the request.
	// Subsequent calls go to the next provider in the list.
	StatusUnavailable DeliveryStatus = "unavailable"
)

// Outcome is the result of a Deliver call. Provider names the adapter that
// made the attempt (empty when no attempt was possible); Detail carries the
// underlying error for the failure statuses.
type Outcome struct {
	Status   DeliveryStatus
	Provider string
	Detail   error
}

// Router holds the fixed, ordered provider list and the cursor marking the
// active provider. The list never changes after construction; the cursor
// only moves forward, wrapping around, when the active provider fails with
// an outage. Requests run on concurrent goroutines, so the cursor is
// guarded by a mutex.
type Router struct {
	mu        sync.Mutex
	providers []provider.Provider
	cursor    int
}

// New creates a Router over the given providers. The first provider is the
// active one; list order is the failover order.
func New(providers []provider.Provider) *Router {
	return &Router{providers: providers}
}

// Deliver hands the message to the active provider: exactly one outbound
// attempt, no retrying. A provider rejection keeps the cursor in place. Any
// other failure advances the cursor, so the next call uses the following
// provider; the current call still reports unavailable. Concurrent calls
// may observe the same cursor before either one fails; the later advance
// wins and the cursor still moves a single step.
func (r *Router) Deliver(ctx context.Context, msg *email.Email) Outcome {
	r.mu.Lock()
	if len(r.providers) == 0 {
		r.mu.Unlock()
		return Outcome{Status: StatusUnavailable, Detail: errors.New("no providers configured")}
	}
	active := r.providers[r.cursor]
	r.mu.Unlock()

	err := active.Send(ctx, msg)
	if err == nil {
		return Outcome{Status: StatusSent, Provider: active.Name()}
	}

	var clientErr *provider.ClientError
	if errors.As(err, &clientErr) {
		return Outcome{Status: StatusRejected, Provider: active.Name(), Detail: err}
	}

	r.advance(active.Name())
	return Outcome{Status: StatusUnavailable, Provider: active.Name(), Detail: err}
}

// advance moves the cursor one step past its current position, wrapping at
// the end of the list.
func (r *Router) advance(from string) {
	r.mu.Lock()
	r.cursor = (r.cursor + 1) % len(r.providers)
	next := r.providers[r.cursor].Name()
	r.mu.Unlock()

	slog.Warn("provider unavailable, failing over",
		"from", from,
		"to", next,
	)
	if telemetry.Relay != nil {
		telemetry.Relay.Failovers.WithLabelValues(from, next).Inc()
	}
}
