// Package parser validates form-encoded mail submissions into the email model.
package parser

import (
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"

	"github.com/hoolam/email-backend/internal/email"
)

// FieldError reports a submission rejected because of a single named field.
// The message is safe to show to callers verbatim.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

// Parse validates a form-encoded mail submission and builds the normalized
// Email. All fields are trimmed before inspection; to, cc and bcc accept
// both repeated form fields and comma-separated lists inside one field.
// The first failing field wins: presence is checked in from, to, subject,
// text order, then addresses are parsed in from, to, cc, bcc order.
func Parse(values url.Values) (*email.Email, error) {
	from := joinField(values, "from")
	to := joinField(values, "to")
	cc := joinField(values, "cc")
	bcc := joinField(values, "bcc")
	subject := strings.TrimSpace(values.Get("subject"))
	text := strings.TrimSpace(values.Get("text"))

	for _, f := range []struct{ name, value string }{
		{"from", from},
		{"to", to},
		{"subject", subject},
		{"text", text},
	} {
		if f.value == "" {
			return nil, &FieldError{Field: f.name, Reason: "is required"}
		}
	}

	sender, err := parseSingleAddress(from)
	if err != nil {
		slog.Warn("rejected sender address",
			"field", "from",
			"value", from,
			"error", err,
		)
		return nil, &FieldError{Field: "from", Reason: "must be a single valid email address"}
	}

	result := &email.Email{
		From:    sender,
		Subject: subject,
		Text:    text,
	}

	for _, f := range []struct {
		name  string
		value string
		dest  *[]email.Address
	}{
		{"to", to, &result.To},
		{"cc", cc, &result.Cc},
		{"bcc", bcc, &result.Bcc},
	} {
		if f.value == "" {
			continue
		}
		addrs, err := parseAddressList(f.value)
		if err != nil {
			slog.Warn("rejected address list",
				"field", f.name,
				"value", f.value,
				"error", err,
			)
			return nil, &FieldError{Field: f.name, Reason: "contains an invalid email address"}
		}
		*f.dest = addrs
	}

	return result, nil
}

// joinField merges repeated occurrences of a form field into one
// comma-separated value, dropping occurrences that are blank after trimming.
func joinField(values url.Values, name string) string {
	parts := make([]string, 0, len(values[name]))
	for _, v := range values[name] {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ",")
}

// parseSingleAddress parses a value that must contain exactly one address.
// A value holding zero or several addresses is an error even when each
// individual address is well-formed.
func parseSingleAddress(raw string) (email.Address, error) {
	addrs, err := parseAddressList(raw)
	if err != nil {
		return email.Address{}, err
	}
	if len(addrs) != 1 {
		return email.Address{}, fmt.Errorf("expected exactly one address, got %d", len(addrs))
	}
	return addrs[0], nil
}

// parseAddressList parses a comma-separated RFC 5322 address list, keeping
// display names alongside the bare addresses.
func parseAddressList(raw string) ([]email.Address, error) {
	parsed, err := mail.ParseAddressList(raw)
	if err != nil {
		return nil, err
	}
	result := make([]email.Address, 0, len(parsed))
	for _, addr := range parsed {
		result = append(result, email.Address{Name: addr.Name, Address: addr.Address})
	}
	return result, nil
}
