package sendgrid

import (
	"github.com/hoolam/email-backend/internal/email"
)

// sendRequest is the top-level request body for the mail send endpoint.
type sendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             emailAddress      `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

// personalization groups the recipients of one message envelope.
type personalization struct {
	To  []emailAddress `json:"to"`
	Cc  []emailAddress `json:"cc,omitempty"`
	Bcc []emailAddress `json:"bcc,omitempty"`
}

// emailAddress represents one address in a send request. The display name
// travels alongside the address and is omitted when absent.
type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// content is one body part of the message.
type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// buildSendRequest converts an email.Email into a mail send request body
// with a single personalization and a single text/plain content part.
func buildSendRequest(msg *email.Email) *sendRequest {
	return &sendRequest{
		Personalizations: []personalization{{
			To:  toAddresses(msg.To),
			Cc:  toAddresses(msg.Cc),
			Bcc: toAddresses(msg.Bcc),
		}},
		From:    emailAddress{Email: msg.From.Address, Name: msg.From.Name},
		Subject: msg.Subject,
		Content: []content{
			{Type: "text/plain", Value: msg.Text},
		},
	}
}

// toAddresses converts model addresses into their wire form, keeping
// display names when present.
func toAddresses(addrs []email.Address) []emailAddress {
	if len(addrs) == 0 {
		return nil
	}
	result := make([]emailAddress, 0, len(addrs))
	for _, a := range addrs {
		result = append(result, emailAddress{Email: a.Address, Name: a.Name})
	}
	return result
}
