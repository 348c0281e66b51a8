// Package email defines the core mail data model used throughout the relay.
package email

// Address is a single recipient or sender address with its optional
// display name kept separate from the bare address.
type Address struct {
	Name    string
	Address string
}

// String renders the address in RFC 5322 form, "Name <addr>" when a
// display name is present and the bare address otherwise.
func (a Address) String() string {
	if a.Name == "" {
		return a.Address
	}
	return a.Name + " <" + a.Address + ">"
}

// Email represents one validated mail submission. Values are produced by
// parser.Parse, so From, To, Subject and Text are always populated; Cc
// and Bcc may be empty. An Email is never mutated after construction.
type Email struct {
	From    Address
	To      []Address
	Cc      []Address
	Bcc     []Address
	Subject string
	Text    string
}
