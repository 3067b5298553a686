package mail

import "context"

// Message is a composed outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
}

// Mailer hands a composed message to an outbound transport. Delivery is
// best-effort from the caller's perspective; implementations may retry.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
