package sender

import "context"

// Message is a rendered email ready to send.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender defines the interface for delivering email.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg *Message) error
}
