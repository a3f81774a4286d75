package email

// Message is a single outbound email.
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Provider sends transactional email. Implementations must be safe for
// concurrent use; senders are called from request goroutines.
type Provider interface {
	Send(msg *Message) error
	Close() error
}
